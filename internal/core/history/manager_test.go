package history

import (
	"testing"

	"github.com/ghostkey/ghostkey/internal/buffer"
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

// stubEditor wires a real buffer and event manager to the history
// manager, with a tracker subscribed the way the application does it.
type stubEditor struct {
	buf     buffer.Buffer
	events  *event.Manager
	tracker *track.Tracker
	cursor  types.Position
}

func newStubEditor(t *testing.T, content string) *stubEditor {
	t.Helper()
	buf := buffer.NewSliceBuffer()
	buf.LoadBytes([]byte(content), "")
	e := &stubEditor{
		buf:     buf,
		events:  event.NewManager(),
		tracker: track.NewTracker(),
	}
	e.events.Subscribe(event.TypeBufferModified, func(ev event.Event) bool {
		data, ok := ev.Data.(event.BufferModifiedData)
		if !ok {
			return false
		}
		if len(data.Restore) > 0 {
			e.tracker.ApplyEditSegments(data.Edit, data.Restore)
		} else {
			e.tracker.ApplyEdit(data.Edit, data.Source)
		}
		return false
	})
	return e
}

func (e *stubEditor) GetBuffer() buffer.Buffer        { return e.buf }
func (e *stubEditor) SetCursor(pos types.Position)    { e.cursor = pos }
func (e *stubEditor) GetEventManager() *event.Manager { return e.events }
func (e *stubEditor) ScrollToCursor()                 {}

// typeText inserts text as typed input and records it, mimicking the
// text operations path.
func typeText(t *testing.T, e *stubEditor, m *Manager, pos types.Position, s string) types.Position {
	t.Helper()
	edit, err := e.buf.Insert(pos, []byte(s))
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", s, err)
	}
	m.RecordChange(Change{
		Type:          InsertAction,
		Text:          []byte(s),
		StartPosition: edit.StartPosition,
		EndPosition:   edit.NewEndPosition,
		CursorBefore:  pos,
		Source:        track.SourceTyped,
	})
	e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit, Source: track.SourceTyped})
	return edit.NewEndPosition
}

func pasteText(t *testing.T, e *stubEditor, m *Manager, pos types.Position, s string) types.Position {
	t.Helper()
	edit, err := e.buf.Insert(pos, []byte(s))
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", s, err)
	}
	m.RecordChange(Change{
		Type:          InsertAction,
		Text:          []byte(s),
		StartPosition: edit.StartPosition,
		EndPosition:   edit.NewEndPosition,
		CursorBefore:  pos,
		Source:        track.SourcePasted,
	})
	e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit, Source: track.SourcePasted})
	return edit.NewEndPosition
}

func deleteRange(t *testing.T, e *stubEditor, m *Manager, start, end types.Position) {
	t.Helper()
	startOff := e.buf.OffsetForPosition(start)
	endOff := e.buf.OffsetForPosition(end)
	var removed []track.Segment
	for _, seg := range e.tracker.SegmentsInRange(startOff, endOff) {
		if seg.Start < startOff {
			seg.Start = startOff
		}
		if seg.End > endOff {
			seg.End = endOff
		}
		seg.Start -= startOff
		seg.End -= startOff
		removed = append(removed, seg)
	}
	text := string([]rune(bufferText(t, e))[startOff:endOff])
	edit, err := e.buf.Delete(start, end)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	m.RecordChange(Change{
		Type:          DeleteAction,
		Text:          []byte(text),
		StartPosition: edit.StartPosition,
		EndPosition:   edit.OldEndPosition,
		CursorBefore:  end,
		Segments:      removed,
	})
	e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit, Source: track.SourceUnknown})
}

func bufferText(t *testing.T, e *stubEditor) string {
	t.Helper()
	return string(e.buf.Bytes())
}

func segAt(t *testing.T, e *stubEditor, off int) track.SourceKind {
	t.Helper()
	return e.tracker.KindAt(off)
}

func TestUndoRedoInsert(t *testing.T) {
	e := newStubEditor(t, "")
	m := NewManager(e, 10)

	typeText(t, e, m, types.Position{Line: 0, Col: 0}, "hello")
	if got := bufferText(t, e); got != "hello" {
		t.Fatalf("buffer = %q, want %q", got, "hello")
	}

	ok, err := m.Undo()
	if err != nil || !ok {
		t.Fatalf("Undo returned (%v, %v)", ok, err)
	}
	if got := bufferText(t, e); got != "" {
		t.Fatalf("after undo buffer = %q, want empty", got)
	}
	if got := len(e.tracker.Segments()); got != 0 {
		t.Fatalf("after undo tracker has %d segments, want 0", got)
	}

	ok, err = m.Redo()
	if err != nil || !ok {
		t.Fatalf("Redo returned (%v, %v)", ok, err)
	}
	if got := bufferText(t, e); got != "hello" {
		t.Fatalf("after redo buffer = %q, want %q", got, "hello")
	}
	if got := segAt(t, e, 2); got != track.SourceTyped {
		t.Errorf("after redo KindAt(2) = %v, want typed", got)
	}
}

func TestUndoDeleteRestoresProvenance(t *testing.T) {
	e := newStubEditor(t, "")
	m := NewManager(e, 10)

	pos := typeText(t, e, m, types.Position{Line: 0, Col: 0}, "abcd")
	pasteText(t, e, m, pos, "wxyz")

	// Delete "cdwx", which straddles the typed/pasted boundary.
	deleteRange(t, e, m, types.Position{Line: 0, Col: 2}, types.Position{Line: 0, Col: 6})
	if got := bufferText(t, e); got != "abyz" {
		t.Fatalf("after delete buffer = %q, want %q", got, "abyz")
	}

	ok, err := m.Undo()
	if err != nil || !ok {
		t.Fatalf("Undo returned (%v, %v)", ok, err)
	}
	if got := bufferText(t, e); got != "abcdwxyz" {
		t.Fatalf("after undo buffer = %q, want %q", got, "abcdwxyz")
	}

	segs := e.tracker.Segments()
	want := []struct {
		start, end int
		kind       track.SourceKind
	}{
		{0, 4, track.SourceTyped},
		{4, 8, track.SourcePasted},
	}
	if len(segs) != len(want) {
		t.Fatalf("after undo segments = %v, want %d segments", segs, len(want))
	}
	for i, w := range want {
		if segs[i].Start != w.start || segs[i].End != w.end || segs[i].Source != w.kind {
			t.Errorf("segment %d = %+v, want [%d,%d) %v", i, segs[i], w.start, w.end, w.kind)
		}
	}
}

func TestRedoPastePreservesSource(t *testing.T) {
	e := newStubEditor(t, "")
	m := NewManager(e, 10)

	pasteText(t, e, m, types.Position{Line: 0, Col: 0}, "copied")
	if _, err := m.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if _, err := m.Redo(); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}

	if got := segAt(t, e, 3); got != track.SourcePasted {
		t.Errorf("after redo KindAt(3) = %v, want pasted", got)
	}
}

func TestRecordChangeTruncatesRedoTail(t *testing.T) {
	e := newStubEditor(t, "")
	m := NewManager(e, 10)

	typeText(t, e, m, types.Position{Line: 0, Col: 0}, "one")
	if _, err := m.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	typeText(t, e, m, types.Position{Line: 0, Col: 0}, "two")

	if m.CanRedo() {
		t.Error("CanRedo = true after recording past an undo, want false")
	}
	if !m.CanUndo() {
		t.Error("CanUndo = false, want true")
	}
}

func TestMaxHistoryCap(t *testing.T) {
	e := newStubEditor(t, "")
	m := NewManager(e, 3)

	pos := types.Position{Line: 0, Col: 0}
	for i := 0; i < 5; i++ {
		pos = typeText(t, e, m, pos, "x")
	}

	undone := 0
	for {
		ok, err := m.Undo()
		if err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if !ok {
			break
		}
		undone++
	}
	if undone != 3 {
		t.Errorf("undid %d changes, want 3 (capped)", undone)
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	e := newStubEditor(t, "")
	m := NewManager(e, 10)

	if ok, err := m.Undo(); ok || err != nil {
		t.Errorf("Undo on empty history = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := m.Redo(); ok || err != nil {
		t.Errorf("Redo on empty history = (%v, %v), want (false, nil)", ok, err)
	}
}
