// internal/buffer/slice_buffer_test.go
package buffer

import (
	"bytes"
	"testing"

	"github.com/ghostkey/ghostkey/internal/types"
)

func newBufferWith(t *testing.T, content string) *SliceBuffer {
	t.Helper()
	sb := NewSliceBuffer()
	sb.LoadBytes([]byte(content), "test.txt")
	return sb
}

func TestInsertSingleLine(t *testing.T) {
	sb := newBufferWith(t, "hello world")
	edit, err := sb.Insert(types.Position{Line: 0, Col: 5}, []byte(","))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got := string(sb.Bytes()); got != "hello, world" {
		t.Errorf("content = %q, want %q", got, "hello, world")
	}
	if edit.StartOffset != 5 || edit.NewEndOffset != 6 {
		t.Errorf("edit offsets = [%d,%d), want [5,6)", edit.StartOffset, edit.NewEndOffset)
	}
	if !sb.IsModified() {
		t.Error("buffer should be modified after insert")
	}
}

func TestInsertMultiLine(t *testing.T) {
	sb := newBufferWith(t, "ab")
	edit, err := sb.Insert(types.Position{Line: 0, Col: 1}, []byte("x\ny"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got := string(sb.Bytes()); got != "ax\nyb" {
		t.Errorf("content = %q, want %q", got, "ax\nyb")
	}
	if sb.LineCount() != 2 {
		t.Errorf("LineCount = %d, want 2", sb.LineCount())
	}
	if edit.InsertedRunes() != 3 {
		t.Errorf("InsertedRunes = %d, want 3", edit.InsertedRunes())
	}
	if edit.NewEndPosition != (types.Position{Line: 1, Col: 1}) {
		t.Errorf("NewEndPosition = %+v, want {1 1}", edit.NewEndPosition)
	}
}

func TestInsertClampsPosition(t *testing.T) {
	sb := newBufferWith(t, "short")
	edit, err := sb.Insert(types.Position{Line: 99, Col: 99}, []byte("!"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if got := string(sb.Bytes()); got != "short!" {
		t.Errorf("content = %q, want %q", got, "short!")
	}
	if edit.StartOffset != 5 {
		t.Errorf("StartOffset = %d, want 5", edit.StartOffset)
	}
}

func TestDeleteWithinLine(t *testing.T) {
	sb := newBufferWith(t, "hello world")
	edit, err := sb.Delete(types.Position{Line: 0, Col: 5}, types.Position{Line: 0, Col: 11})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := string(sb.Bytes()); got != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}
	if edit.DeletedRunes() != 6 {
		t.Errorf("DeletedRunes = %d, want 6", edit.DeletedRunes())
	}
}

func TestDeleteAcrossLines(t *testing.T) {
	sb := newBufferWith(t, "one\ntwo\nthree")
	edit, err := sb.Delete(types.Position{Line: 0, Col: 2}, types.Position{Line: 2, Col: 2})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := string(sb.Bytes()); got != "onree" {
		t.Errorf("content = %q, want %q", got, "onree")
	}
	if sb.LineCount() != 1 {
		t.Errorf("LineCount = %d, want 1", sb.LineCount())
	}
	// "e\ntwo\nth" is 8 runes counting newlines.
	if edit.DeletedRunes() != 8 {
		t.Errorf("DeletedRunes = %d, want 8", edit.DeletedRunes())
	}
}

func TestDeleteSwappedRange(t *testing.T) {
	sb := newBufferWith(t, "abcdef")
	_, err := sb.Delete(types.Position{Line: 0, Col: 4}, types.Position{Line: 0, Col: 2})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := string(sb.Bytes()); got != "abef" {
		t.Errorf("content = %q, want %q", got, "abef")
	}
}

func TestOffsetPositionRoundTrip(t *testing.T) {
	sb := newBufferWith(t, "añ\nb🙂c\n")
	tests := []struct {
		pos    types.Position
		offset int
	}{
		{types.Position{Line: 0, Col: 0}, 0},
		{types.Position{Line: 0, Col: 2}, 2},
		{types.Position{Line: 1, Col: 0}, 3},
		{types.Position{Line: 1, Col: 2}, 5},
		{types.Position{Line: 2, Col: 0}, 7},
	}
	for _, tt := range tests {
		if got := sb.OffsetForPosition(tt.pos); got != tt.offset {
			t.Errorf("OffsetForPosition(%+v) = %d, want %d", tt.pos, got, tt.offset)
		}
		if got := sb.PositionForOffset(tt.offset); got != tt.pos {
			t.Errorf("PositionForOffset(%d) = %+v, want %+v", tt.offset, got, tt.pos)
		}
	}
}

func TestPositionForOffsetClamps(t *testing.T) {
	sb := newBufferWith(t, "ab")
	if got := sb.PositionForOffset(-5); got != (types.Position{Line: 0, Col: 0}) {
		t.Errorf("negative offset = %+v, want origin", got)
	}
	if got := sb.PositionForOffset(500); got != (types.Position{Line: 0, Col: 2}) {
		t.Errorf("huge offset = %+v, want end of buffer", got)
	}
}

func TestRuneCount(t *testing.T) {
	sb := newBufferWith(t, "añ\nb")
	if got := sb.RuneCount(); got != 4 {
		t.Errorf("RuneCount = %d, want 4", got)
	}
}

func TestLoadBytesResetsState(t *testing.T) {
	sb := NewSliceBuffer()
	if _, err := sb.Insert(types.Position{}, []byte("dirty")); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	sb.LoadBytes([]byte("fresh"), "fresh.txt")
	if sb.IsModified() {
		t.Error("buffer should not be modified after LoadBytes")
	}
	if sb.FilePath() != "fresh.txt" {
		t.Errorf("FilePath = %q, want fresh.txt", sb.FilePath())
	}
	if !bytes.Equal(sb.Bytes(), []byte("fresh")) {
		t.Errorf("content = %q, want fresh", sb.Bytes())
	}
}
