// internal/track/tracker_test.go
package track

import (
	"testing"
	"time"

	"github.com/ghostkey/ghostkey/internal/types"
)

func insertEdit(offset, runes int) types.EditInfo {
	return types.EditInfo{StartOffset: offset, OldEndOffset: offset, NewEndOffset: offset + runes}
}

func deleteEdit(start, end int) types.EditInfo {
	return types.EditInfo{StartOffset: start, OldEndOffset: end, NewEndOffset: start}
}

func checkInvariants(t *testing.T, tr *Tracker) {
	t.Helper()
	segs := tr.Segments()
	prevEnd := -1
	var prevKind SourceKind
	for i, seg := range segs {
		if seg.Len() <= 0 {
			t.Errorf("segment %d is empty: %+v", i, seg)
		}
		if seg.Start < prevEnd {
			t.Errorf("segment %d overlaps previous: %+v", i, seg)
		}
		if seg.Start == prevEnd && seg.Source == prevKind {
			t.Errorf("segment %d not coalesced with previous same-kind segment: %+v", i, seg)
		}
		prevEnd = seg.End
		prevKind = seg.Source
	}
}

func TestTypingExtendsTypedSegment(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < 5; i++ {
		tr.ApplyEdit(insertEdit(i, 1), SourceTyped)
	}
	segs := tr.Segments()
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1: %+v", len(segs), segs)
	}
	if segs[0].Start != 0 || segs[0].End != 5 || segs[0].Source != SourceTyped {
		t.Errorf("segment = %+v, want [0,5) typed", segs[0])
	}
	checkInvariants(t, tr)
}

func TestPasteCreatesPastedSegment(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 10), SourcePasted)
	segs := tr.Segments()
	if len(segs) != 1 || segs[0].Source != SourcePasted {
		t.Fatalf("got %+v, want one pasted segment", segs)
	}
	if tr.KindAt(0) != SourcePasted || tr.KindAt(9) != SourcePasted {
		t.Error("KindAt inside pasted range should report pasted")
	}
	if tr.KindAt(10) != SourceUnknown {
		t.Error("KindAt past end should report unknown")
	}
}

func TestInsertInsideSegmentSplits(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 10), SourcePasted)
	tr.ApplyEdit(insertEdit(5, 1), SourceTyped)

	segs := tr.Segments()
	want := []Segment{
		{Start: 0, End: 5, Source: SourcePasted},
		{Start: 5, End: 6, Source: SourceTyped},
		{Start: 6, End: 11, Source: SourcePasted},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i].Start != want[i].Start || segs[i].End != want[i].End || segs[i].Source != want[i].Source {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
	checkInvariants(t, tr)
}

func TestInsertSameKindInsideSegmentCoalesces(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 4), SourceTyped)
	tr.ApplyEdit(insertEdit(2, 3), SourceTyped)
	segs := tr.Segments()
	if len(segs) != 1 || segs[0].Start != 0 || segs[0].End != 7 {
		t.Fatalf("got %+v, want single [0,7) typed segment", segs)
	}
}

func TestInsertBetweenSegmentsShiftsFollowers(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 3), SourceTyped)
	tr.ApplyEdit(insertEdit(3, 3), SourcePasted)
	tr.ApplyEdit(insertEdit(3, 2), SourceTyped)

	segs := tr.Segments()
	if len(segs) != 2 {
		t.Fatalf("got %d segments: %+v", len(segs), segs)
	}
	if segs[0].Start != 0 || segs[0].End != 5 || segs[0].Source != SourceTyped {
		t.Errorf("segment 0 = %+v, want [0,5) typed", segs[0])
	}
	if segs[1].Start != 5 || segs[1].End != 8 || segs[1].Source != SourcePasted {
		t.Errorf("segment 1 = %+v, want [5,8) pasted", segs[1])
	}
	checkInvariants(t, tr)
}

func TestDeleteInsideSegmentShrinks(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 10), SourcePasted)
	tr.ApplyEdit(deleteEdit(3, 7), SourceUnknown)

	segs := tr.Segments()
	if len(segs) != 1 || segs[0].Start != 0 || segs[0].End != 6 {
		t.Fatalf("got %+v, want single [0,6) segment", segs)
	}
	if tr.TotalRunes() != 6 {
		t.Errorf("TotalRunes = %d, want 6", tr.TotalRunes())
	}
}

func TestDeleteSpanningSegments(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 4), SourceTyped)   // [0,4) typed
	tr.ApplyEdit(insertEdit(4, 4), SourcePasted)  // [4,8) pasted
	tr.ApplyEdit(insertEdit(8, 4), SourceTyped)   // [8,12) typed
	tr.ApplyEdit(deleteEdit(2, 10), SourceUnknown)

	segs := tr.Segments()
	// Left typed remnant [0,2) and right typed remnant shifted to [2,4)
	// coalesce into one typed segment.
	if len(segs) != 1 || segs[0].Start != 0 || segs[0].End != 4 || segs[0].Source != SourceTyped {
		t.Fatalf("got %+v, want single [0,4) typed segment", segs)
	}
	checkInvariants(t, tr)
}

func TestDeleteEntireSegmentRemovesIt(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 3), SourceTyped)
	tr.ApplyEdit(insertEdit(3, 3), SourcePasted)
	tr.ApplyEdit(deleteEdit(3, 6), SourceUnknown)

	segs := tr.Segments()
	if len(segs) != 1 || segs[0].Source != SourceTyped {
		t.Fatalf("got %+v, want single typed segment", segs)
	}
}

func TestDeleteAllTextRemovesAllSegments(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 5), SourceTyped)
	tr.ApplyEdit(insertEdit(5, 5), SourcePasted)
	tr.ApplyEdit(deleteEdit(0, 10), SourceUnknown)

	if segs := tr.Segments(); len(segs) != 0 {
		t.Errorf("got %+v, want no segments", segs)
	}
	if tr.TotalRunes() != 0 {
		t.Errorf("TotalRunes = %d, want 0", tr.TotalRunes())
	}
}

func TestReplaceEdit(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 10), SourceTyped)
	// Replace [2,6) with 3 pasted runes.
	tr.ApplyEdit(types.EditInfo{StartOffset: 2, OldEndOffset: 6, NewEndOffset: 5}, SourcePasted)

	segs := tr.Segments()
	want := []Segment{
		{Start: 0, End: 2, Source: SourceTyped},
		{Start: 2, End: 5, Source: SourcePasted},
		{Start: 5, End: 9, Source: SourceTyped},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %+v, want %+v", segs, want)
	}
	for i := range want {
		if segs[i].Start != want[i].Start || segs[i].End != want[i].End || segs[i].Source != want[i].Source {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestRandomEditSequenceKeepsInvariants(t *testing.T) {
	tr := NewTracker()
	ops := []struct {
		edit types.EditInfo
		kind SourceKind
	}{
		{insertEdit(0, 8), SourcePasted},
		{insertEdit(4, 1), SourceTyped},
		{insertEdit(9, 2), SourceTyped},
		{deleteEdit(2, 5), SourceUnknown},
		{insertEdit(0, 6), SourcePasted},
		{deleteEdit(5, 12), SourceUnknown},
		{insertEdit(3, 1), SourceTyped},
	}
	for i, op := range ops {
		tr.ApplyEdit(op.edit, op.kind)
		checkInvariants(t, tr)
		if t.Failed() {
			t.Fatalf("invariants violated after op %d", i)
		}
	}
}

func TestSegmentsInRange(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 4), SourceTyped)
	tr.ApplyEdit(insertEdit(4, 4), SourcePasted)
	tr.ApplyEdit(insertEdit(8, 4), SourceTyped)

	segs := tr.SegmentsInRange(5, 9)
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}
	if segs[0].Source != SourcePasted || segs[1].Source != SourceTyped {
		t.Errorf("unexpected kinds: %+v", segs)
	}
}

func TestRestoreNormalizes(t *testing.T) {
	tr := NewTracker()
	now := time.Now()
	tr.Restore([]Segment{
		{Start: 5, End: 20, Source: SourcePasted, Timestamp: now}, // clamped to 10
		{Start: 0, End: 8, Source: SourceTyped, Timestamp: now},   // overlap resolved
		{Start: 3, End: 3, Source: SourceTyped, Timestamp: now},   // empty, dropped
	}, 10)

	segs := tr.Segments()
	if len(segs) != 2 {
		t.Fatalf("got %+v, want 2 segments", segs)
	}
	if segs[0].Start != 0 || segs[0].End != 8 || segs[0].Source != SourceTyped {
		t.Errorf("segment 0 = %+v", segs[0])
	}
	if segs[1].Start != 8 || segs[1].End != 10 || segs[1].Source != SourcePasted {
		t.Errorf("segment 1 = %+v", segs[1])
	}
	checkInvariants(t, tr)
}

func TestResetAttributesAll(t *testing.T) {
	tr := NewTracker()
	tr.Reset(12, SourcePasted)
	segs := tr.Segments()
	if len(segs) != 1 || segs[0].Start != 0 || segs[0].End != 12 {
		t.Fatalf("got %+v, want single full-range segment", segs)
	}
	tr.Reset(12, SourceUnknown)
	if segs := tr.Segments(); len(segs) != 0 {
		t.Errorf("got %+v, want no segments for unknown reset", segs)
	}
}

func TestApplyEditSegmentsRestoresProvenance(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 4), SourceTyped)
	tr.ApplyEdit(insertEdit(4, 4), SourcePasted)

	// Delete the middle [2,6), then restore it with its original
	// mixed provenance, as an undo would.
	tr.ApplyEdit(deleteEdit(2, 6), SourceUnknown)
	tr.ApplyEditSegments(insertEdit(2, 4), []Segment{
		{Start: 0, End: 2, Source: SourceTyped},
		{Start: 2, End: 4, Source: SourcePasted},
	})

	segs := tr.Segments()
	want := []Segment{
		{Start: 0, End: 4, Source: SourceTyped},
		{Start: 4, End: 8, Source: SourcePasted},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %+v, want %+v", segs, want)
	}
	for i := range want {
		if segs[i].Start != want[i].Start || segs[i].End != want[i].End || segs[i].Source != want[i].Source {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
	checkInvariants(t, tr)
}

func TestClampOutOfRangeOffsets(t *testing.T) {
	tr := NewTracker()
	tr.ApplyEdit(insertEdit(0, 5), SourceTyped)
	// Deleting past the end clamps to the tracked length.
	tr.ApplyDelete(3, 999)
	segs := tr.Segments()
	if len(segs) != 1 || segs[0].End != 3 {
		t.Fatalf("got %+v, want single [0,3) segment", segs)
	}
	// Insert past the end clamps to append.
	tr.ApplyInsert(999, 2, SourcePasted)
	if tr.TotalRunes() != 5 {
		t.Errorf("TotalRunes = %d, want 5", tr.TotalRunes())
	}
	if tr.KindAt(4) != SourcePasted {
		t.Error("appended range should be pasted")
	}
}
