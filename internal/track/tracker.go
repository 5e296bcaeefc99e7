// internal/track/tracker.go
package track

import (
	"sort"
	"sync"
	"time"

	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/types"
)

// Segment is a half-open rune-offset range [Start, End) attributed to a
// single source kind.
type Segment struct {
	Start     int
	End       int
	Source    SourceKind
	Timestamp time.Time
}

// Len returns the segment's length in runes.
func (s Segment) Len() int { return s.End - s.Start }

// Contains reports whether the rune offset falls inside the segment.
func (s Segment) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Tracker maintains the ordered, non-overlapping segment list for one
// buffer. It is updated from buffer-modified events and queried by the
// drawing code and the stats commands.
//
// Invariants (upheld by every mutation):
//   - segments are sorted by Start
//   - segments never overlap
//   - no segment is empty
//   - adjacent segments of the same kind are coalesced
type Tracker struct {
	mu       sync.Mutex
	segments []Segment
	total    int // buffer length in runes, tracked from edits
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// ApplyEdit updates the segment list for a buffer modification. The
// edit may delete, insert, or both (a replace); the deleted span is
// processed first, then the inserted span is attributed to kind.
// Kinds of SourceUnknown leave the inserted span untracked, creating a
// gap in coverage.
func (t *Tracker) ApplyEdit(edit types.EditInfo, kind SourceKind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if deleted := edit.DeletedRunes(); deleted > 0 {
		t.deleteLocked(edit.StartOffset, edit.StartOffset+deleted)
	}
	if inserted := edit.InsertedRunes(); inserted > 0 {
		t.insertLocked(edit.StartOffset, inserted, kind)
	}
}

// ApplyEditSegments updates the segment list for an edit whose
// inserted range has known per-subrange provenance (history replays).
// The segs offsets are relative to the edit start.
func (t *Tracker) ApplyEditSegments(edit types.EditInfo, segs []Segment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if deleted := edit.DeletedRunes(); deleted > 0 {
		t.deleteLocked(edit.StartOffset, edit.StartOffset+deleted)
	}
	inserted := edit.InsertedRunes()
	if inserted <= 0 {
		return
	}
	t.insertLocked(edit.StartOffset, inserted, SourceUnknown)
	for _, seg := range segs {
		ov := Segment{
			Start:     edit.StartOffset + seg.Start,
			End:       edit.StartOffset + seg.End,
			Source:    seg.Source,
			Timestamp: seg.Timestamp,
		}
		if ov.End > edit.StartOffset+inserted {
			ov.End = edit.StartOffset + inserted
		}
		if ov.Len() <= 0 || ov.Source == SourceUnknown {
			continue
		}
		t.overlayLocked(ov)
	}
}

// overlayLocked stamps a segment's kind over [ov.Start, ov.End),
// clipping whatever was there before.
func (t *Tracker) overlayLocked(ov Segment) {
	out := make([]Segment, 0, len(t.segments)+2)
	placed := false
	for _, seg := range t.segments {
		if !placed && seg.Start >= ov.Start {
			out = append(out, ov)
			placed = true
		}
		// Keep the parts of seg outside the overlay.
		if seg.Start < ov.Start {
			left := seg
			if left.End > ov.Start {
				left.End = ov.Start
			}
			out = append(out, left)
		}
		if seg.End > ov.End {
			right := seg
			if right.Start < ov.End {
				right.Start = ov.End
			}
			if !placed && right.Start >= ov.Start {
				out = append(out, ov)
				placed = true
			}
			out = append(out, right)
		}
	}
	if !placed {
		out = append(out, ov)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	t.segments = coalesce(out)
}

// ApplyInsert records an insertion of length runes at offset.
func (t *Tracker) ApplyInsert(offset, length int, kind SourceKind) {
	if length <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insertLocked(offset, length, kind)
}

// ApplyDelete records the removal of the range [start, end).
func (t *Tracker) ApplyDelete(start, end int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deleteLocked(start, end)
}

func (t *Tracker) insertLocked(offset, length int, kind SourceKind) {
	if offset < 0 {
		offset = 0
	}
	if offset > t.total {
		offset = t.total
	}
	t.total += length

	out := make([]Segment, 0, len(t.segments)+2)
	placed := false
	now := time.Now()

	for _, seg := range t.segments {
		switch {
		case seg.End <= offset:
			// Entirely before the insertion point.
			out = append(out, seg)
		case seg.Start >= offset:
			// Entirely after: shift right.
			if !placed && kind != SourceUnknown {
				out = append(out, Segment{Start: offset, End: offset + length, Source: kind, Timestamp: now})
				placed = true
			}
			seg.Start += length
			seg.End += length
			out = append(out, seg)
		default:
			// Insertion point falls inside this segment: split it.
			left := Segment{Start: seg.Start, End: offset, Source: seg.Source, Timestamp: seg.Timestamp}
			right := Segment{Start: offset + length, End: seg.End + length, Source: seg.Source, Timestamp: seg.Timestamp}
			out = append(out, left)
			if kind != SourceUnknown {
				out = append(out, Segment{Start: offset, End: offset + length, Source: kind, Timestamp: now})
			}
			placed = true
			out = append(out, right)
		}
	}
	if !placed && kind != SourceUnknown {
		out = append(out, Segment{Start: offset, End: offset + length, Source: kind, Timestamp: now})
	}
	t.segments = coalesce(out)
}

func (t *Tracker) deleteLocked(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > t.total {
		end = t.total
	}
	if end <= start {
		return
	}
	length := end - start
	t.total -= length

	out := t.segments[:0]
	for _, seg := range t.segments {
		switch {
		case seg.End <= start:
			// Untouched, before the deletion.
			out = append(out, seg)
		case seg.Start >= end:
			// After the deletion: shift left.
			seg.Start -= length
			seg.End -= length
			out = append(out, seg)
		case seg.Start >= start && seg.End <= end:
			// Fully deleted: dropped.
		default:
			// Partial overlap: truncate.
			if seg.Start > start {
				seg.Start = start
			}
			if seg.End > end {
				seg.End -= length
			} else {
				seg.End = start
			}
			if seg.End > seg.Start {
				out = append(out, seg)
			}
		}
	}
	t.segments = coalesce(out)
}

// coalesce merges adjacent same-kind segments and drops empty ones.
// Input must already be sorted and non-overlapping.
func coalesce(segs []Segment) []Segment {
	out := segs[:0]
	for _, seg := range segs {
		if seg.Len() <= 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == seg.Start && out[n-1].Source == seg.Source {
			out[n-1].End = seg.End
			continue
		}
		out = append(out, seg)
	}
	return out
}

// KindAt returns the source kind recorded for the rune at offset, or
// SourceUnknown when the offset is untracked.
func (t *Tracker) KindAt(offset int) SourceKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].End > offset
	})
	if i < len(t.segments) && t.segments[i].Contains(offset) {
		return t.segments[i].Source
	}
	return SourceUnknown
}

// SegmentsInRange returns copies of all segments overlapping [start, end).
func (t *Tracker) SegmentsInRange(start, end int) []Segment {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Segment
	for _, seg := range t.segments {
		if seg.End <= start {
			continue
		}
		if seg.Start >= end {
			break
		}
		out = append(out, seg)
	}
	return out
}

// Segments returns a copy of the full segment list.
func (t *Tracker) Segments() []Segment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// TotalRunes returns the tracked buffer length.
func (t *Tracker) TotalRunes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Clear drops all segments and resets the tracked length.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.segments = nil
	t.total = 0
}

// Reset replaces the tracker state for a freshly loaded buffer of
// totalRunes runes, attributing all existing text to kind (pass
// SourceUnknown for a plain file).
func (t *Tracker) Reset(totalRunes int, kind SourceKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = totalRunes
	t.segments = nil
	if totalRunes > 0 && kind != SourceUnknown {
		t.segments = []Segment{{Start: 0, End: totalRunes, Source: kind, Timestamp: time.Now()}}
	}
}

// Restore replaces the segment list with a previously serialized one,
// normalizing it against the given buffer length. Segments that are
// out of range are clamped, overlaps resolved in favor of the earlier
// segment, and invalid entries dropped.
func (t *Tracker) Restore(segs []Segment, totalRunes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = totalRunes

	sorted := make([]Segment, len(segs))
	copy(sorted, segs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := sorted[:0]
	prevEnd := 0
	for _, seg := range sorted {
		if seg.Start < prevEnd {
			seg.Start = prevEnd
		}
		if seg.End > totalRunes {
			seg.End = totalRunes
		}
		if seg.Len() <= 0 || seg.Source == SourceUnknown {
			if seg.Len() > 0 {
				logger.DebugTagf("track", "Dropping untracked segment [%d,%d) on restore", seg.Start, seg.End)
			}
			continue
		}
		out = append(out, seg)
		prevEnd = seg.End
	}
	t.segments = coalesce(out)
}

// Snapshot returns the current segment list and buffer length, for
// history records or serialization.
func (t *Tracker) Snapshot() ([]Segment, int) {
	return t.Segments(), t.TotalRunes()
}
