// internal/meta/stats.go
package meta

import "github.com/ghostkey/ghostkey/internal/track"

// Stats summarizes the provenance composition of a document.
type Stats struct {
	TotalRunes     int
	TypedRunes     int
	PastedRunes    int
	UnknownRunes   int
	SegmentCount   int
	TypedSegments  int
	PastedSegments int
}

// Compute derives composition stats from a segment list and the
// document length in runes.
func Compute(segs []track.Segment, totalRunes int) Stats {
	s := Stats{TotalRunes: totalRunes, SegmentCount: len(segs)}
	for _, seg := range segs {
		switch seg.Source {
		case track.SourceTyped:
			s.TypedRunes += seg.Len()
			s.TypedSegments++
		case track.SourcePasted:
			s.PastedRunes += seg.Len()
			s.PastedSegments++
		}
	}
	s.UnknownRunes = totalRunes - s.TypedRunes - s.PastedRunes
	if s.UnknownRunes < 0 {
		s.UnknownRunes = 0
	}
	return s
}

// TypedPercent returns the typed share of the document, 0-100.
func (s Stats) TypedPercent() float64 {
	if s.TotalRunes == 0 {
		return 0
	}
	return float64(s.TypedRunes) * 100 / float64(s.TotalRunes)
}

// PastedPercent returns the pasted share of the document, 0-100.
func (s Stats) PastedPercent() float64 {
	if s.TotalRunes == 0 {
		return 0
	}
	return float64(s.PastedRunes) * 100 / float64(s.TotalRunes)
}

// AuthenticityTier buckets the pasted share into a coarse rating.
func (s Stats) AuthenticityTier() string {
	p := s.PastedPercent()
	switch {
	case p > 70:
		return "low"
	case p > 40:
		return "medium"
	case p > 15:
		return "high"
	default:
		return "very high"
	}
}
