// internal/meta/report.go
package meta

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghostkey/ghostkey/internal/track"
)

// Report renders a plain-text provenance analysis of a document,
// suitable for export next to the file itself.
func Report(filePath string, segs []track.Segment, totalRunes int) string {
	s := Compute(segs, totalRunes)

	var b strings.Builder
	fmt.Fprintf(&b, "Provenance Report\n")
	fmt.Fprintf(&b, "=================\n\n")
	if filePath != "" {
		fmt.Fprintf(&b, "File:      %s\n", filePath)
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "Characters:      %d\n", s.TotalRunes)
	fmt.Fprintf(&b, "Typed:           %d (%.1f%%)\n", s.TypedRunes, s.TypedPercent())
	fmt.Fprintf(&b, "Pasted:          %d (%.1f%%)\n", s.PastedRunes, s.PastedPercent())
	if s.UnknownRunes > 0 {
		fmt.Fprintf(&b, "Untracked:       %d\n", s.UnknownRunes)
	}
	fmt.Fprintf(&b, "Segments:        %d (%d typed, %d pasted)\n", s.SegmentCount, s.TypedSegments, s.PastedSegments)
	fmt.Fprintf(&b, "Authenticity:    %s\n", s.AuthenticityTier())

	if len(segs) > 0 {
		fmt.Fprintf(&b, "\nSegments\n--------\n")
		for _, seg := range segs {
			fmt.Fprintf(&b, "  [%6d, %6d)  %-6s  %d chars\n", seg.Start, seg.End, seg.Source, seg.Len())
		}
	}
	return b.String()
}
