// Package track maintains provenance metadata for buffer contents: which
// ranges of text were typed by hand and which arrived via paste.
package track

import "fmt"

// SourceKind identifies how a range of text entered the buffer.
type SourceKind int

const (
	// SourceUnknown is used for text whose origin was never recorded
	// (e.g. loaded from a plain file with no metadata).
	SourceUnknown SourceKind = iota
	// SourceTyped marks text entered via direct keystrokes.
	SourceTyped
	// SourcePasted marks text inserted from the clipboard.
	SourcePasted
)

// String returns the canonical wire name for the kind.
func (k SourceKind) String() string {
	switch k {
	case SourceTyped:
		return "typed"
	case SourcePasted:
		return "pasted"
	default:
		return "unknown"
	}
}

// StyleName returns the theme style name associated with the kind,
// or "" when the kind carries no styling.
func (k SourceKind) StyleName() string {
	switch k {
	case SourceTyped:
		return "typed"
	case SourcePasted:
		return "pasted"
	default:
		return ""
	}
}

// ParseSourceKind converts a wire name back into a SourceKind.
// "manual" is accepted as a legacy alias for "typed".
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "typed", "manual":
		return SourceTyped, nil
	case "pasted":
		return SourcePasted, nil
	case "unknown", "":
		return SourceUnknown, nil
	default:
		return SourceUnknown, fmt.Errorf("unrecognized source kind %q", s)
	}
}
