package types

// EditInfo describes a single buffer mutation in both position and
// absolute rune-offset terms. Offsets count runes from the start of the
// document, with each line break counting as one rune. The provenance
// tracker consumes the offset form; the UI consumes the position form.
type EditInfo struct {
	StartOffset  int // Rune offset where the edit begins
	OldEndOffset int // End offset of the replaced text (== StartOffset for pure inserts)
	NewEndOffset int // End offset of the new text (== StartOffset for pure deletes)

	StartPosition  Position
	OldEndPosition Position
	NewEndPosition Position
}

// InsertedRunes returns the number of runes the edit added.
func (e EditInfo) InsertedRunes() int {
	return e.NewEndOffset - e.StartOffset
}

// DeletedRunes returns the number of runes the edit removed.
func (e EditInfo) DeletedRunes() int {
	return e.OldEndOffset - e.StartOffset
}

// IsZero reports whether the edit changed nothing.
func (e EditInfo) IsZero() bool {
	return e.StartOffset == e.OldEndOffset && e.StartOffset == e.NewEndOffset
}

// StyledRange represents a segment of a line to be styled.
// StartCol and EndCol are rune indices within the line, EndCol exclusive.
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string
}
