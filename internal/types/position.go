// internal/types/position.go
package types

// Position represents a cursor or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
// Using rune indices keeps positions stable for multi-byte text.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p is lexicographically before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}
