// internal/buffer/buffer.go
package buffer

import "github.com/ghostkey/ghostkey/internal/types"

// Buffer defines the interface for text buffer operations. Insert and
// Delete return an EditInfo describing the affected rune offsets so
// that provenance tracking and history can follow buffer mutations.
type Buffer interface {
	Load(filePath string) error
	LoadBytes(content []byte, filePath string)
	Save(filePath string) error
	MarkSaved(filePath string)
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Bytes() []byte
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	IsModified() bool
	FilePath() string
	RuneCount() int
	OffsetForPosition(pos types.Position) int
	PositionForOffset(offset int) types.Position
}
