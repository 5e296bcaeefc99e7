package history

import (
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

// ActionType identifies what kind of buffer change was recorded.
type ActionType int

const (
	InsertAction ActionType = iota
	DeleteAction
)

// Change represents a single undoable buffer mutation. Source records
// the provenance kind of inserted text so redo reproduces it exactly.
// For deletions, Segments snapshots the provenance of the removed
// range (offsets relative to the range start) so undo can restore it.
type Change struct {
	Type          ActionType
	Text          []byte
	StartPosition types.Position
	EndPosition   types.Position
	CursorBefore  types.Position
	Source        track.SourceKind
	Segments      []track.Segment
}
