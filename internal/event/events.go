// internal/event/events.go
package event

import (
	"github.com/gdamore/tcell/v2"

	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified // Fired when buffer content changes (insert/delete)
	TypeBufferLoaded   // Fired after a buffer is successfully loaded
	TypeBufferSaved    // Fired after a buffer is successfully saved
	TypeCursorMoved    // Fired when the cursor position changes
	TypeModeChanged    // Fired when editor mode changes

	// Provenance Events
	TypeSegmentsChanged // Fired after the tracker updates its segment list

	// Input Events
	TypeKeyPressed // Raw key press event forwarded

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins

	TypeThemeChanged // Fired when the theme is changed
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// --- Specific Event Data Structures ---

// BufferModifiedData contains info about a buffer change. Source is
// the provenance kind of any inserted text. Restore, set by history
// replays, carries the exact segments of the re-inserted range with
// offsets relative to the edit start; it takes precedence over Source.
type BufferModifiedData struct {
	Edit    types.EditInfo
	Source  track.SourceKind
	Restore []track.Segment
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath   string
	TotalRunes int
	// Segments holds provenance restored from file metadata, nil for
	// a plain file.
	Segments []track.Segment
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath     string
	WithMetadata bool
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
	Offset      int
}

// SegmentsChangedData announces a provenance update.
type SegmentsChangedData struct {
	SegmentCount int
}

// ModeChangedData describes a mode transition.
type ModeChangedData struct {
	OldMode string
	NewMode string
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}

// AppQuitData could carry an exit reason later.
type AppQuitData struct{}

// AppReadyData is dispatched once startup wiring is complete.
type AppReadyData struct{}
