// internal/core/editor.go
package core

import (
	"github.com/ghostkey/ghostkey/internal/buffer"
	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/core/clipboard"
	"github.com/ghostkey/ghostkey/internal/core/cursor"
	"github.com/ghostkey/ghostkey/internal/core/history"
	"github.com/ghostkey/ghostkey/internal/core/text"
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/lakra"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

// Editor owns the buffer and coordinates the managers that operate on
// it. Provenance state lives in the tracker, which is updated through
// buffer-modified events rather than called directly by edits.
type Editor struct {
	buffer       buffer.Buffer
	eventManager *event.Manager
	tracker      *track.Tracker

	// --- Managers ---
	cursorManager    *cursor.Manager
	textOps          *text.Operations
	clipboardManager *clipboard.Manager
	historyManager   *history.Manager

	// --- Selection State ---
	selecting      bool
	selectionStart types.Position // Anchor point
	selectionEnd   types.Position // Follows the cursor

	viewWidth  int
	viewHeight int
}

// NewEditor creates a new Editor instance with a given buffer.
func NewEditor(buf buffer.Buffer) *Editor {
	e := &Editor{
		buffer:         buf,
		tracker:        track.NewTracker(),
		selecting:      false,
		selectionStart: types.Position{Line: -1, Col: -1},
		selectionEnd:   types.Position{Line: -1, Col: -1},
	}
	e.cursorManager = cursor.NewManager(e)
	e.historyManager = history.NewManager(e, history.DefaultMaxHistory)
	e.textOps = text.NewOperations(e)
	e.clipboardManager = clipboard.NewManager(e, config.Get().Editor.SystemClipboard)
	return e
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager (may be nil early in startup).
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// GetTracker returns the provenance tracker for this editor's buffer.
func (e *Editor) GetTracker() *track.Tracker {
	return e.tracker
}

// GetHistoryManager returns the undo/redo manager.
func (e *Editor) GetHistoryManager() *history.Manager {
	return e.historyManager
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position {
	return e.cursorManager.GetPosition()
}

// SetCursor sets the cursor position, clamped to the buffer.
func (e *Editor) SetCursor(pos types.Position) {
	e.cursorManager.SetPosition(pos)
}

// GetViewport returns the viewport top line and leftmost visual column.
func (e *Editor) GetViewport() (int, int) {
	return e.cursorManager.GetViewportTop(), e.cursorManager.GetViewportX()
}

// ScrollOff returns the configured scroll margin.
func (e *Editor) ScrollOff() int {
	return config.Get().Editor.ScrollOff
}

// ScrollToCursor ensures the cursor is inside the viewport.
func (e *Editor) ScrollToCursor() {
	e.cursorManager.ScrollToCursor()
}

// SetViewSize updates the cached view dimensions. Called on resize or
// before drawing.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	statusBarHeight := config.Get().Editor.StatusBarHeight
	if height > statusBarHeight {
		e.viewHeight = height - statusBarHeight
	} else {
		e.viewHeight = 0
	}
	e.cursorManager.SetViewSize(e.viewWidth, e.viewHeight)
	e.ScrollToCursor()
}

// LoadFile reads a document (container or plain) into the buffer and
// seeds the tracker from its metadata.
func (e *Editor) LoadFile(filePath string) error {
	textBytes, segs, err := lakra.Load(filePath)
	if err != nil {
		return err
	}
	e.buffer.LoadBytes(textBytes, filePath)
	totalRunes := e.buffer.RuneCount()
	e.tracker.Restore(segs, totalRunes)
	e.historyManager.Clear()
	e.ClearSelection()
	e.SetCursor(types.Position{Line: 0, Col: 0})

	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{
			FilePath:   filePath,
			TotalRunes: totalRunes,
			Segments:   segs,
		})
	}
	logger.Infof("Loaded %s (%d runes, %d provenance segments)", filePath, totalRunes, len(segs))
	return nil
}

// SaveBuffer persists the buffer, embedding provenance metadata for
// container files and writing a sidecar for plain files that carry
// segments. An optional override path may be given.
func (e *Editor) SaveBuffer(filePath ...string) error {
	savePath := ""
	if len(filePath) > 0 {
		savePath = filePath[0]
	}
	if savePath == "" {
		savePath = e.buffer.FilePath()
	}

	segs, _ := e.tracker.Snapshot()
	withMetadata := lakra.IsLakraFile(savePath) || len(segs) > 0

	if withMetadata {
		if err := lakra.Save(savePath, e.buffer.Bytes(), segs); err != nil {
			return err
		}
		e.buffer.MarkSaved(savePath)
	} else {
		if err := e.buffer.Save(savePath); err != nil {
			return err
		}
	}

	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{
			FilePath:     savePath,
			WithMetadata: withMetadata,
		})
	}
	return nil
}
