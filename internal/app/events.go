package app

import (
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/logger"
)

// handleBufferModifiedForTracking keeps the provenance tracker in sync
// with every buffer mutation. Edits carrying a Restore snapshot (undo
// of a deletion) reinstate the exact segments that were removed.
func (a *App) handleBufferModifiedForTracking(e event.Event) bool {
	data, ok := e.Data.(event.BufferModifiedData)
	if !ok {
		logger.Warnf("App: BufferModified event with unexpected data type: %T", e.Data)
		return false
	}
	if data.Edit.IsZero() {
		return false
	}

	tracker := a.editor.GetTracker()
	if len(data.Restore) > 0 {
		tracker.ApplyEditSegments(data.Edit, data.Restore)
	} else {
		tracker.ApplyEdit(data.Edit, data.Source)
	}

	a.eventManager.Dispatch(event.TypeSegmentsChanged, event.SegmentsChangedData{
		SegmentCount: len(tracker.Segments()),
	})
	return false
}

// handleCursorMovedForStatus updates the status bar based on cursor
// position.
func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

// handleBufferModifiedForStatus updates the status bar when buffer is
// modified.
func (a *App) handleBufferModifiedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

// handleBufferSavedForStatus updates the status bar when buffer is
// saved.
func (a *App) handleBufferSavedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

// handleBufferLoadedForStatus refreshes app state after a file load.
func (a *App) handleBufferLoadedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

// handleSegmentsChanged refreshes the composition readout when the
// tracker's segments change.
func (a *App) handleSegmentsChanged(e event.Event) bool {
	a.statusBar.SetComposition(a.sourceStats())
	return false
}
