package history

import (
	"fmt"
	"sync"

	"github.com/ghostkey/ghostkey/internal/buffer"
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines the methods the history manager needs.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	SetCursor(types.Position)
	GetEventManager() *event.Manager
	ScrollToCursor()
}

// Manager handles the undo/redo stack. Replayed changes go through the
// normal buffer-modified event path so the provenance tracker follows
// them like live edits.
type Manager struct {
	editor       EditorInterface
	changes      []Change
	currentIndex int // Index of the next change to potentially Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a new change, clearing any redo history.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}

	m.changes = append(m.changes, change)

	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}

	m.currentIndex = len(m.changes)
	logger.DebugTagf("history", "Recorded change %v (%s). Index: %d, Count: %d",
		change.Type, change.Source, m.currentIndex, len(m.changes))
}

// Undo reverts the last recorded change.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		logger.DebugTagf("history", "Nothing to undo")
		return false, nil
	}

	m.currentIndex--
	changeToUndo := m.changes[m.currentIndex]

	buf := m.editor.GetBuffer()
	var editInfo types.EditInfo
	var modData event.BufferModifiedData
	var err error

	switch changeToUndo.Type {
	case InsertAction:
		// Undo an insert by deleting the inserted text.
		editInfo, err = buf.Delete(changeToUndo.StartPosition, changeToUndo.EndPosition)
		if err != nil {
			m.currentIndex++
			return false, fmt.Errorf("undo failed: %w", err)
		}
		modData = event.BufferModifiedData{Edit: editInfo, Source: track.SourceUnknown}

	case DeleteAction:
		// Undo a delete by inserting the removed text back with its
		// original provenance.
		editInfo, err = buf.Insert(changeToUndo.StartPosition, changeToUndo.Text)
		if err != nil {
			m.currentIndex++
			return false, fmt.Errorf("undo failed: %w", err)
		}
		modData = event.BufferModifiedData{
			Edit:    editInfo,
			Source:  changeToUndo.Source,
			Restore: changeToUndo.Segments,
		}
	}

	m.editor.SetCursor(changeToUndo.CursorBefore)

	if eventMgr := m.editor.GetEventManager(); eventMgr != nil {
		eventMgr.Dispatch(event.TypeBufferModified, modData)
	}
	return true, nil
}

// Redo reapplies the last undone change.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.changes) {
		logger.DebugTagf("history", "Nothing to redo. currentIndex=%d, len(changes)=%d", m.currentIndex, len(m.changes))
		return false, nil
	}

	changeToRedo := m.changes[m.currentIndex]

	buf := m.editor.GetBuffer()
	var editInfo types.EditInfo
	var modData event.BufferModifiedData
	var err error
	var finalCursor types.Position

	switch changeToRedo.Type {
	case InsertAction:
		editInfo, err = buf.Insert(changeToRedo.StartPosition, changeToRedo.Text)
		if err == nil {
			finalCursor = changeToRedo.EndPosition
			modData = event.BufferModifiedData{Edit: editInfo, Source: changeToRedo.Source}
		}
	case DeleteAction:
		editInfo, err = buf.Delete(changeToRedo.StartPosition, changeToRedo.EndPosition)
		if err == nil {
			finalCursor = changeToRedo.StartPosition
			modData = event.BufferModifiedData{Edit: editInfo, Source: track.SourceUnknown}
		}
	}

	if err != nil {
		return false, fmt.Errorf("redo failed: %w", err)
	}

	m.editor.SetCursor(finalCursor)
	m.editor.ScrollToCursor()

	if eventMgr := m.editor.GetEventManager(); eventMgr != nil {
		eventMgr.Dispatch(event.TypeBufferModified, modData)
	}

	m.currentIndex++
	return true, nil
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0]
	m.currentIndex = 0
	logger.DebugTagf("history", "Cleared")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
