// Package clipboard implements copy, cut and paste. Pasted content is
// the one thing this editor must never mistake for typing, so every
// insertion going through Paste is classified as clipboard input.
package clipboard

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/atotto/clipboard"

	"github.com/ghostkey/ghostkey/internal/buffer"
	"github.com/ghostkey/ghostkey/internal/core/history"
	"github.com/ghostkey/ghostkey/internal/core/text"
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

// Manager handles clipboard operations.
type Manager struct {
	editor    EditorInterface
	register  []byte
	useSystem bool
}

// EditorInterface defines methods needed from editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetSelection() (start types.Position, end types.Position, ok bool)
	ClearSelection()
	GetEventManager() *event.Manager
	GetTracker() *track.Tracker
	ScrollToCursor()
	GetHistoryManager() *history.Manager
}

// NewManager creates a new clipboard manager. When useSystem is true
// the OS clipboard is used, with the internal register as fallback.
func NewManager(editor EditorInterface, useSystem bool) *Manager {
	return &Manager{
		editor:    editor,
		useSystem: useSystem,
	}
}

// write stores content in the active clipboard.
func (m *Manager) write(content []byte) {
	m.register = content
	if m.useSystem {
		if err := clipboard.WriteAll(string(content)); err != nil {
			logger.Warnf("ClipboardManager: system clipboard write failed: %v", err)
		}
	}
}

// read returns the current clipboard content.
func (m *Manager) read() []byte {
	if m.useSystem {
		s, err := clipboard.ReadAll()
		if err == nil {
			return []byte(s)
		}
		logger.Warnf("ClipboardManager: system clipboard read failed, using register: %v", err)
	}
	return m.register
}

// CopySelection copies the selected text to the clipboard.
func (m *Manager) CopySelection() (bool, error) {
	start, end, ok := m.editor.GetSelection()
	if !ok {
		return false, nil
	}

	content, err := text.ExtractTextFromRange(m.editor.GetBuffer(), start, end)
	if err != nil {
		return false, fmt.Errorf("failed to extract selected text for copy: %w", err)
	}

	m.write(content)
	logger.Debugf("ClipboardManager: copied %d bytes", len(content))

	m.editor.ClearSelection()
	return true, nil
}

// CutSelection copies the selected text and deletes it from the
// buffer.
func (m *Manager) CutSelection() (bool, error) {
	start, end, ok := m.editor.GetSelection()
	if !ok {
		return false, nil
	}

	content, err := text.ExtractTextFromRange(m.editor.GetBuffer(), start, end)
	if err != nil {
		return false, fmt.Errorf("failed to extract selected text for cut: %w", err)
	}

	cursorBefore := m.editor.GetCursor()
	m.write(content)
	m.editor.ClearSelection()

	if err := m.deleteRange(start, end, content, cursorBefore); err != nil {
		return false, err
	}
	logger.Debugf("ClipboardManager: cut %d bytes", len(content))
	return true, nil
}

// Paste inserts clipboard content at the cursor, replacing any
// selection. Returns the number of runes pasted, zero when the
// clipboard is empty.
func (m *Manager) Paste() (int, error) {
	content := m.read()
	if len(content) == 0 {
		return 0, nil
	}

	buf := m.editor.GetBuffer()
	eventMgr := m.editor.GetEventManager()
	cursorBefore := m.editor.GetCursor()
	var pastePos types.Position

	if start, end, ok := m.editor.GetSelection(); ok {
		selectedText, err := text.ExtractTextFromRange(buf, start, end)
		if err != nil {
			return 0, fmt.Errorf("failed to extract selected text: %w", err)
		}

		m.editor.ClearSelection()
		if err := m.deleteRange(start, end, selectedText, cursorBefore); err != nil {
			return 0, fmt.Errorf("failed to delete selection before paste: %w", err)
		}
		pastePos = start
	} else {
		pastePos = cursorBefore
	}

	editInfo, err := buf.Insert(pastePos, content)
	if err != nil {
		return 0, fmt.Errorf("buffer insert failed during paste: %w", err)
	}

	// Cursor lands at the end of the pasted content.
	numLines := bytes.Count(content, []byte("\n"))
	lastLine := content
	if numLines > 0 {
		lastNewLineIndex := bytes.LastIndexByte(content, '\n')
		lastLine = content[lastNewLineIndex+1:]
	}
	lastLineRuneCount := utf8.RuneCount(lastLine)

	newPos := types.Position{Line: pastePos.Line + numLines}
	if numLines > 0 {
		newPos.Col = lastLineRuneCount
	} else {
		newPos.Col = pastePos.Col + lastLineRuneCount
	}

	kind := track.Classify(track.OriginClipboard, editInfo.InsertedRunes())

	if histMgr := m.editor.GetHistoryManager(); histMgr != nil {
		histMgr.RecordChange(history.Change{
			Type:          history.InsertAction,
			Text:          content,
			StartPosition: pastePos,
			EndPosition:   newPos,
			CursorBefore:  cursorBefore,
			Source:        kind,
		})
	}

	m.editor.SetCursor(newPos)
	m.editor.ScrollToCursor()

	logger.Debugf("ClipboardManager: pasted %d bytes", len(content))
	if eventMgr != nil {
		eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo, Source: kind})
	}
	return editInfo.InsertedRunes(), nil
}

// deleteRange removes [start, end) from the buffer, preserving the
// removed range's provenance in history so undo can restore it.
func (m *Manager) deleteRange(start, end types.Position, deletedText []byte, cursorBefore types.Position) error {
	buf := m.editor.GetBuffer()

	var removedSegs []track.Segment
	if tracker := m.editor.GetTracker(); tracker != nil {
		startOff := buf.OffsetForPosition(start)
		endOff := buf.OffsetForPosition(end)
		for _, seg := range tracker.SegmentsInRange(startOff, endOff) {
			if seg.Start < startOff {
				seg.Start = startOff
			}
			if seg.End > endOff {
				seg.End = endOff
			}
			if seg.End <= seg.Start {
				continue
			}
			seg.Start -= startOff
			seg.End -= startOff
			removedSegs = append(removedSegs, seg)
		}
	}

	editInfo, err := buf.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}

	if histMgr := m.editor.GetHistoryManager(); histMgr != nil && len(deletedText) > 0 {
		histMgr.RecordChange(history.Change{
			Type:          history.DeleteAction,
			Text:          deletedText,
			StartPosition: editInfo.StartPosition,
			EndPosition:   editInfo.OldEndPosition,
			CursorBefore:  cursorBefore,
			Segments:      removedSegs,
		})
	}

	m.editor.SetCursor(editInfo.StartPosition)

	if eventMgr := m.editor.GetEventManager(); eventMgr != nil {
		eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo, Source: track.SourceUnknown})
	}
	return nil
}
