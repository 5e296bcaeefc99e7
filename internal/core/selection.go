// internal/core/selection.go
package core

import (
	"unicode/utf8"

	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/types"
)

// HasSelection returns whether there is an active selection spanning
// at least one character.
func (e *Editor) HasSelection() bool {
	return e.selecting && e.selectionStart != e.selectionEnd
}

// GetSelection returns the normalized selection range (start <= end).
func (e *Editor) GetSelection() (start types.Position, end types.Position, ok bool) {
	if !e.selecting {
		return types.Position{Line: -1, Col: -1}, types.Position{Line: -1, Col: -1}, false
	}

	start = e.selectionStart
	end = e.selectionEnd
	if start == end {
		return start, end, false // Anchor set, nothing spanned yet
	}

	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}
	return start, end, true
}

// ClearSelection resets the selection state.
func (e *Editor) ClearSelection() {
	if e.selecting {
		logger.DebugTagf("core", "Selection cleared")
	}
	e.selecting = false
	e.selectionStart = types.Position{Line: -1, Col: -1}
	e.selectionEnd = types.Position{Line: -1, Col: -1}
}

// StartOrUpdateSelection anchors a selection at the cursor if none is
// active, then extends it to follow the cursor.
func (e *Editor) StartOrUpdateSelection() {
	currentCursor := e.GetCursor()
	if !e.selecting {
		e.selectionStart = currentCursor
		e.selecting = true
		logger.DebugTagf("core", "Selection started at %v", e.selectionStart)
	}
	e.selectionEnd = currentCursor
}

// UpdateSelectionEnd moves the selection end to the current cursor.
func (e *Editor) UpdateSelectionEnd() {
	if e.selecting {
		e.selectionEnd = e.GetCursor()
	}
}

// IsSelecting returns the raw selecting flag.
func (e *Editor) IsSelecting() bool {
	return e.selecting
}

// SelectAll selects the entire buffer and moves the cursor to its end.
func (e *Editor) SelectAll() {
	lastLine := e.buffer.LineCount() - 1
	if lastLine < 0 {
		return
	}
	lineBytes, err := e.buffer.Line(lastLine)
	if err != nil {
		return
	}
	e.selecting = true
	e.selectionStart = types.Position{Line: 0, Col: 0}
	e.selectionEnd = types.Position{Line: lastLine, Col: utf8.RuneCount(lineBytes)}
	e.SetCursor(e.selectionEnd)
	e.selectionEnd = e.GetCursor() // SetCursor may clamp
}
