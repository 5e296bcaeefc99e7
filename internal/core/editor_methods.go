package core

import (
	"github.com/ghostkey/ghostkey/internal/logger"
)

// Text operation methods delegated to textOps
func (e *Editor) InsertRune(r rune) error {
	return e.textOps.InsertRune(r)
}

func (e *Editor) InsertNewLine() error {
	return e.textOps.InsertNewLine()
}

func (e *Editor) InsertTab() error {
	return e.textOps.InsertTab()
}

func (e *Editor) DeleteBackward() error {
	return e.textOps.DeleteBackward()
}

func (e *Editor) DeleteForward() error {
	return e.textOps.DeleteForward()
}

// Clipboard operations delegated to clipboardManager
func (e *Editor) CopySelection() (bool, error) {
	return e.clipboardManager.CopySelection()
}

func (e *Editor) CutSelection() (bool, error) {
	return e.clipboardManager.CutSelection()
}

func (e *Editor) Paste() (int, error) {
	return e.clipboardManager.Paste()
}

// History operations delegated to historyManager
func (e *Editor) Undo() (bool, error) {
	return e.historyManager.Undo()
}

func (e *Editor) Redo() (bool, error) {
	return e.historyManager.Redo()
}

// Cursor operations delegated to cursorManager
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	e.cursorManager.Move(deltaLine, deltaCol)

	if e.IsSelecting() {
		e.UpdateSelectionEnd()
	}

	logger.DebugTagf("core", "MoveCursor: Delta(%d,%d) -> NewCursor(%d,%d)",
		deltaLine, deltaCol, e.GetCursor().Line, e.GetCursor().Col)
}

func (e *Editor) PageMove(deltaPages int) {
	e.cursorManager.PageMove(deltaPages)

	if e.IsSelecting() {
		e.UpdateSelectionEnd()
	}
}

func (e *Editor) Home() {
	e.cursorManager.MoveToLineStart()

	if e.IsSelecting() {
		e.UpdateSelectionEnd()
	}
}

func (e *Editor) End() {
	e.cursorManager.MoveToLineEnd()

	if e.IsSelecting() {
		e.UpdateSelectionEnd()
	}
}
