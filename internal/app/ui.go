package app

import (
	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/meta"
	"github.com/ghostkey/ghostkey/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	currentTheme := a.themeManager.Current()
	a.activeTheme = currentTheme

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	statusBarHeight := config.Get().Editor.StatusBarHeight
	viewHeight := height - statusBarHeight

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), StatusBarHeight: %d, ViewHeight: %d",
		width, height, statusBarHeight, viewHeight)

	a.tuiManager.Clear()
	tui.DrawBuffer(a.tuiManager, a.editor, a.activeTheme)
	a.statusBar.Draw(screen, width, height)
	tui.DrawCursor(a.tuiManager, a.editor)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar
// component.
func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())
	a.statusBar.SetComposition(a.sourceStats())
}

// sourceStats computes the buffer's current typed/pasted breakdown.
func (a *App) sourceStats() meta.Stats {
	tracker := a.editor.GetTracker()
	segs, totalRunes := tracker.Snapshot()
	return meta.Compute(segs, totalRunes)
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
