// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/meta"
	"github.com/ghostkey/ghostkey/internal/plugin"
	"github.com/ghostkey/ghostkey/internal/theme"
	"github.com/ghostkey/ghostkey/internal/track"
	"github.com/ghostkey/ghostkey/internal/types"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI
// interface.
type appEditorAPI struct {
	app *App
}

// newEditorAPI creates a new API adapter instance.
func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Buffer Access ---

func (api *appEditorAPI) GetBufferLines(startLine, endLine int) ([][]byte, error) {
	lines := api.app.editor.GetBuffer().Lines()
	if startLine < 0 || endLine > len(lines) || startLine > endLine {
		return nil, fmt.Errorf("line range [%d, %d) out of bounds (0..%d)", startLine, endLine, len(lines))
	}
	return lines[startLine:endLine], nil
}

func (api *appEditorAPI) GetBufferLine(line int) ([]byte, error) {
	return api.app.editor.GetBuffer().Line(line)
}

func (api *appEditorAPI) GetBufferLineCount() int {
	return api.app.editor.GetBuffer().LineCount()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.app.editor.GetBuffer().FilePath()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.app.editor.GetBuffer().IsModified()
}

func (api *appEditorAPI) GetBufferBytes() []byte {
	return api.app.editor.GetBuffer().Bytes()
}

// --- Buffer Modification ---

// InsertText inserts on behalf of a plugin. The inserted range has no
// keyboard or clipboard origin, so it stays untracked.
func (api *appEditorAPI) InsertText(pos types.Position, text []byte) error {
	editInfo, err := api.app.editor.GetBuffer().Insert(pos, text)
	if err == nil {
		api.app.eventManager.Dispatch(event.TypeBufferModified,
			event.BufferModifiedData{Edit: editInfo, Source: track.SourceUnknown})
		api.app.requestRedraw()
	}
	return err
}

func (api *appEditorAPI) DeleteRange(start, end types.Position) error {
	editInfo, err := api.app.editor.GetBuffer().Delete(start, end)
	if err == nil {
		api.app.eventManager.Dispatch(event.TypeBufferModified,
			event.BufferModifiedData{Edit: editInfo, Source: track.SourceUnknown})
		api.app.requestRedraw()
	}
	return err
}

// --- Provenance ---

func (api *appEditorAPI) GetSegments() []track.Segment {
	return api.app.editor.GetTracker().Segments()
}

func (api *appEditorAPI) GetSourceStats() meta.Stats {
	return api.app.sourceStats()
}

// --- Cursor & Viewport ---

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.editor.GetCursor()
}

func (api *appEditorAPI) SetCursor(pos types.Position) {
	api.app.editor.SetCursor(pos)
	api.app.requestRedraw()
}

func (api *appEditorAPI) GetViewport() (int, int) {
	return api.app.editor.GetViewport()
}

// --- Persistence ---

// SaveBuffer saves the current buffer to disk, optionally to a new
// filename.
func (api *appEditorAPI) SaveBuffer(filePath ...string) error {
	return api.app.editor.SaveBuffer(filePath...)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.Errorf("appEditorAPI cannot register command '%s', app or modeHandler is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.activeTheme.GetStyle(styleName)
}

// SetTheme sets the active theme by name.
func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.GetThemeManager().SetTheme(name); err != nil {
		return err
	}
	api.app.SetTheme(api.app.GetThemeManager().Current())
	logger.Debugf("Theme changed to '%s', redraw requested", name)
	return nil
}

// GetTheme returns the current active theme.
func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.GetTheme()
}

// ListThemes returns a list of all available theme names.
func (api *appEditorAPI) ListThemes() []string {
	return api.app.GetThemeManager().ListThemes()
}

// RequestQuit signals the application to quit.
func (api *appEditorAPI) RequestQuit(force bool) {
	api.app.requestQuit(force)
}
