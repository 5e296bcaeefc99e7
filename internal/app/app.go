// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gdamore/tcell/v2"

	"github.com/ghostkey/ghostkey/internal/buffer"
	"github.com/ghostkey/ghostkey/internal/config"
	"github.com/ghostkey/ghostkey/internal/core"
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/input"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/modehandler"
	"github.com/ghostkey/ghostkey/internal/plugin"
	"github.com/ghostkey/ghostkey/internal/statusbar"
	"github.com/ghostkey/ghostkey/internal/theme"
	"github.com/ghostkey/ghostkey/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     *appEditorAPI
	filePath      string
	activeTheme   *theme.Theme

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(filePath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	buf := buffer.NewSliceBuffer()
	editor := core.NewEditor(buf)

	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	themeManager := theme.NewManager()
	if name := config.Get().Editor.Theme; name != "" {
		if err := themeManager.SetTheme(name); err != nil {
			logger.Warnf("Configured theme %q not available: %v", name, err)
		}
	}
	activeTheme := themeManager.Current()
	theme.SetCurrentTheme(activeTheme)

	inputProcessor := input.NewInputProcessor()
	statusBar := statusbar.New(statusbar.ConfigFromTheme(activeTheme))
	pluginManager := plugin.NewManager()
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: inputProcessor,
		EventManager:   eventManager,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	appInstance := &App{
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: pluginManager,
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		filePath:      filePath,
		activeTheme:   activeTheme,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}

	appInstance.editorAPI = newEditorAPI(appInstance)

	// The tracker subscription runs first so later handlers observe
	// up-to-date provenance.
	eventManager.Subscribe(event.TypeBufferModified, appInstance.handleBufferModifiedForTracking)
	eventManager.Subscribe(event.TypeBufferModified, appInstance.handleBufferModifiedForStatus)
	eventManager.Subscribe(event.TypeCursorMoved, appInstance.handleCursorMovedForStatus)
	eventManager.Subscribe(event.TypeBufferSaved, appInstance.handleBufferSavedForStatus)
	eventManager.Subscribe(event.TypeBufferLoaded, appInstance.handleBufferLoadedForStatus)
	eventManager.Subscribe(event.TypeSegmentsChanged, appInstance.handleSegmentsChanged)

	if err := registerPlugins(pluginManager); err != nil {
		logger.Warnf("Plugin registration problem: %v", err)
	}
	registerAppCommands(appInstance)
	pluginManager.InitializePlugins(appInstance.editorAPI)

	if filePath != "" {
		if err := editor.LoadFile(filePath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// New file: start empty under the requested name.
				buf.LoadBytes(nil, filePath)
				logger.Infof("Starting new file %s", filePath)
			} else {
				logger.Warnf("Error loading file '%s': %v", filePath, err)
			}
		}
	}

	width, height := tuiManager.Size()
	editor.SetViewSize(width, height)

	return appInstance, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("GhostKey - Ctrl+S Save | Ctrl+V Paste | ESC Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.GetBuffer().IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			w, h := a.tuiManager.Size()
			a.editor.SetViewSize(w, h)
			a.drawEditor()
		}
	}
}

// eventLoop handles TUI events, delegating key events to ModeHandler.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true

		case *tcell.EventKey:
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// requestQuit closes the quit channel, honoring unsaved changes unless
// forced.
func (a *App) requestQuit(force bool) {
	if !force && a.editor.GetBuffer().IsModified() {
		a.statusBar.SetTemporaryMessage("No write since last change (use :q! to force quit)")
		a.requestRedraw()
		return
	}
	close(a.quit)
}

// GetModeHandler allows the API adapter to access the mode handler for
// command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// GetThemeManager returns the app's theme manager.
func (a *App) GetThemeManager() *theme.Manager {
	return a.themeManager
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.activeTheme
}

// SetTheme changes the app's active theme and triggers a redraw.
func (a *App) SetTheme(t *theme.Theme) {
	if t == nil {
		return
	}
	a.activeTheme = t
	theme.SetCurrentTheme(t)
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(t))
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: t.Name})
	a.requestRedraw()
}
