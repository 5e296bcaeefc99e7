// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ghostkey/ghostkey/internal/core"
	"github.com/ghostkey/ghostkey/internal/event"
	"github.com/ghostkey/ghostkey/internal/input"
	"github.com/ghostkey/ghostkey/internal/logger"
	"github.com/ghostkey/ghostkey/internal/plugin"
	"github.com/ghostkey/ghostkey/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}

	currentMode      InputMode
	cmdBuffer        string
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{}
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key
// event. Returns true if the event resulted in an action requiring
// redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	var actionProcessed bool
	switch mh.currentMode {
	case ModeNormal:
		actionProcessed = mh.handleActionNormal(actionEvent, ev)
	case ModeCommand:
		actionProcessed = mh.handleActionCommand(actionEvent)
	default:
		logger.Debugf("Warning: Unknown input mode: %v", mh.currentMode)
		actionProcessed = false
	}

	return actionProcessed || (actionEvent.Action == input.ActionQuit && mh.forceQuitPending)
}

// handleActionNormal handles actions when in ModeNormal.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent, ev *tcell.EventKey) bool {
	actionProcessed := true
	originalCursor := mh.editor.GetCursor()
	isShift := ev.Modifiers()&tcell.ModShift != 0

	isMovementAction := false
	switch actionEvent.Action {
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionMovePageUp, input.ActionMovePageDown, input.ActionMoveHome, input.ActionMoveEnd:
		isMovementAction = true
	}

	// Shift+movement extends the selection, plain movement drops it.
	if isMovementAction && isShift {
		mh.editor.StartOrUpdateSelection()
	}
	if isMovementAction && !isShift {
		mh.editor.ClearSelection()
	}

	switch actionEvent.Action {
	// Mode Switching
	case input.ActionEnterCommandMode:
		mh.editor.ClearSelection()
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetCommandInput(":")
		logger.Debugf("ModeHandler: Entering Command Mode")

	// Quit/Save
	case input.ActionQuit:
		if mh.editor.GetBuffer().IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			actionProcessed = false
		} else {
			close(mh.quitSignal)
			actionProcessed = false
		}
	case input.ActionForceQuit:
		close(mh.quitSignal)
		actionProcessed = false

	case input.ActionSave:
		mh.editor.ClearSelection()
		mh.saveBuffer()

	// Movement
	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		mh.editor.PageMove(-1)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1)
	case input.ActionMoveHome:
		mh.editor.Home()
	case input.ActionMoveEnd:
		mh.editor.End()

	// Selection
	case input.ActionSelectAll:
		mh.editor.SelectAll()

	// Clipboard
	case input.ActionCopy:
		copied, err := mh.editor.CopySelection()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
			logger.Debugf("Copy error: %v", err)
			actionProcessed = false
		} else if copied {
			mh.statusBar.SetTemporaryMessage("Text copied to clipboard")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		}

	case input.ActionCut:
		cut, err := mh.editor.CutSelection()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Cut failed: %v", err)
			logger.Debugf("Cut error: %v", err)
			actionProcessed = false
		} else if cut {
			mh.statusBar.SetTemporaryMessage("Text cut to clipboard")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to cut")
		}

	case input.ActionPaste:
		pasted, err := mh.editor.Paste()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
			logger.Debugf("Paste error: %v", err)
			actionProcessed = false
		} else if pasted == 0 {
			mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
			actionProcessed = false
		} else {
			mh.statusBar.SetTemporaryMessage("Pasted %d characters", pasted)
		}

	// Undo/Redo
	case input.ActionUndo:
		undone, err := mh.editor.Undo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Undo failed: %v", err)
			logger.Debugf("Undo error: %v", err)
			actionProcessed = false
		} else if !undone {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
			actionProcessed = false
		}

	case input.ActionRedo:
		redone, err := mh.editor.Redo()
		if err != nil {
			mh.statusBar.SetTemporaryMessage("Redo failed: %v", err)
			logger.Debugf("Redo error: %v", err)
			actionProcessed = false
		} else if !redone {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
			actionProcessed = false
		}

	// Text Modification
	case input.ActionInsertRune:
		if err := mh.editor.InsertRune(actionEvent.Rune); err != nil {
			logger.Debugf("Err InsertRune: %v", err)
			actionProcessed = false
		}
	case input.ActionInsertNewLine:
		if err := mh.editor.InsertNewLine(); err != nil {
			logger.Debugf("Err InsertNewLine: %v", err)
			actionProcessed = false
		}
	case input.ActionInsertTab:
		if err := mh.editor.InsertTab(); err != nil {
			logger.Debugf("Err InsertTab: %v", err)
			actionProcessed = false
		}
	case input.ActionDeleteCharBackward:
		if err := mh.editor.DeleteBackward(); err != nil {
			logger.Debugf("Err DeleteBackward: %v", err)
			actionProcessed = false
		}
	case input.ActionDeleteCharForward:
		if err := mh.editor.DeleteForward(); err != nil {
			logger.Debugf("Err DeleteForward: %v", err)
			actionProcessed = false
		}

	case input.ActionUnknown:
		actionProcessed = false
	default:
		actionProcessed = false
	}

	newCursor := mh.editor.GetCursor()
	if actionProcessed && newCursor != originalCursor {
		mh.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{
			NewPosition: newCursor,
			Offset:      mh.editor.GetBuffer().OffsetForPosition(newCursor),
		})
	}
	if actionEvent.Action != input.ActionQuit && actionEvent.Action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}

	return actionProcessed
}

// saveBuffer saves and reports the result on the status bar.
func (mh *ModeHandler) saveBuffer(path ...string) {
	err := mh.editor.SaveBuffer(path...)
	savedPath := mh.editor.GetBuffer().FilePath()
	if savedPath == "" {
		savedPath = "[No Name]"
	}
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
	} else {
		mh.statusBar.SetTemporaryMessage("Buffer saved to %s", savedPath)
	}
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns a display name for the current mode.
func (mh *ModeHandler) GetCurrentModeString() string {
	switch mh.currentMode {
	case ModeCommand:
		return "COMMAND"
	default:
		return ""
	}
}

// GetCommandBuffer returns the current command buffer content.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}
