package modehandler

import (
	"strings"

	"github.com/ghostkey/ghostkey/internal/input"
	"github.com/ghostkey/ghostkey/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false

	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer += string(actionEvent.Rune)
		needsUpdate = true

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) > 0 {
			runes := []rune(mh.cmdBuffer)
			mh.cmdBuffer = string(runes[:len(runes)-1])
			needsUpdate = true
		} else {
			mh.exitCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
		}

	case input.ActionInsertNewLine: // Enter: Execute command
		mh.executeCommand()
		mh.currentMode = ModeNormal
		mh.statusBar.ClearCommandInput()

	case input.ActionQuit: // Escape: Cancel command
		mh.exitCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")

	default:
		actionProcessed = false
	}

	if needsUpdate && mh.currentMode == ModeCommand {
		mh.statusBar.SetCommandInput(":" + mh.cmdBuffer)
	}

	return actionProcessed
}

func (mh *ModeHandler) exitCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = ""
	mh.statusBar.ClearCommandInput()
}

// executeCommand parses and runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	if mh.cmdBuffer == "" {
		return
	}
	cmdStr := mh.cmdBuffer
	mh.cmdBuffer = ""

	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return
	}
	cmdName := parts[0]
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	if cmdFunc, exists := mh.commands[cmdName]; exists {
		logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
		if err := cmdFunc(args); err != nil {
			mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
		}
	} else {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
	}
}
