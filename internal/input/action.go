// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line

	// --- Text Manipulation ---
	ActionInsertRune    // Requires Rune argument
	ActionInsertNewLine // Enter
	ActionInsertTab
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key

	// --- Clipboard ---
	ActionPaste
	ActionCopy
	ActionCut

	// --- Selection ---
	ActionSelectAll

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Editor Mode ---
	ActionEnterCommandMode // ':'
)

// ActionEvent represents a decoded input event resulting in an action.
// It may carry payload data needed for the action (like the rune to
// insert).
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}
