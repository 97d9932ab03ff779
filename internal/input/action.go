// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit           // Esc: cancel, or quit when nothing is pending
	ActionForceQuit      // quit without checking the modified status
	ActionSave

	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd
	ActionSelectAll

	ActionInsertRune // carries Rune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward

	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste

	ActionEnterCommandMode
	ActionEnterFindMode
	ActionFindNext
	ActionFindPrevious
)

// ActionEvent is a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
	Shift  bool // Shift was held, e.g. to extend a selection
}

// IsMovement reports whether a moves the caret.
func (a Action) IsMovement() bool {
	switch a {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionMovePageUp, ActionMovePageDown, ActionMoveHome, ActionMoveEnd:
		return true
	}
	return false
}
