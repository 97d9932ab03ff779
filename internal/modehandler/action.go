package modehandler

import (
	"github.com/bethropolis/lex/internal/input"
	"github.com/bethropolis/lex/internal/logger"
)

// executeAction runs an action in normal mode.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	actionProcessed := true

	if action.IsMovement() {
		if actionEvent.Shift {
			mh.editor.StartOrUpdateSelection()
		} else {
			mh.editor.ClearSelection()
		}
	}

	switch action {
	case input.ActionEnterCommandMode:
		mh.editor.ClearSelection()
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.setMode(ModeCommand)
		logger.Debugf("ModeHandler: Entering Command Mode")

	case input.ActionEnterFindMode:
		mh.editor.ClearSelection()
		mh.findBuffer = mh.findBuffer[:0]
		mh.editor.ClearHighlights()
		mh.setMode(ModeFind)
		logger.Debugf("ModeHandler: Entering Find Mode")

	case input.ActionQuit:
		switch {
		case mh.editor.SearchTerm() != "":
			mh.editor.ClearHighlights()
			mh.statusBar.SetTemporaryMessage("Highlights cleared")
		case mh.editor.HasSelection():
			mh.editor.ClearSelection()
		case mh.editor.IsModified() && !mh.forceQuitPending:
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		default:
			mh.Quit()
			return false
		}
	case input.ActionForceQuit:
		mh.Quit()
		return false

	case input.ActionSave:
		mh.save()

	case input.ActionFindNext, input.ActionFindPrevious:
		if mh.lastSearchTerm == "" {
			mh.statusBar.SetTemporaryMessage("No previous search term")
			break
		}
		forward := mh.lastSearchForward
		if action == input.ActionFindPrevious {
			forward = !forward
		}
		mh.executeFind(mh.lastSearchTerm, forward)

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
	case input.ActionSelectAll:
		mh.editor.SelectAll()

	case input.ActionCopy:
		if mh.editor.Copy() {
			mh.statusBar.SetTemporaryMessage("Text copied to clipboard")
		} else {
			mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		}
	case input.ActionCut:
		if !mh.editor.Cut() {
			mh.statusBar.SetTemporaryMessage("Nothing selected to cut")
		}
	case input.ActionPaste:
		if !mh.editor.Paste() {
			mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
		}

	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionInsertRune:
		mh.editor.InsertRune(actionEvent.Rune)
	case input.ActionInsertNewLine:
		mh.editor.InsertNewLine()
	case input.ActionInsertTab:
		mh.editor.InsertTab()
	case input.ActionDeleteCharBackward:
		mh.editor.DeleteBackward()
	case input.ActionDeleteCharForward:
		mh.editor.DeleteForward()

	default:
		actionProcessed = false
	}

	if actionProcessed && action != input.ActionQuit {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

func (mh *ModeHandler) save() {
	mh.editor.ClearSelection()
	if err := mh.editor.Save(""); err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		return
	}
	mh.statusBar.SetTemporaryMessage("Buffer saved to %s", mh.editor.FilePath())
}
