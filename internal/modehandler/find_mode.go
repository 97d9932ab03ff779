package modehandler

import (
	"github.com/bethropolis/lex/internal/input"
	"github.com/bethropolis/lex/internal/logger"
)

// handleActionFind handles actions when in ModeFind. Up and Down search
// backwards and forwards for the term typed so far.
func (mh *ModeHandler) handleActionFind(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.findBuffer = append(mh.findBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if len(mh.findBuffer) == 0 {
			mh.cancelFindMode()
			return true
		}
		mh.findBuffer = mh.findBuffer[:len(mh.findBuffer)-1]

	case input.ActionMoveUp, input.ActionMoveDown:
		if len(mh.findBuffer) > 0 {
			mh.lastSearchTerm = string(mh.findBuffer)
			mh.lastSearchForward = actionEvent.Action == input.ActionMoveDown
			mh.executeFind(mh.lastSearchTerm, mh.lastSearchForward)
		}

	case input.ActionInsertNewLine:
		term := string(mh.findBuffer)
		mh.findBuffer = mh.findBuffer[:0]
		mh.setMode(ModeNormal)
		if term == "" {
			mh.editor.ClearHighlights()
			return true
		}
		mh.lastSearchTerm = term
		mh.lastSearchForward = true
		mh.executeFind(term, true)
		return true

	case input.ActionQuit:
		mh.cancelFindMode()
		return true

	default:
		return false
	}
	mh.statusBar.SetPrompt("/" + string(mh.findBuffer))
	return true
}

// cancelFindMode leaves find mode without searching.
func (mh *ModeHandler) cancelFindMode() {
	mh.findBuffer = mh.findBuffer[:0]
	mh.editor.ClearHighlights()
	mh.setMode(ModeNormal)
	logger.Debugf("ModeHandler: Canceled Find Mode")
}

// executeFind moves to the next match of term and highlights all matches.
func (mh *ModeHandler) executeFind(term string, forward bool) {
	pos, found, err := mh.editor.Find(term, forward, false)
	switch {
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Invalid pattern: %v", err)
	case found:
		mh.statusBar.SetTemporaryMessage("Found: '%s'", term)
		logger.Debugf("ModeHandler: Found '%s' at %v", term, pos)
	default:
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", term)
	}
}
