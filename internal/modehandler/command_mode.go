package modehandler

import (
	"github.com/bethropolis/lex/internal/input"
	"github.com/bethropolis/lex/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) == 0 {
			mh.setMode(ModeNormal)
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]

	case input.ActionInsertNewLine:
		line := string(mh.cmdBuffer)
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.setMode(ModeNormal)
		mh.executeCommand(line)
		return true

	case input.ActionQuit:
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.setMode(ModeNormal)
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true

	default:
		return false
	}
	mh.statusBar.SetPrompt(":" + string(mh.cmdBuffer))
	return true
}

// executeCommand runs one line through the configuration registry.
func (mh *ModeHandler) executeCommand(line string) {
	if line == "" {
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s'", line)
	msg, err := mh.registry.Execute(line)
	switch {
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Error: %v", err)
	case msg != "":
		mh.statusBar.SetTemporaryMessage("%s", msg)
	}
}
