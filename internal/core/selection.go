package core

import (
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/types"
)

// HasSelection reports whether a non-empty selection is active.
func (e *Editor) HasSelection() bool {
	_, ok := e.cursor.Selection()
	return ok
}

// GetSelection returns the normalized selected range.
func (e *Editor) GetSelection() (types.Range, bool) {
	return e.cursor.Selection()
}

// ClearSelection drops the selection anchor.
func (e *Editor) ClearSelection() {
	if e.cursor.IsSelected {
		e.cursor.IsSelected = false
		logger.DebugTagf("core", "selection cleared")
	}
}

// StartOrUpdateSelection anchors a selection at the caret unless one is
// already active. Called before a Shift+movement; the caret end then
// follows the cursor.
func (e *Editor) StartOrUpdateSelection() {
	if e.cursor.IsSelected {
		return
	}
	e.cursor.IsSelected = true
	e.cursor.SelectX = e.cursor.X
	e.cursor.SelectY = e.cursor.Y
	logger.DebugTagf("core", "selection started at %v", e.cursor.Anchor())
}

// SelectAll selects the whole buffer.
func (e *Editor) SelectAll() {
	last := e.buffer.LineCount() - 1
	e.cursor = types.Cursor{
		X: e.lineLen(last), Y: last,
		IsSelected: true,
	}
	e.ScrollToCursor()
}
