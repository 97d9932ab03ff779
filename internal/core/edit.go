package core

import (
	"unicode/utf8"

	"github.com/bethropolis/lex/internal/core/history"
	"github.com/bethropolis/lex/internal/event"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/types"
)

// replace swaps the text in r for text, moves the caret after it and
// records the change as one EditAction.
func (e *Editor) replace(r types.Range, text []byte) *history.EditAction {
	r = types.NewRange(e.clampPosition(r.Start), e.clampPosition(r.End))
	if r.IsEmpty() && len(text) == 0 {
		return nil
	}
	e.clearSearch()
	oldCursor := e.cursor

	deleted := e.deleteRange(r)
	end := e.insertAt(r.Start, text)

	e.cursor = types.CursorAt(end)
	e.ScrollToCursor()

	action := &history.EditAction{
		DeletedRange: r,
		DeletedText:  history.NewClipboard(deleted),
		AddedRange:   types.Range{Start: r.Start, End: end},
		AddedText:    history.NewClipboard(text),
		OldCursor:    oldCursor,
		NewCursor:    e.cursor,
	}
	e.history.Append(action)
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: end})
	return action
}

// insertText replaces the selection, or inserts at the caret.
func (e *Editor) insertText(text []byte) {
	r, ok := e.cursor.Selection()
	if !ok {
		pos := e.cursor.Position()
		r = types.Range{Start: pos, End: pos}
	}
	e.replace(r, text)
}

// InsertRune types r at the caret.
func (e *Editor) InsertRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	e.insertText(buf[:n])
}

// InsertNewLine splits the line at the caret.
func (e *Editor) InsertNewLine() {
	e.insertText([]byte{'\n'})
}

// InsertTab inserts a hard tab.
func (e *Editor) InsertTab() {
	e.insertText([]byte{'\t'})
}

// InsertText inserts arbitrary text (for example a paste) at the caret.
func (e *Editor) InsertText(text []byte) {
	if len(text) == 0 {
		return
	}
	e.insertText(text)
}

// DeleteBackward removes the selection, or the rune (or line break) before the caret.
func (e *Editor) DeleteBackward() {
	if e.DeleteSelection() {
		return
	}
	pos := e.cursor.Position()
	var start types.Position
	switch {
	case pos.Col > 0:
		start = types.Position{Line: pos.Line, Col: pos.Col - 1}
	case pos.Line > 0:
		start = types.Position{Line: pos.Line - 1, Col: e.lineLen(pos.Line - 1)}
	default:
		logger.DebugTagf("core", "DeleteBackward at start of buffer")
		return
	}
	e.replace(types.Range{Start: start, End: pos}, nil)
}

// DeleteForward removes the selection, or the rune (or line break) after the caret.
func (e *Editor) DeleteForward() {
	if e.DeleteSelection() {
		return
	}
	pos := e.cursor.Position()
	var end types.Position
	switch {
	case pos.Col < e.lineLen(pos.Line):
		end = types.Position{Line: pos.Line, Col: pos.Col + 1}
	case pos.Line < e.buffer.LineCount()-1:
		end = types.Position{Line: pos.Line + 1, Col: 0}
	default:
		logger.DebugTagf("core", "DeleteForward at end of buffer")
		return
	}
	e.replace(types.Range{Start: pos, End: end}, nil)
}

// DeleteSelection removes the selected text. It returns false if nothing was selected.
func (e *Editor) DeleteSelection() bool {
	r, ok := e.cursor.Selection()
	if !ok {
		e.ClearSelection()
		return false
	}
	e.replace(r, nil)
	return true
}

// SetNewlineKind changes the document's newline kind as an undoable step.
func (e *Editor) SetNewlineKind(kind types.NewlineKind) bool {
	old := e.buffer.Newline()
	if old == kind {
		return false
	}
	e.history.Append(&history.AttributeAction{OldNewline: old, NewNewline: kind})
	e.SetNewline(kind)
	return true
}

// Undo reverts the last recorded step. It returns false if there was none.
func (e *Editor) Undo() bool {
	e.clearSearch()
	if !e.history.Undo(e) {
		return false
	}
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{Undo: true, Dirty: e.history.Dirty()})
	return true
}

// Redo reapplies the last undone step. It returns false if there was none.
func (e *Editor) Redo() bool {
	e.clearSearch()
	if !e.history.Redo(e) {
		return false
	}
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{Undo: false, Dirty: e.history.Dirty()})
	return true
}
