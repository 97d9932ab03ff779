// internal/core/editor.go
package core

import (
	"github.com/bethropolis/lex/internal/buffer"
	"github.com/bethropolis/lex/internal/config"
	"github.com/bethropolis/lex/internal/core/history"
	"github.com/bethropolis/lex/internal/event"
	"github.com/bethropolis/lex/internal/highlight"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/types"
)

// Options are the editor settings taken from config and convars.
type Options struct {
	TabWidth        int
	ScrollOff       int
	SystemClipboard bool
}

// DefaultOptions returns the built-in settings.
func DefaultOptions() Options {
	return Options{
		TabWidth:        config.DefaultTabWidth,
		ScrollOff:       config.DefaultScrollOff,
		SystemClipboard: config.SystemClipboard,
	}
}

// Editor is one open document: the buffer, its cursor and viewport, the
// undo history and the derived highlight rows. It is not safe for
// concurrent use; the app drives it from a single goroutine.
type Editor struct {
	buffer      buffer.Buffer
	history     *history.Manager
	highlighter *highlight.Highlighter

	cursor     types.Cursor
	ViewportY  int // Top visible line index (0-based)
	ViewportX  int // Leftmost visible screen column
	viewWidth  int
	viewHeight int
	opts       Options

	register  []byte // internal clipboard, also the fallback for the system one
	clipboard ClipboardProvider

	searchTerm string

	eventManager *event.Manager
}

// NewEditor creates an editor over buf with a fresh history and no highlight rule.
func NewEditor(buf buffer.Buffer, opts Options) *Editor {
	if opts.TabWidth < 1 {
		opts.TabWidth = config.DefaultTabWidth
	}
	if opts.ScrollOff < 0 {
		opts.ScrollOff = 0
	}
	e := &Editor{
		buffer:      buf,
		history:     history.NewManager(),
		highlighter: highlight.NewHighlighter(buf),
		opts:        opts,
	}
	if opts.SystemClipboard {
		e.clipboard = SystemClipboard()
	}
	return e
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// SetClipboard replaces the clipboard provider; nil uses only the internal register.
func (e *Editor) SetClipboard(c ClipboardProvider) {
	e.clipboard = c
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// History returns the undo history.
func (e *Editor) History() *history.Manager {
	return e.history
}

// Highlighter returns the highlight state for the buffer.
func (e *Editor) Highlighter() *highlight.Highlighter {
	return e.highlighter
}

// Cursor returns the caret and selection state.
func (e *Editor) Cursor() types.Cursor {
	return e.cursor
}

// GetCursor returns the caret position.
func (e *Editor) GetCursor() types.Position {
	return e.cursor.Position()
}

// GetViewport returns the top line and left screen column.
func (e *Editor) GetViewport() (int, int) {
	return e.ViewportY, e.ViewportX
}

// Options returns the current settings.
func (e *Editor) Options() Options {
	return e.opts
}

// SetTabWidth changes the tab stop used for display and horizontal scrolling.
func (e *Editor) SetTabWidth(n int) {
	if n < 1 {
		n = 1
	}
	e.opts.TabWidth = n
	e.ScrollToCursor()
}

// SetViewSize updates the text area dimensions.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	e.viewHeight = height
	if e.viewHeight < 0 {
		e.viewHeight = 0
	}
	e.ScrollToCursor()
}

// --- history.Document ---

// DeleteRange removes r from the buffer and returns the removed text.
func (e *Editor) DeleteRange(r types.Range) history.Clipboard {
	return history.NewClipboard(e.deleteRange(r))
}

// PasteText inserts text at the given position.
func (e *Editor) PasteText(text history.Clipboard, at types.Position) {
	e.insertAt(at, text.Bytes())
}

// SetCursor places the caret (and selection) exactly as given, clamped to the buffer.
func (e *Editor) SetCursor(c types.Cursor) {
	pos := e.clampPosition(c.Position())
	c.X, c.Y = pos.Col, pos.Line
	if c.IsSelected {
		anchor := e.clampPosition(c.Anchor())
		c.SelectX, c.SelectY = anchor.Col, anchor.Line
	}
	e.cursor = c
	e.ScrollToCursor()
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: pos})
}

// SetNewline changes the buffer's newline kind without recording history.
func (e *Editor) SetNewline(kind types.NewlineKind) {
	e.buffer.SetNewline(kind)
	e.dispatch(event.TypeNewlineChanged, event.NewlineChangedData{Kind: kind})
}

var _ history.Document = (*Editor)(nil)

// deleteRange removes r and keeps the highlight rows aligned.
func (e *Editor) deleteRange(r types.Range) []byte {
	r = types.NewRange(e.clampPosition(r.Start), e.clampPosition(r.End))
	if r.IsEmpty() {
		return nil
	}
	removed, err := e.buffer.Delete(r)
	if err != nil {
		logger.Errorf("Editor: delete %v failed: %v", r, err)
		return nil
	}
	if n := r.End.Line - r.Start.Line; n > 0 {
		e.highlighter.DeleteRows(r.Start.Line+1, n)
	}
	e.highlighter.Update(r.Start.Line)
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{StartLine: r.Start.Line, EndLine: r.Start.Line})
	return removed
}

// insertAt inserts text and returns the position just after it.
func (e *Editor) insertAt(at types.Position, text []byte) types.Position {
	at = e.clampPosition(at)
	if len(text) == 0 {
		return at
	}
	end, err := e.buffer.Insert(at, text)
	if err != nil {
		logger.Errorf("Editor: insert at %v failed: %v", at, err)
		return at
	}
	if n := end.Line - at.Line; n > 0 {
		e.highlighter.InsertRows(at.Line+1, n)
	}
	e.highlighter.UpdateRange(at.Line, end.Line)
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{StartLine: at.Line, EndLine: end.Line})
	return end
}

// clampPosition limits pos to an existing line and column.
func (e *Editor) clampPosition(pos types.Position) types.Position {
	lineCount := e.buffer.LineCount()
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := e.lineLen(pos.Line); pos.Col > n {
		pos.Col = n
	}
	return pos
}
