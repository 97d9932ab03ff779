package core

import (
	"unicode/utf8"

	"github.com/bethropolis/lex/internal/event"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/types"
	"github.com/bethropolis/lex/internal/utils"
)

// lineLen returns the rune length of a line, 0 if it cannot be read.
func (e *Editor) lineLen(line int) int {
	lineBytes, err := e.buffer.Line(line)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(lineBytes)
}

// MoveCursor moves the caret, wrapping across line ends when moving
// horizontally, and keeps it visible. The selection anchor stays put.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	currentLine := e.cursor.Y
	currentCol := e.cursor.X
	lineCount := e.buffer.LineCount()

	if deltaLine == 0 {
		if deltaCol > 0 && currentCol >= e.lineLen(currentLine) && currentLine < lineCount-1 {
			e.moveTo(currentLine+1, 0)
			return
		}
		if deltaCol < 0 && currentCol <= 0 && currentLine > 0 {
			e.moveTo(currentLine-1, e.lineLen(currentLine-1))
			return
		}
	}

	targetLine := currentLine + deltaLine
	if targetLine < 0 {
		targetLine = 0
	} else if targetLine >= lineCount {
		targetLine = lineCount - 1
	}

	targetCol := currentCol + deltaCol
	if targetCol < 0 {
		targetCol = 0
	}
	if maxCol := e.lineLen(targetLine); targetCol > maxCol {
		targetCol = maxCol
	}
	e.moveTo(targetLine, targetCol)
}

func (e *Editor) moveTo(line, col int) {
	e.cursor.Y = line
	e.cursor.X = col
	e.ScrollToCursor()
	logger.DebugTagf("core", "cursor at (%d,%d)", line, col)
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.cursor.Position()})
}

// ScrollToCursor adjusts the viewport so the caret is visible, keeping
// ScrollOff lines of context above and below it.
func (e *Editor) ScrollToCursor() {
	if e.viewHeight <= 0 || e.viewWidth <= 0 {
		return
	}

	effectiveScrollOff := e.opts.ScrollOff
	if effectiveScrollOff*2 >= e.viewHeight {
		effectiveScrollOff = (e.viewHeight - 1) / 2
	}

	if e.cursor.Y < e.ViewportY+effectiveScrollOff {
		e.ViewportY = e.cursor.Y - effectiveScrollOff
	} else if e.cursor.Y >= e.ViewportY+e.viewHeight-effectiveScrollOff {
		e.ViewportY = e.cursor.Y - e.viewHeight + 1 + effectiveScrollOff
	}

	cursorVisualCol := 0
	if lineBytes, err := e.buffer.Line(e.cursor.Y); err == nil {
		cursorVisualCol = utils.VisualColumn(lineBytes, e.cursor.X, e.opts.TabWidth)
	}
	if cursorVisualCol < e.ViewportX {
		e.ViewportX = cursorVisualCol
	} else if cursorVisualCol >= e.ViewportX+e.viewWidth {
		e.ViewportX = cursorVisualCol - e.viewWidth + 1
	}

	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	if e.ViewportX < 0 {
		e.ViewportX = 0
	}
}

// PageMove moves the caret and viewport by deltaPages screens.
func (e *Editor) PageMove(deltaPages int) {
	if e.viewHeight <= 0 {
		return
	}
	lineCount := e.buffer.LineCount()

	e.ViewportY += e.viewHeight * deltaPages
	maxViewportY := lineCount - e.viewHeight
	if e.ViewportY > maxViewportY {
		e.ViewportY = maxViewportY
	}
	if e.ViewportY < 0 {
		e.ViewportY = 0
	}
	e.MoveCursor(e.viewHeight*deltaPages, 0)
}

// Home moves the caret to the beginning of the line.
func (e *Editor) Home() {
	e.moveTo(e.cursor.Y, 0)
}

// End moves the caret past the last rune of the line.
func (e *Editor) End() {
	e.moveTo(e.cursor.Y, e.lineLen(e.cursor.Y))
}

// GotoLine moves the caret to the start of a 1-based line number.
func (e *Editor) GotoLine(n int) {
	pos := e.clampPosition(types.Position{Line: n - 1})
	e.moveTo(pos.Line, 0)
}
