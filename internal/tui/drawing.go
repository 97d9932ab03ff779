// internal/tui/drawing.go
package tui

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/lex/internal/config"
	"github.com/bethropolis/lex/internal/core"
	"github.com/bethropolis/lex/internal/highlight"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/theme"
	"github.com/bethropolis/lex/internal/types"
	"github.com/bethropolis/lex/internal/utils"
)

// Glyphs used when whitespace is drawn.
const (
	spaceGlyph = '·'
	tabGlyph   = '→'
)

// DrawOptions are the display settings for the text area.
type DrawOptions struct {
	LineNumbers     bool
	TabWidth        int
	StatusBarHeight int
	Highlight       highlight.DrawOptions
}

// DefaultDrawOptions returns the built-in display settings.
func DefaultDrawOptions() DrawOptions {
	return DrawOptions{
		LineNumbers:     true,
		TabWidth:        config.DefaultTabWidth,
		StatusBarHeight: config.StatusBarHeight,
		Highlight:       highlight.DrawOptions{Trailing: true},
	}
}

// GutterWidth returns the width of the line-number column for lineCount
// lines on a screen width columns wide, 0 when numbers are off or the
// screen is too narrow.
func GutterWidth(lineCount, width int, opts DrawOptions) int {
	if !opts.LineNumbers {
		return 0
	}
	if lineCount < 1 {
		lineCount = 1
	}
	gutter := len(strconv.Itoa(lineCount)) + 1
	if gutter >= width {
		return 0
	}
	return gutter
}

// TextAreaSize returns the size left for text once the gutter and status
// bar are taken off the screen.
func TextAreaSize(width, height, lineCount int, opts DrawOptions) (int, int) {
	w := width - GutterWidth(lineCount, width, opts)
	h := height - opts.StatusBarHeight
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// DrawBuffer draws the visible part of the editor's document. Each byte
// is styled from its highlight class; selection and the cursor line are
// applied on top.
func DrawBuffer(tuiManager *TUI, editor *core.Editor, th *theme.Theme, opts DrawOptions) {
	screen := tuiManager.screen
	width, height := tuiManager.Size()
	viewHeight := height - opts.StatusBarHeight
	if viewHeight <= 0 || width <= 0 {
		return
	}
	if opts.TabWidth < 1 {
		opts.TabWidth = 1
	}

	buf := editor.GetBuffer()
	lineCount := buf.LineCount()
	gutterWidth := GutterWidth(lineCount, width, opts)
	textAreaWidth := width - gutterWidth
	viewY, viewX := editor.GetViewport()
	cursor := editor.GetCursor()
	selection, selectionActive := editor.GetSelection()
	hl := editor.Highlighter()

	defaultStyle := th.GetStyle(theme.ElemDefault)
	cursorLineStyle := th.GetStyle(theme.ElemCursorLine)

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + viewY
		isCursorLine := lineIdx == cursor.Line

		fill := defaultStyle
		if isCursorLine {
			fill = cursorLineStyle
		}
		for x := 0; x < width; x++ {
			screen.SetContent(x, screenY, ' ', nil, fill)
		}

		if lineIdx >= lineCount {
			continue
		}
		if gutterWidth > 0 {
			drawLineNumber(screen, screenY, lineIdx, gutterWidth, isCursorLine, th)
		}

		lineBytes, err := buf.Line(lineIdx)
		if err != nil {
			logger.Warnf("DrawBuffer: line %d: %v", lineIdx, err)
			continue
		}
		row, _ := hl.Row(lineIdx)

		visualX := 0
		runeIdx := 0
		offset := 0
		state := -1
		rest := lineBytes
		for len(rest) > 0 && visualX < viewX+textAreaWidth {
			var cluster []byte
			var clusterWidth int
			cluster, rest, clusterWidth, state = uniseg.FirstGraphemeCluster(rest, state)
			isTab := len(cluster) == 1 && cluster[0] == '\t'
			if isTab {
				clusterWidth = opts.TabWidth - visualX%opts.TabWidth
			}

			class := highlight.Class(0)
			if offset < len(row.HL) {
				class = row.HL[offset]
			}
			pos := types.Position{Line: lineIdx, Col: runeIdx}
			selected := selectionActive && selection.Contains(pos)
			fg, bg := highlight.Resolve(class, cluster[0], selected, opts.Highlight)
			style := th.ClassStyle(fg, bg, isCursorLine)

			screenX := visualX - viewX + gutterWidth
			for i := 0; i < clusterWidth; i++ {
				x := screenX + i
				if x < gutterWidth || x >= width {
					continue
				}
				mainc, combc := glyph(cluster, i, isTab, opts.Highlight.DrawSpace)
				screen.SetContent(x, screenY, mainc, combc, style)
			}

			visualX += clusterWidth
			runeIdx += utf8.RuneCount(cluster)
			offset += len(cluster)
		}
	}
}

// glyph returns what to draw in cell i of a cluster.
func glyph(cluster []byte, i int, isTab, drawSpace bool) (rune, []rune) {
	switch {
	case isTab:
		if drawSpace && i == 0 {
			return tabGlyph, nil
		}
		return ' ', nil
	case i > 0:
		return ' ', nil
	case drawSpace && len(cluster) == 1 && cluster[0] == ' ':
		return spaceGlyph, nil
	}
	runes := []rune(string(cluster))
	return runes[0], runes[1:]
}

func drawLineNumber(screen tcell.Screen, y, lineIdx, gutterWidth int, active bool, th *theme.Theme) {
	style := th.GetStyle(theme.ElemLineNumber)
	if active {
		style = th.GetStyle(theme.ElemLineNumberActive)
	}
	text := fmt.Sprintf("%*d", gutterWidth-1, lineIdx+1)
	for i, r := range text {
		screen.SetContent(i, y, r, nil, style)
	}
	screen.SetContent(gutterWidth-1, y, ' ', nil, style)
}

// DrawCursor positions the terminal cursor, hiding it when the caret is
// outside the text area.
func DrawCursor(tuiManager *TUI, editor *core.Editor, opts DrawOptions) {
	screen := tuiManager.screen
	cursor := editor.GetCursor()
	viewY, viewX := editor.GetViewport()
	width, height := tuiManager.Size()
	gutterWidth := GutterWidth(editor.GetBuffer().LineCount(), width, opts)
	viewHeight := height - opts.StatusBarHeight

	cursorVisualCol := 0
	if lineBytes, err := editor.GetBuffer().Line(cursor.Line); err == nil {
		cursorVisualCol = utils.VisualColumn(lineBytes, cursor.Col, opts.TabWidth)
	} else {
		logger.Debugf("DrawCursor: Error getting line %d: %v", cursor.Line, err)
	}

	screenX := cursorVisualCol - viewX + gutterWidth
	screenY := cursor.Line - viewY
	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= viewHeight {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(screenX, screenY)
}
