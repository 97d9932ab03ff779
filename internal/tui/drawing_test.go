package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lex/internal/buffer"
	"github.com/bethropolis/lex/internal/core"
	"github.com/bethropolis/lex/internal/highlight"
	"github.com/bethropolis/lex/internal/syntax"
	"github.com/bethropolis/lex/internal/theme"
)

func setup(t *testing.T, content string, opts DrawOptions) (*TUI, tcell.SimulationScreen, *core.Editor, *theme.Theme) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(20, 4)
	t.Cleanup(s.Fini)

	th := theme.LexDark()
	tm := NewWithScreen(s, th.GetStyle(theme.ElemDefault))

	e := core.NewEditor(buffer.NewSliceBufferFromBytes([]byte(content)), core.Options{TabWidth: opts.TabWidth})
	e.SetRule(&syntax.Rule{
		Name:     "test",
		Keywords: [3][]string{nil, {"int"}, nil},
		Flags:    syntax.HighlightNumbers,
	})
	e.SetViewSize(TextAreaSize(20, 4, e.GetBuffer().LineCount(), opts))
	return tm, s, e, th
}

func cell(s tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.GetContent(x, y)
	return r, style
}

func TestGutterWidth(t *testing.T) {
	opts := DefaultDrawOptions()
	assert.Equal(t, 2, GutterWidth(9, 80, opts))
	assert.Equal(t, 3, GutterWidth(10, 80, opts))
	assert.Equal(t, 0, GutterWidth(10, 3, opts))
	opts.LineNumbers = false
	assert.Equal(t, 0, GutterWidth(10, 80, opts))
}

func TestDrawBufferClasses(t *testing.T) {
	opts := DefaultDrawOptions()
	tm, s, e, th := setup(t, "int x; \n\tab", opts)

	DrawBuffer(tm, e, th, opts)

	r, style := cell(s, 0, 0)
	assert.Equal(t, '1', r)
	assert.Equal(t, th.GetStyle(theme.ElemLineNumberActive), style)
	_, style = cell(s, 0, 1)
	assert.Equal(t, th.GetStyle(theme.ElemLineNumber), style)

	r, style = cell(s, 2, 0)
	assert.Equal(t, 'i', r)
	assert.Equal(t, th.ClassStyle(highlight.Keyword2, highlight.BgNormal, true), style)

	r, style = cell(s, 6, 0)
	assert.Equal(t, 'x', r)
	assert.Equal(t, th.ClassStyle(highlight.Normal, highlight.BgNormal, true), style)

	_, style = cell(s, 8, 0)
	assert.Equal(t, th.ClassStyle(highlight.Normal, highlight.BgTrailing, true), style, "trailing space")

	r, _ = cell(s, 2, 1)
	assert.Equal(t, ' ', r)
	r, style = cell(s, 6, 1)
	assert.Equal(t, 'a', r, "tab expands to the next stop")
	assert.Equal(t, th.ClassStyle(highlight.Normal, highlight.BgNormal, false), style)

	_, style = cell(s, 0, 2)
	assert.Equal(t, th.GetStyle(theme.ElemDefault), style, "rows past the end")
}

func TestDrawBufferOptions(t *testing.T) {
	opts := DefaultDrawOptions()
	opts.Highlight = highlight.DrawOptions{DrawSpace: true, Trailing: false}
	opts.LineNumbers = false
	tm, s, e, th := setup(t, "int x; \n\tab", opts)

	DrawBuffer(tm, e, th, opts)

	r, style := cell(s, 6, 0)
	assert.Equal(t, spaceGlyph, r)
	assert.Equal(t, th.ClassStyle(highlight.Space, highlight.BgNormal, true), style)

	r, _ = cell(s, 0, 1)
	assert.Equal(t, tabGlyph, r)
	r, _ = cell(s, 4, 1)
	assert.Equal(t, 'a', r)
}

func TestDrawBufferSelection(t *testing.T) {
	opts := DefaultDrawOptions()
	opts.LineNumbers = false
	tm, s, e, th := setup(t, "int x;", opts)
	e.StartOrUpdateSelection()
	e.MoveCursor(0, 2)

	DrawBuffer(tm, e, th, opts)

	_, style := cell(s, 0, 0)
	assert.Equal(t, th.ClassStyle(highlight.Keyword2, highlight.BgSelect, true), style)
	_, style = cell(s, 2, 0)
	assert.Equal(t, th.ClassStyle(highlight.Keyword2, highlight.BgNormal, true), style)
}

func TestDrawCursor(t *testing.T) {
	opts := DefaultDrawOptions()
	tm, s, e, _ := setup(t, "int x;\n\tab", opts)
	e.MoveCursor(1, 0)
	e.End()

	DrawCursor(tm, e, opts)
	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 2+4+2, x)
	assert.Equal(t, 1, y)
}
