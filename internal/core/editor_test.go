package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lex/internal/buffer"
	"github.com/bethropolis/lex/internal/event"
	"github.com/bethropolis/lex/internal/highlight"
	"github.com/bethropolis/lex/internal/syntax"
	"github.com/bethropolis/lex/internal/types"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.text, f.err }
func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return f.err
}

func newTestEditor(t *testing.T, content string) *Editor {
	t.Helper()
	opts := DefaultOptions()
	opts.SystemClipboard = false
	e := NewEditor(buffer.NewSliceBufferFromBytes([]byte(content)), opts)
	e.SetViewSize(80, 24)
	return e
}

func text(e *Editor) string {
	return string(e.GetBuffer().Bytes())
}

func cRule() *syntax.Rule {
	return &syntax.Rule{
		Name:        "C",
		Patterns:    []string{".c", ".h"},
		LineComment: "//",
		BlockStart:  "/*",
		BlockEnd:    "*/",
		Keywords:    [3][]string{{"return"}, {"int"}, nil},
		Flags:       syntax.HighlightNumbers | syntax.HighlightStrings,
	}
}

func TestTypingUndoRedo(t *testing.T) {
	e := newTestEditor(t, "hello")
	e.End()
	e.InsertRune('!')
	e.InsertRune('é')

	assert.Equal(t, "hello!é", text(e))
	assert.Equal(t, types.Position{Line: 0, Col: 7}, e.GetCursor())
	assert.Equal(t, 2, e.History().Len())
	assert.Equal(t, 2, e.Dirty())

	require.True(t, e.Undo())
	assert.Equal(t, "hello!", text(e))
	assert.Equal(t, types.Position{Line: 0, Col: 6}, e.GetCursor())

	require.True(t, e.Undo())
	assert.Equal(t, "hello", text(e))
	assert.Equal(t, types.Position{Line: 0, Col: 5}, e.GetCursor())
	assert.False(t, e.Undo())
	assert.Equal(t, 0, e.Dirty())

	require.True(t, e.Redo())
	require.True(t, e.Redo())
	assert.False(t, e.Redo())
	assert.Equal(t, "hello!é", text(e))
	assert.Equal(t, types.Position{Line: 0, Col: 7}, e.GetCursor())
}

func TestNewLineAndBackspace(t *testing.T) {
	e := newTestEditor(t, "ab")
	e.MoveCursor(0, 1)
	e.InsertNewLine()

	assert.Equal(t, "a\nb", text(e))
	assert.Equal(t, 2, e.Highlighter().Len())
	assert.Equal(t, types.Position{Line: 1, Col: 0}, e.GetCursor())

	e.DeleteBackward()
	assert.Equal(t, "ab", text(e))
	assert.Equal(t, 1, e.Highlighter().Len())

	require.True(t, e.Undo())
	assert.Equal(t, "a\nb", text(e))
	assert.Equal(t, 2, e.Highlighter().Len())
}

func TestDeleteForwardJoinsLines(t *testing.T) {
	e := newTestEditor(t, "ab\ncd")
	e.End()
	e.DeleteForward()
	assert.Equal(t, "abcd", text(e))

	e.End()
	e.DeleteForward()
	assert.Equal(t, "abcd", text(e), "nothing after the last rune")
	assert.Equal(t, 1, e.History().Len())
}

func TestNewlineKindIsUndoable(t *testing.T) {
	e := newTestEditor(t, "a\nb")
	var seen []types.NewlineKind
	mgr := event.NewManager()
	mgr.Subscribe(event.TypeNewlineChanged, func(ev event.Event) bool {
		seen = append(seen, ev.Data.(event.NewlineChangedData).Kind)
		return false
	})
	e.SetEventManager(mgr)

	require.True(t, e.SetNewlineKind(types.NewlineCRLF))
	assert.False(t, e.SetNewlineKind(types.NewlineCRLF), "same kind records nothing")
	assert.Equal(t, "a\r\nb", text(e))
	assert.Equal(t, 1, e.History().Len())

	require.True(t, e.Undo())
	assert.Equal(t, types.NewlineLF, e.GetBuffer().Newline())
	require.True(t, e.Redo())
	assert.Equal(t, types.NewlineCRLF, e.GetBuffer().Newline())

	assert.Equal(t, []types.NewlineKind{types.NewlineCRLF, types.NewlineLF, types.NewlineCRLF}, seen)
}

func TestSelectionDeleteRestoresSelection(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.MoveCursor(0, 5)
	e.StartOrUpdateSelection()
	e.End()

	r, ok := e.GetSelection()
	require.True(t, ok)
	assert.Equal(t, types.Range{Start: types.Position{Col: 5}, End: types.Position{Col: 11}}, r)

	require.True(t, e.DeleteSelection())
	assert.Equal(t, "hello", text(e))
	assert.False(t, e.HasSelection())

	require.True(t, e.Undo())
	assert.Equal(t, "hello world", text(e))
	r, ok = e.GetSelection()
	require.True(t, ok)
	assert.Equal(t, 5, r.Start.Col)
	assert.Equal(t, 11, r.End.Col)
}

func TestTypingReplacesSelection(t *testing.T) {
	e := newTestEditor(t, "one two")
	e.StartOrUpdateSelection()
	e.MoveCursor(0, 3)
	e.InsertRune('1')

	assert.Equal(t, "1 two", text(e))
	assert.Equal(t, 1, e.History().Len(), "replace is one step")

	require.True(t, e.Undo())
	assert.Equal(t, "one two", text(e))
}

func TestCutPaste(t *testing.T) {
	e := newTestEditor(t, "abc\ndef")
	cb := &fakeClipboard{}
	e.SetClipboard(cb)

	assert.False(t, e.Cut(), "no selection")

	e.SelectAll()
	require.True(t, e.Cut())
	assert.Equal(t, "abc\ndef", cb.text)
	assert.Equal(t, "", text(e))
	assert.Equal(t, 1, e.Highlighter().Len())

	require.True(t, e.Paste())
	assert.Equal(t, "abc\ndef", text(e))
	assert.Equal(t, types.Position{Line: 1, Col: 3}, e.GetCursor())
	assert.Equal(t, 2, e.Highlighter().Len())

	require.True(t, e.Undo())
	assert.Equal(t, "", text(e))
	require.True(t, e.Undo())
	assert.Equal(t, "abc\ndef", text(e))
}

func TestPasteNormalizesNewlines(t *testing.T) {
	e := newTestEditor(t, "")
	e.SetClipboard(&fakeClipboard{text: "x\r\ny\rz"})
	require.True(t, e.Paste())
	assert.Equal(t, "x\ny\nz", text(e))
}

func TestPasteFallsBackToRegister(t *testing.T) {
	e := newTestEditor(t, "word")
	e.SelectAll()
	require.True(t, e.Copy())
	e.ClearSelection()
	e.End()

	require.True(t, e.Paste())
	assert.Equal(t, "wordword", text(e))

	e.SetClipboard(&fakeClipboard{text: ""})
	require.True(t, e.Paste(), "empty system clipboard uses the register")
	assert.Equal(t, "wordwordword", text(e))
}

func TestHighlightRowsFollowEdits(t *testing.T) {
	e := newTestEditor(t, "int a;\nint b;")
	e.SetRule(cRule())

	row, ok := e.Highlighter().Row(1)
	require.True(t, ok)
	assert.Equal(t, highlight.Keyword2, row.HL[0])

	e.InsertText([]byte("/*\n"))
	require.Equal(t, 3, e.Highlighter().Len())
	for i := 0; i < 3; i++ {
		row, ok := e.Highlighter().Row(i)
		require.True(t, ok)
		assert.True(t, row.OpenComment, "row %d", i)
		for _, c := range row.HL {
			assert.Equal(t, highlight.Comment, c.Fg(), "row %d", i)
		}
	}

	require.True(t, e.Undo())
	require.Equal(t, 2, e.Highlighter().Len())
	for i := 0; i < 2; i++ {
		row, ok := e.Highlighter().Row(i)
		require.True(t, ok)
		assert.False(t, row.OpenComment, "row %d", i)
		assert.Equal(t, highlight.Keyword2, row.HL[0], "row %d", i)
		assert.Len(t, row.HL, 6)
	}
}

func TestSelectRule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.C")
	require.NoError(t, os.WriteFile(path, []byte("return 0;\n"), 0o644))

	buf := buffer.NewSliceBuffer()
	require.NoError(t, buf.Load(path))
	e := NewEditor(buf, Options{})

	db := syntax.NewDatabase()
	db.Prepend(cRule())

	var names []string
	mgr := event.NewManager()
	mgr.Subscribe(event.TypeRuleChanged, func(ev event.Event) bool {
		names = append(names, ev.Data.(event.RuleChangedData).Name)
		return false
	})
	e.SetEventManager(mgr)

	rule := e.SelectRule(db)
	require.NotNil(t, rule)
	assert.Equal(t, "C", e.RuleName())
	row, _ := e.Highlighter().Row(0)
	assert.Equal(t, highlight.Keyword1, row.HL[0])
	assert.Equal(t, highlight.Number, row.HL[7])

	assert.Nil(t, e.SelectRule(syntax.NewDatabase()))
	assert.Equal(t, "", e.RuleName())
	assert.Equal(t, []string{"C", ""}, names)
}

func TestSaveTracksModified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\n"), 0o644))

	buf := buffer.NewSliceBuffer()
	require.NoError(t, buf.Load(path))
	e := NewEditor(buf, Options{})
	assert.False(t, e.IsModified())

	e.End()
	e.InsertRune('b')
	assert.True(t, e.IsModified())

	require.NoError(t, e.Save(""))
	assert.False(t, e.IsModified())
	assert.Equal(t, 0, e.Dirty())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ab\r\n", string(data))

	require.True(t, e.Undo())
	assert.True(t, e.IsModified())
	require.True(t, e.Redo())
	assert.False(t, e.IsModified())

	require.True(t, e.Undo())
	e.InsertRune('c')
	assert.True(t, e.IsModified(), "the saved state was truncated away")
}

func TestSaveWithoutPathFails(t *testing.T) {
	e := newTestEditor(t, "x")
	e.InsertRune('y')
	assert.Error(t, e.Save(""))
	assert.True(t, e.IsModified())
}

func TestFind(t *testing.T) {
	e := newTestEditor(t, "foo bar\nbaz foo")

	pos, ok, err := e.Find("foo", true, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.Position{Line: 1, Col: 4}, pos)
	assert.Equal(t, pos, e.GetCursor())

	pos, ok, err = e.Find("foo", true, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.Position{Line: 0, Col: 0}, pos, "wraps around")

	pos, ok, err = e.Find("foo", false, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.Position{Line: 1, Col: 4}, pos)

	_, ok, err = e.Find("FOO", true, true)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = e.Find("qux", true, false)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = e.Find("(", true, false)
	assert.Error(t, err)
}

func TestFindHighlightsClearedByEdit(t *testing.T) {
	e := newTestEditor(t, "foo bar\nbaz foo")
	_, ok, err := e.Find("foo", true, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "foo", e.SearchTerm())

	row, _ := e.Highlighter().Row(0)
	assert.Equal(t, highlight.BgMatch, row.HL[0].Bg())
	assert.Equal(t, highlight.BgNormal, row.HL[3].Bg())

	e.InsertRune('x')
	assert.Equal(t, "", e.SearchTerm())
	for i := 0; i < e.Highlighter().Len(); i++ {
		row, _ := e.Highlighter().Row(i)
		for _, c := range row.HL {
			assert.NotEqual(t, highlight.BgMatch, c.Bg())
		}
	}
}

func TestParseSubstituteCommand(t *testing.T) {
	tests := []struct {
		in          string
		pattern     string
		replacement string
		global      bool
		wantErr     bool
	}{
		{in: "/a/b/", pattern: "a", replacement: "b"},
		{in: "/a/b/g", pattern: "a", replacement: "b", global: true},
		{in: "/a/", pattern: "a", replacement: ""},
		{in: "//b/", wantErr: true},
		{in: "a/b/", wantErr: true},
		{in: "/a", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, r, g, err := ParseSubstituteCommand(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, p)
			assert.Equal(t, tt.replacement, r)
			assert.Equal(t, tt.global, g)
		})
	}
}

func TestReplaceOnCurrentLine(t *testing.T) {
	e := newTestEditor(t, "a-b-c\nx-y")

	n, err := e.Replace("-", "+", false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "a+b-c\nx-y", text(e))

	n, err = e.Replace("-", "+", true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "a+b+c\nx-y", text(e))

	require.True(t, e.Undo())
	require.True(t, e.Undo())
	assert.Equal(t, "a-b-c\nx-y", text(e))

	n, err = e.Replace(`(\w)-(\w)`, "$2=$1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "b=a-c\nx-y", text(e))

	n, err = e.Replace("q", "z", true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, e.History().Len(), "the undone steps were replaced")
}

func TestGotoLineAndScroll(t *testing.T) {
	e := newTestEditor(t, "1\n2\n3\n4\n5\n6\n7\n8\n9\n10")
	e.SetViewSize(10, 4)

	e.GotoLine(9)
	assert.Equal(t, types.Position{Line: 8}, e.GetCursor())
	top, _ := e.GetViewport()
	assert.LessOrEqual(t, top, 8)
	assert.Greater(t, top+4, 8)

	e.GotoLine(100)
	assert.Equal(t, 9, e.GetCursor().Line)
	e.GotoLine(0)
	assert.Equal(t, 0, e.GetCursor().Line)
}
