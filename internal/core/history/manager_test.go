package history

import (
	"strings"
	"testing"

	"github.com/bethropolis/lex/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memDoc is a minimal line store implementing Document.
type memDoc struct {
	lines   []string
	cursor  types.Cursor
	newline types.NewlineKind
}

func newMemDoc(text string) *memDoc {
	return &memDoc{lines: strings.Split(text, "\n")}
}

func (d *memDoc) String() string { return strings.Join(d.lines, "\n") }

func (d *memDoc) extract(r types.Range) string {
	if r.Start.Line == r.End.Line {
		return d.lines[r.Start.Line][r.Start.Col:r.End.Col]
	}
	parts := []string{d.lines[r.Start.Line][r.Start.Col:]}
	parts = append(parts, d.lines[r.Start.Line+1:r.End.Line]...)
	parts = append(parts, d.lines[r.End.Line][:r.End.Col])
	return strings.Join(parts, "\n")
}

func (d *memDoc) DeleteRange(r types.Range) Clipboard {
	removed := d.extract(r)
	head := d.lines[r.Start.Line][:r.Start.Col]
	tail := d.lines[r.End.Line][r.End.Col:]
	rest := append([]string{head + tail}, d.lines[r.End.Line+1:]...)
	d.lines = append(d.lines[:r.Start.Line], rest...)
	return NewClipboard([]byte(removed))
}

func (d *memDoc) PasteText(text Clipboard, at types.Position) {
	if text.Len() == 0 {
		return
	}
	head := d.lines[at.Line][:at.Col]
	tail := d.lines[at.Line][at.Col:]
	ins := strings.Split(text.String(), "\n")
	ins[0] = head + ins[0]
	ins[len(ins)-1] += tail
	rest := append(ins, d.lines[at.Line+1:]...)
	d.lines = append(d.lines[:at.Line], rest...)
}

func (d *memDoc) SetCursor(c types.Cursor)           { d.cursor = c }
func (d *memDoc) SetNewline(kind types.NewlineKind) { d.newline = kind }

// replace performs an edit on d and returns the action describing it.
func replace(d *memDoc, r types.Range, text string) *EditAction {
	old := d.cursor
	deleted := d.DeleteRange(r)
	added := NewClipboard([]byte(text))
	d.PasteText(added, r.Start)

	end := r.Start
	if n := strings.Count(text, "\n"); n > 0 {
		end.Line += n
		end.Col = len(text) - strings.LastIndex(text, "\n") - 1
	} else {
		end.Col += len(text)
	}
	d.cursor = types.CursorAt(end)
	return &EditAction{
		DeletedRange: r,
		DeletedText:  deleted,
		AddedRange:   types.Range{Start: r.Start, End: end},
		AddedText:    added,
		OldCursor:    old,
		NewCursor:    d.cursor,
	}
}

func rng(l1, c1, l2, c2 int) types.Range {
	return types.Range{Start: types.Position{Line: l1, Col: c1}, End: types.Position{Line: l2, Col: c2}}
}

func TestEmptyHistory(t *testing.T) {
	doc := newMemDoc("hello")
	m := NewManager()

	assert.False(t, m.Undo(doc))
	assert.Equal(t, 0, m.Dirty())

	m.Append(replace(doc, rng(0, 5, 0, 5), " world"))
	assert.Equal(t, 1, m.Dirty())
	assert.Equal(t, "hello world", doc.String())

	assert.True(t, m.Undo(doc))
	assert.Equal(t, 0, m.Dirty())
	assert.Equal(t, "hello", doc.String())
	assert.False(t, m.Undo(doc))
	assert.Equal(t, 0, m.Dirty())
}

func TestRoundTrip(t *testing.T) {
	doc := newMemDoc("alpha\nbeta\ngamma")
	doc.cursor = types.Cursor{X: 2, Y: 1, IsSelected: true, SelectX: 0, SelectY: 0}
	startText, startCursor := doc.String(), doc.cursor
	m := NewManager()

	steps := []struct {
		r    types.Range
		text string
	}{
		{rng(0, 0, 0, 5), "ALPHA"},
		{rng(1, 2, 2, 3), "\nnew\nlines\n"},
		{rng(0, 3, 0, 3), "xyz"},
		{rng(0, 0, 3, 0), ""},
		{rng(0, 0, 0, 0), "head\n"},
	}
	for _, s := range steps {
		m.Append(replace(doc, s.r, s.text))
	}
	m.Append(&AttributeAction{OldNewline: types.NewlineLF, NewNewline: types.NewlineCRLF})
	doc.newline = types.NewlineCRLF
	require.Equal(t, len(steps)+1, m.Dirty())

	for i := 0; i < len(steps)+1; i++ {
		require.True(t, m.Undo(doc), "undo %d", i)
	}
	assert.False(t, m.Undo(doc))
	assert.Equal(t, startText, doc.String())
	assert.Equal(t, startCursor, doc.cursor)
	assert.Equal(t, types.NewlineLF, doc.newline)
	assert.Equal(t, 0, m.Dirty())
}

func TestUndoRedoSymmetry(t *testing.T) {
	doc := newMemDoc("one two\nthree")
	m := NewManager()
	m.Append(replace(doc, rng(0, 4, 1, 2), "TW"))
	afterText, afterCursor := doc.String(), doc.cursor

	require.True(t, m.Undo(doc))
	require.True(t, m.Redo(doc))
	assert.Equal(t, afterText, doc.String())
	assert.Equal(t, afterCursor, doc.cursor)
	assert.Equal(t, 1, m.Dirty())
	assert.False(t, m.Redo(doc))
}

func TestAttributeSymmetry(t *testing.T) {
	doc := newMemDoc("x")
	m := NewManager()
	m.Append(&AttributeAction{OldNewline: types.NewlineLF, NewNewline: types.NewlineCRLF})
	doc.newline = types.NewlineCRLF

	require.True(t, m.Undo(doc))
	assert.Equal(t, types.NewlineLF, doc.newline)
	require.True(t, m.Redo(doc))
	assert.Equal(t, types.NewlineCRLF, doc.newline)
	assert.Equal(t, 1, m.Dirty())
}

func TestRedoTruncation(t *testing.T) {
	doc := newMemDoc("abc")
	m := NewManager()
	m.Append(replace(doc, rng(0, 3, 0, 3), "d"))
	m.Append(replace(doc, rng(0, 4, 0, 4), "e"))
	m.Append(replace(doc, rng(0, 5, 0, 5), "f"))

	require.True(t, m.Undo(doc))
	require.True(t, m.Undo(doc))
	assert.True(t, m.CanRedo())

	m.Append(replace(doc, rng(0, 0, 0, 1), "A"))
	assert.False(t, m.CanRedo())
	assert.False(t, m.Redo(doc))
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "Abcd", doc.String())
	assert.Equal(t, 2, m.Dirty())
}

func TestDirtyGoesNegative(t *testing.T) {
	doc := newMemDoc("abc")
	m := NewManager()
	m.Append(replace(doc, rng(0, 0, 0, 1), ""))
	m.MarkSaved()
	assert.True(t, m.IsClean())

	require.True(t, m.Undo(doc))
	assert.Equal(t, -1, m.Dirty())
	assert.False(t, m.IsClean())

	require.True(t, m.Redo(doc))
	assert.Equal(t, 0, m.Dirty())
	assert.True(t, m.IsClean())
}

func TestSavedStateLostOnTruncate(t *testing.T) {
	doc := newMemDoc("abc")
	m := NewManager()
	m.Append(replace(doc, rng(0, 0, 0, 1), ""))
	m.MarkSaved()
	require.True(t, m.Undo(doc))
	m.Append(replace(doc, rng(0, 0, 0, 1), "Z"))

	assert.Equal(t, 0, m.Dirty())
	assert.False(t, m.IsClean(), "dirty reads zero but the saved state is unreachable")
}

func TestClipboardIsSnapshot(t *testing.T) {
	src := []byte("abc")
	clip := NewClipboard(src)
	src[0] = 'X'
	assert.Equal(t, "abc", clip.String())
	assert.Equal(t, 3, clip.Len())
	assert.Equal(t, 1, clip.Lines())
	assert.Equal(t, 3, NewClipboard([]byte("a\nb\nc")).Lines())
}

func TestClear(t *testing.T) {
	doc := newMemDoc("abc")
	m := NewManager()
	m.Append(replace(doc, rng(0, 0, 0, 1), ""))
	m.Clear()
	assert.False(t, m.CanUndo())
	assert.Equal(t, 0, m.Dirty())
	assert.True(t, m.IsClean())
}
