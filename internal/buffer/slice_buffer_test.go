package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/lex/internal/types"
)

func pos(l, c int) types.Position { return types.Position{Line: l, Col: c} }

func rng(l1, c1, l2, c2 int) types.Range { return types.Range{Start: pos(l1, c1), End: pos(l2, c2)} }

func TestLoadDetectsNewlineKind(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		lines   []string
		kind    types.NewlineKind
	}{
		{"lf", "one\ntwo\n", []string{"one", "two"}, types.NewlineLF},
		{"crlf", "one\r\ntwo\r\n", []string{"one", "two"}, types.NewlineCRLF},
		{"no trailing newline", "one\ntwo", []string{"one", "two"}, types.NewlineLF},
		{"empty", "", []string{""}, types.NewlineLF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			sb := NewSliceBuffer()
			require.NoError(t, sb.Load(path))
			got := make([]string, 0, sb.LineCount())
			for _, l := range sb.Lines() {
				got = append(got, string(l))
			}
			assert.Equal(t, tt.lines, got)
			assert.Equal(t, tt.kind, sb.Newline())
			assert.Equal(t, path, sb.FilePath())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	sb := NewSliceBuffer()
	require.NoError(t, sb.Load(path))
	assert.Equal(t, 1, sb.LineCount())
	assert.Equal(t, path, sb.FilePath())
}

func TestSaveUsesNewlineKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	sb := NewSliceBufferFromBytes([]byte("a\nb"))
	sb.SetNewline(types.NewlineCRLF)
	require.NoError(t, sb.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\n", string(data))
}

func TestSaveWithoutPath(t *testing.T) {
	assert.Error(t, NewSliceBuffer().Save(""))
}

func TestInsertReturnsEnd(t *testing.T) {
	sb := NewSliceBufferFromBytes([]byte("hello world"))

	end, err := sb.Insert(pos(0, 5), []byte(","))
	require.NoError(t, err)
	assert.Equal(t, pos(0, 6), end)
	assert.Equal(t, "hello, world", string(sb.Bytes()))

	end, err = sb.Insert(pos(0, 6), []byte("\nbig\n"))
	require.NoError(t, err)
	assert.Equal(t, pos(2, 0), end)
	assert.Equal(t, "hello,\nbig\n world", string(sb.Bytes()))
}

func TestInsertMultibyte(t *testing.T) {
	sb := NewSliceBufferFromBytes([]byte("héllo"))
	end, err := sb.Insert(pos(0, 2), []byte("ü"))
	require.NoError(t, err)
	assert.Equal(t, pos(0, 3), end)
	assert.Equal(t, "héüllo", string(sb.Bytes()))
}

func TestDeleteReturnsRemovedText(t *testing.T) {
	sb := NewSliceBufferFromBytes([]byte("alpha\nbeta\ngamma"))

	removed, err := sb.Delete(rng(0, 3, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, "ha\nbeta\nga", string(removed))
	assert.Equal(t, "alpmma", string(sb.Bytes()))
	assert.Equal(t, 1, sb.LineCount())
}

func TestDeleteThenInsertRestores(t *testing.T) {
	original := "first line\nsecond\n\nfourth"
	ranges := []types.Range{
		rng(0, 0, 0, 5),
		rng(0, 6, 1, 3),
		rng(1, 6, 3, 0),
		rng(3, 6, 0, 2), // reversed
		rng(2, 0, 2, 0),
	}
	for _, r := range ranges {
		sb := NewSliceBufferFromBytes([]byte(original))
		removed, err := sb.Delete(r)
		require.NoError(t, err)
		_, err = sb.Insert(types.NewRange(r.Start, r.End).Start, removed)
		require.NoError(t, err)
		assert.Equal(t, original, string(sb.Bytes()), "range %+v", r)
	}
}

func TestTextClampsOutOfRange(t *testing.T) {
	sb := NewSliceBufferFromBytes([]byte("abc\ndef"))
	text, err := sb.Text(rng(0, 2, 9, 9))
	require.NoError(t, err)
	assert.Equal(t, "c\ndef", string(text))
}

func TestLineBounds(t *testing.T) {
	sb := NewSliceBufferFromBytes([]byte("abc"))
	_, err := sb.Line(1)
	assert.Error(t, err)
	line, err := sb.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(line))
}
