package syntax

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	rule, err := ParseRule([]byte(`{
		"name": "Foo",
		"extensions": [".foo", "Foofile"],
		"comment": "--",
		"multiline-comment": ["{-", "-}"],
		"keywords1": ["let", "in"],
		"keywords2": null,
		"keywords3": ["True"],
		"highlight-numbers": false
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Foo", rule.Name)
	assert.Equal(t, []string{".foo", "Foofile"}, rule.Patterns)
	assert.Equal(t, "--", rule.LineComment)
	assert.Equal(t, "{-", rule.BlockStart)
	assert.Equal(t, "-}", rule.BlockEnd)
	assert.Equal(t, []string{"let", "in"}, rule.Keywords[0])
	assert.Nil(t, rule.Keywords[1])
	assert.Equal(t, []string{"True"}, rule.Keywords[2])
	assert.False(t, rule.Has(HighlightNumbers))
	assert.True(t, rule.Has(HighlightStrings))
}

func TestParseRuleDefaults(t *testing.T) {
	rule, err := ParseRule([]byte(`{"name": "Plain", "extensions": []}`))
	require.NoError(t, err)
	assert.Empty(t, rule.LineComment)
	assert.False(t, rule.HasBlockComment())
	assert.True(t, rule.Has(HighlightNumbers|HighlightStrings))
}

func TestParseRuleRejectsWholeRule(t *testing.T) {
	tests := []struct {
		name string
		json string
		err  error
	}{
		{"not json", `{"name": `, ErrNotObject},
		{"array document", `[1, 2]`, ErrNotObject},
		{"missing name", `{"extensions": [".x"]}`, ErrMissingField},
		{"missing extensions", `{"name": "X"}`, ErrMissingField},
		{"name not string", `{"name": 3, "extensions": []}`, ErrFieldType},
		{"extension not string", `{"name": "X", "extensions": [".x", 1]}`, ErrFieldType},
		{"comment not string", `{"name": "X", "extensions": [], "comment": ["#"]}`, ErrFieldType},
		{"block comment one element", `{"name": "X", "extensions": [], "multiline-comment": ["/*"]}`, ErrFieldType},
		{"block comment three elements", `{"name": "X", "extensions": [], "multiline-comment": ["/*", "*/", "x"]}`, ErrFieldType},
		{"block comment not strings", `{"name": "X", "extensions": [], "multiline-comment": ["/*", 2]}`, ErrFieldType},
		{"keyword not string", `{"name": "X", "extensions": [], "keywords2": ["a", true]}`, ErrFieldType},
		{"keywords not array", `{"name": "X", "extensions": [], "keywords3": "a"}`, ErrFieldType},
		{"flag not bool", `{"name": "X", "extensions": [], "highlight-strings": "yes"}`, ErrFieldType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := ParseRule([]byte(tt.json))
			assert.Nil(t, rule)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestRuleMatches(t *testing.T) {
	rule := &Rule{Patterns: []string{".c", ".H", "Makefile"}}

	tests := []struct {
		filename string
		want     bool
	}{
		{"main.c", true},
		{"MAIN.C", true},
		{"dir/util.h", true},
		{"main.cpp", false},
		{"archive.tar.c", true},
		{"c", false},
		{"Makefile", true},
		{"GNUmakefile", true},
		{"src/makefile.am", true},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rule.Matches(tt.filename), tt.filename)
	}
}

func TestDatabasePrependOrder(t *testing.T) {
	db := NewDatabase()
	first := &Rule{Name: "first", Patterns: []string{".foo"}}
	second := &Rule{Name: "second", Patterns: []string{".foo"}}
	db.Prepend(first)
	db.Prepend(second)
	db.Prepend(nil)

	assert.Equal(t, 2, db.Len())
	assert.Same(t, second, db.Select("a.foo"))
	assert.Same(t, first, db.Find("FIRST"))
	assert.Nil(t, db.Select("a.bar"))
	assert.Nil(t, db.Select(""))
}

func TestLoadBundledAndConfigRule(t *testing.T) {
	db := Load(LoadOptions{
		Commands:  []string{"newline", "color"},
		Variables: []string{"syntax", "tabsize"},
		Elements:  []string{"bg", "hl.comment"},
	})

	c := db.Select("main.c")
	require.NotNil(t, c)
	assert.Equal(t, "C", c.Name)
	assert.Equal(t, "Go", db.Select("main.go").Name)
	assert.Equal(t, "Makefile", db.Select("Makefile").Name)

	rc := db.Select(".lexrc")
	require.NotNil(t, rc)
	assert.Equal(t, ConfigRuleName, rc.Name)
	assert.Same(t, rc, db.Select("theme.lexconfig"))
	assert.Equal(t, []string{"newline", "color"}, rc.Keywords[0])
	assert.Equal(t, []string{"syntax", "tabsize"}, rc.Keywords[1])
	assert.Equal(t, []string{"bg", "hl.comment"}, rc.Keywords[2])
	assert.Equal(t, "#", rc.LineComment)
	assert.True(t, rc.Has(HighlightStrings))
	assert.False(t, rc.Has(HighlightNumbers))

	// The config rule is loaded first, so it sits last.
	rules := db.Rules()
	assert.Same(t, rc, rules[len(rules)-1])
}

func TestLoadUserRulesTakePrecedence(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("mygo.json", `{"name": "MyGo", "extensions": [".go"]}`)
	write("broken.json", `{"name": "Broken", "extensions": [".brk", 7]}`)
	write("notes.txt", `{"name": "Ignored", "extensions": [".txt"]}`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	bundledOnly := Load(LoadOptions{})
	db := Load(LoadOptions{UserDir: dir})

	assert.Equal(t, bundledOnly.Len()+1, db.Len())
	assert.Equal(t, "MyGo", db.Select("x.go").Name)
	assert.Nil(t, db.Select("a.brk"))
	assert.Nil(t, db.Find("Ignored"))
}

func TestLoadDirMissingIsFine(t *testing.T) {
	db := NewDatabase()
	assert.NoError(t, LoadDir(db, filepath.Join(t.TempDir(), "nope")))
	assert.Zero(t, db.Len())
}

func TestLoadFileErrors(t *testing.T) {
	db := NewDatabase()
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": 1, "extensions": []}`), 0o644))

	err := LoadFile(db, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldType)
	assert.Zero(t, db.Len())
}
