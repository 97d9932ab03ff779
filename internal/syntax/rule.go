// internal/syntax/rule.go
package syntax

import (
	"path/filepath"
	"strings"
)

// Flags enables optional token classes for a rule.
type Flags uint8

const (
	HighlightNumbers Flags = 1 << iota
	HighlightStrings
)

// KeywordCategories is the number of keyword sets a rule carries.
const KeywordCategories = 3

// Rule describes how to tokenize one language.
// Empty comment delimiters mean the construct is absent; block comments
// need both BlockStart and BlockEnd.
type Rule struct {
	Name        string
	Patterns    []string
	LineComment string
	BlockStart  string
	BlockEnd    string
	Keywords    [KeywordCategories][]string
	Flags       Flags
}

// Has reports whether all bits in f are set.
func (r *Rule) Has(f Flags) bool {
	return r.Flags&f == f
}

// HasBlockComment reports whether both block delimiters are set.
func (r *Rule) HasBlockComment() bool {
	return r.BlockStart != "" && r.BlockEnd != ""
}

// Matches reports whether the rule applies to filename.
// A pattern starting with '.' compares against the extension (from the last
// '.') case-insensitively. Any other pattern is a case-insensitive substring
// of the base name.
func (r *Rule) Matches(filename string) bool {
	if filename == "" {
		return false
	}
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	lowerBase := strings.ToLower(base)
	for _, p := range r.Patterns {
		if p == "" {
			continue
		}
		if p[0] == '.' {
			if ext != "" && strings.EqualFold(ext, p) {
				return true
			}
			continue
		}
		if strings.Contains(lowerBase, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
