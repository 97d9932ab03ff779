// internal/syntax/parse.go
package syntax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrNotObject    = errors.New("rule document is not a JSON object")
	ErrMissingField = errors.New("missing required field")
	ErrFieldType    = errors.New("field has the wrong type")
)

var keywordFields = [KeywordCategories]string{"keywords1", "keywords2", "keywords3"}

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }

// ParseRule builds a Rule from a JSON document of the form
//
//	{
//	  "name": "C",
//	  "extensions": [".c", ".h"],
//	  "comment": "//",
//	  "multiline-comment": ["/*", "*/"],
//	  "keywords1": [...], "keywords2": [...], "keywords3": [...],
//	  "highlight-numbers": true, "highlight-strings": true
//	}
//
// Only name and extensions are required; null counts as absent. The whole
// document is validated before a Rule is returned.
func ParseRule(data []byte) (*Rule, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrNotObject)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, ErrNotObject
	}

	rule := &Rule{Flags: HighlightNumbers | HighlightStrings}

	name := doc.Get("name")
	if !name.Exists() {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	if name.Type != gjson.String {
		return nil, fmt.Errorf("%w: name must be a string", ErrFieldType)
	}
	rule.Name = name.String()

	exts := doc.Get("extensions")
	if !exts.Exists() {
		return nil, fmt.Errorf("%w: extensions", ErrMissingField)
	}
	patterns, err := stringArray(exts, "extensions")
	if err != nil {
		return nil, err
	}
	rule.Patterns = patterns

	if c := doc.Get("comment"); present(c) {
		if c.Type != gjson.String {
			return nil, fmt.Errorf("%w: comment must be a string", ErrFieldType)
		}
		rule.LineComment = c.String()
	}

	if mc := doc.Get("multiline-comment"); present(mc) {
		pair, err := stringArray(mc, "multiline-comment")
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: multiline-comment needs exactly 2 strings, got %d", ErrFieldType, len(pair))
		}
		rule.BlockStart, rule.BlockEnd = pair[0], pair[1]
	}

	for i, field := range keywordFields {
		kw := doc.Get(field)
		if !present(kw) {
			continue
		}
		words, err := stringArray(kw, field)
		if err != nil {
			return nil, err
		}
		rule.Keywords[i] = words
	}

	if err := flagField(doc, "highlight-numbers", HighlightNumbers, &rule.Flags); err != nil {
		return nil, err
	}
	if err := flagField(doc, "highlight-strings", HighlightStrings, &rule.Flags); err != nil {
		return nil, err
	}

	return rule, nil
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

// stringArray requires r to be an array whose every element is a string.
func stringArray(r gjson.Result, field string) ([]string, error) {
	if !r.IsArray() {
		return nil, fmt.Errorf("%w: %s must be an array", ErrFieldType, field)
	}
	items := r.Array()
	out := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%w: %s[%d] must be a string", ErrFieldType, field, i)
		}
		out = append(out, item.String())
	}
	return out, nil
}

func flagField(doc gjson.Result, field string, bit Flags, flags *Flags) error {
	v := doc.Get(field)
	if !present(v) {
		return nil
	}
	if !v.IsBool() {
		return fmt.Errorf("%w: %s must be a boolean", ErrFieldType, field)
	}
	if v.Bool() {
		*flags |= bit
	} else {
		*flags &^= bit
	}
	return nil
}
