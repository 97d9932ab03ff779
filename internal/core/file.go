package core

import (
	"fmt"
	"path/filepath"

	"github.com/bethropolis/lex/internal/event"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/syntax"
)

// FilePath returns the document's path, empty for an unnamed buffer.
func (e *Editor) FilePath() string {
	return e.buffer.FilePath()
}

// Save writes the buffer to path (or its current path when empty) and
// marks the history position as the saved state.
func (e *Editor) Save(path string) error {
	if err := e.buffer.Save(path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	e.history.MarkSaved()
	logger.Infof("Saved %s", e.buffer.FilePath())
	e.dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buffer.FilePath()})
	return nil
}

// IsModified reports whether the document differs from the last save.
func (e *Editor) IsModified() bool {
	return !e.history.IsClean()
}

// Dirty returns the net number of steps since the last save.
func (e *Editor) Dirty() int {
	return e.history.Dirty()
}

// SelectRule picks the highlight rule for the current file name from db.
// It returns the selected rule, nil when none matches.
func (e *Editor) SelectRule(db *syntax.Database) *syntax.Rule {
	var rule *syntax.Rule
	if db != nil {
		rule = db.Select(filepath.Base(e.buffer.FilePath()))
	}
	e.SetRule(rule)
	return rule
}

// SetRule switches the highlight rule and rescans every row.
func (e *Editor) SetRule(rule *syntax.Rule) {
	e.highlighter.SetRule(rule)
	name := ""
	if rule != nil {
		name = rule.Name
	}
	logger.DebugTagf("core", "highlight rule %q", name)
	e.dispatch(event.TypeRuleChanged, event.RuleChangedData{Name: name})
}

// RuleName returns the name of the active highlight rule, empty for none.
func (e *Editor) RuleName() string {
	if rule := e.highlighter.Rule(); rule != nil {
		return rule.Name
	}
	return ""
}
