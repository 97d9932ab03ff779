package commands

import (
	"github.com/bethropolis/lex/internal/core"
	"github.com/bethropolis/lex/internal/syntax"
	"github.com/bethropolis/lex/internal/theme"
)

// API is what the built-in commands need from the running application.
type API interface {
	Editor() *core.Editor
	Themes() *theme.Manager
	Rules() *syntax.Database
	SetStatusMessage(format string, args ...interface{})
	// ThemeChanged is called after the active theme or one of its colors changed.
	ThemeChanged()
	Quit()
}

// Settings are the initial values of the display variables.
type Settings struct {
	Syntax      bool
	Trailing    bool
	DrawSpace   bool
	LineNumbers bool
	TabWidth    int
}

// Variable names.
const (
	VarSyntax    = "syntax"
	VarTrailing  = "trailing"
	VarDrawSpace = "drawspace"
	VarTabSize   = "tabsize"
	VarLineNo    = "lineno"
)
