// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lex/internal/logger"
)

// TomlStyleDef is one element entry in a theme file.
type TomlStyleDef struct {
	Fg        *string `toml:"fg"` // pointers distinguish unset from empty
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme is the layout of a theme file:
//
//	name = "Paper"
//	is_dark = false
//	[styles.default]
//	fg = "#222222"
//	bg = "#fafafa"
//	[styles."hl.comment"]
//	fg = "#999999"
//	italic = true
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme. Elements it does not set inherit
// its default style.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	return parseTheme(string(data), filePath)
}

func parseTheme(data, source string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme '%s': %w", source, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': unrecognized keys in '%s': %v", tomlTheme.Name, source, undecoded)
	}

	if tomlTheme.Name == "" {
		tomlTheme.Name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style),
	}

	baseStyle := tcell.StyleDefault
	if def, ok := tomlTheme.Styles[ElemDefault]; ok {
		baseStyle, err = convertTomlStyle(def, tcell.StyleDefault)
		if err != nil {
			return nil, fmt.Errorf("theme '%s': default style: %w", theme.Name, err)
		}
	}
	for _, name := range ElementNames() {
		theme.Styles[name] = baseStyle
	}
	delete(theme.Styles, ElemCursorLine)

	for name, def := range tomlTheme.Styles {
		if name == ElemDefault {
			continue
		}
		if !IsElement(name) {
			logger.Warnf("Theme '%s': unknown element '%s', skipping", theme.Name, name)
			continue
		}
		style, err := convertTomlStyle(def, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': element '%s': %v, skipping", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}
	theme.deriveCursorLine()

	logger.Debugf("Loaded theme '%s' from '%s'", theme.Name, source)
	return theme, nil
}

// convertTomlStyle applies def on top of base.
func convertTomlStyle(def TomlStyleDef, base tcell.Style) (tcell.Style, error) {
	style := base

	if def.Fg != nil {
		color, err := ParseColor(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("foreground: %w", err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := ParseColor(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("background: %w", err)
		}
		style = style.Background(color)
	}

	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}
