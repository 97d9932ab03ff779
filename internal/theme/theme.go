// internal/theme/theme.go
package theme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lex/internal/highlight"
	"github.com/bethropolis/lex/internal/logger"
)

// Color element names. They are the keys of Theme.Styles and the names the
// "color" command and theme files accept.
const (
	ElemDefault          = "default"
	ElemCursorLine       = "cursorline"
	ElemLineNumber       = "linenumber"
	ElemLineNumberActive = "linenumber.active"
	ElemStatus           = "status"
	ElemStatusModified   = "status.modified"
	ElemStatusMessage    = "status.message"
	ElemPrompt           = "prompt"
)

// Elements for highlight classes are "hl.<fg>" and "hl.bg.<bg>".
const (
	hlPrefix   = "hl."
	hlBgPrefix = "hl.bg."
)

// FgElement returns the element name for a foreground class.
func FgElement(fg highlight.Class) string {
	return hlPrefix + highlight.FgName(fg)
}

// BgElement returns the element name for a background class.
func BgElement(bg highlight.Class) string {
	return hlBgPrefix + highlight.BgName(bg)
}

// ElementNames lists every color element in a stable order.
func ElementNames() []string {
	names := []string{
		ElemDefault, ElemCursorLine, ElemLineNumber, ElemLineNumberActive,
		ElemStatus, ElemStatusModified, ElemStatusMessage, ElemPrompt,
	}
	for fg := highlight.Normal; fg < highlight.FgCount; fg++ {
		names = append(names, FgElement(fg))
	}
	for bg := highlight.BgNormal + 1; bg < highlight.BgCount; bg++ {
		names = append(names, BgElement(bg))
	}
	return names
}

// IsElement reports whether name is a known color element.
func IsElement(name string) bool {
	for _, e := range ElementNames() {
		if e == name {
			return true
		}
	}
	return false
}

// Theme maps color elements to styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name, falling back to the part before the
// first dot and then to the default element.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[ElemDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': no style for '%s' and no default, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// ClassStyle returns the style for a highlight foreground on a highlight
// background. BgNormal draws on the cursor-line color when cursorLine is set.
func (t *Theme) ClassStyle(fg, bg highlight.Class, cursorLine bool) tcell.Style {
	base := t.GetStyle(ElemDefault)
	if cursorLine {
		base = t.GetStyle(ElemCursorLine)
	}

	fgColor, _, attrs := t.GetStyle(FgElement(fg)).Decompose()
	style := base.Foreground(fgColor).Attributes(attrs)

	if bg != highlight.BgNormal {
		if bgStyle, ok := t.Styles[BgElement(bg)]; ok {
			_, bgColor, _ := bgStyle.Decompose()
			style = style.Background(bgColor)
		}
	}
	return style
}

// SetColor changes the colors of one element. An empty fg or bg keeps the
// current value.
func (t *Theme) SetColor(element, fg, bg string) error {
	if !IsElement(element) {
		return fmt.Errorf("unknown color element '%s'", element)
	}
	style := t.GetStyle(element)
	if fg != "" {
		c, err := ParseColor(fg)
		if err != nil {
			return err
		}
		style = style.Foreground(c)
	}
	if bg != "" {
		c, err := ParseColor(bg)
		if err != nil {
			return err
		}
		style = style.Background(c)
	}
	t.Styles[element] = style
	return nil
}

// Clone returns a copy whose styles can be changed independently.
func (t *Theme) Clone() *Theme {
	c := &Theme{Name: t.Name, IsDark: t.IsDark, Styles: make(map[string]tcell.Style, len(t.Styles))}
	for k, v := range t.Styles {
		c.Styles[k] = v
	}
	return c
}

// LexDark is the built-in theme.
func LexDark() *Theme {
	background := tcell.NewHexColor(0x1f2329)
	panel := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)
	red := tcell.NewHexColor(0xe06c75)

	base := tcell.StyleDefault.Background(background).Foreground(foreground)

	t := &Theme{
		Name:   "Lex Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			ElemDefault:          base,
			ElemLineNumber:       base.Foreground(muted),
			ElemLineNumberActive: base.Foreground(yellow),
			ElemStatus:           base.Background(panel),
			ElemStatusModified:   base.Background(panel).Foreground(yellow),
			ElemStatusMessage:    base.Background(panel).Bold(true),
			ElemPrompt:           base.Foreground(green).Bold(true),

			FgElement(highlight.Normal):   base,
			FgElement(highlight.Comment):  base.Foreground(muted).Italic(true),
			FgElement(highlight.Keyword1): base.Foreground(blue).Bold(true),
			FgElement(highlight.Keyword2): base.Foreground(cyan),
			FgElement(highlight.Keyword3): base.Foreground(magenta),
			FgElement(highlight.String):   base.Foreground(green),
			FgElement(highlight.Number):   base.Foreground(orange),
			FgElement(highlight.Space):    base.Foreground(panel),

			BgElement(highlight.BgMatch):    base.Background(tcell.NewHexColor(0x4b5263)),
			BgElement(highlight.BgSelect):   base.Background(tcell.NewHexColor(0x3e4451)),
			BgElement(highlight.BgTrailing): base.Background(red),
		},
	}
	t.deriveCursorLine()
	return t
}

// deriveCursorLine fills in the cursor-line element when a theme omits it.
func (t *Theme) deriveCursorLine() {
	if _, ok := t.Styles[ElemCursorLine]; ok {
		return
	}
	fg, bg, _ := t.GetStyle(ElemDefault).Decompose()
	amount := 0.06
	if !t.IsDark {
		amount = 0.04
	}
	t.Styles[ElemCursorLine] = t.GetStyle(ElemDefault).Background(Blend(bg, fg, amount))
}
