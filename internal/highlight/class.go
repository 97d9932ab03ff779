// internal/highlight/class.go
package highlight

// Class is the per-byte highlight value: the low four bits hold the
// foreground class, the high four bits the background class.
type Class uint8

// Foreground classes.
const (
	Normal Class = iota
	Comment
	Keyword1
	Keyword2
	Keyword3
	String
	Number
	Space

	FgCount
)

// Background classes.
const (
	BgNormal Class = iota
	BgMatch
	BgSelect
	BgTrailing

	BgCount
)

const (
	fgBits = 4
	fgMask = 0x0F
)

// Make packs a foreground and background class into one value.
func Make(fg, bg Class) Class {
	return fg&fgMask | bg<<fgBits
}

// Fg returns the foreground class.
func (c Class) Fg() Class {
	return c & fgMask
}

// Bg returns the background class.
func (c Class) Bg() Class {
	return c >> fgBits
}

// WithBg returns c with its background replaced.
func (c Class) WithBg(bg Class) Class {
	return Make(c.Fg(), bg)
}

var fgNames = [FgCount]string{"normal", "comment", "keyword1", "keyword2", "keyword3", "string", "number", "space"}

var bgNames = [BgCount]string{"normal", "match", "select", "trailing"}

// FgName returns the element suffix for a foreground class.
func FgName(fg Class) string {
	if fg < FgCount {
		return fgNames[fg]
	}
	return "unknown"
}

// BgName returns the element suffix for a background class.
func BgName(bg Class) string {
	if bg < BgCount {
		return bgNames[bg]
	}
	return "unknown"
}

// DrawOptions are the display toggles applied when a class is rendered.
type DrawOptions struct {
	DrawSpace bool // show spaces and tabs with the Space foreground
	Trailing  bool // show the trailing-whitespace background
}

// Resolve returns the foreground and background to draw byte ch with.
// Selection overrides the stored background.
func Resolve(c Class, ch byte, selected bool, opts DrawOptions) (fg, bg Class) {
	fg, bg = c.Fg(), c.Bg()
	if selected {
		bg = BgSelect
	}
	if opts.DrawSpace && (ch == ' ' || ch == '\t') {
		fg = Space
	}
	if bg == BgTrailing && !opts.Trailing {
		bg = BgNormal
	}
	return fg, bg
}
