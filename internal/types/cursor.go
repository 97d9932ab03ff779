package types

// Cursor is the caret plus its selection anchor.
// X is the rune column, Y the line. SelectX/SelectY is the anchor and is
// only meaningful while IsSelected is set.
type Cursor struct {
	X, Y       int
	IsSelected bool
	SelectX    int
	SelectY    int
}

// Position returns the caret as a Position.
func (c Cursor) Position() Position {
	return Position{Line: c.Y, Col: c.X}
}

// Anchor returns the selection anchor as a Position.
func (c Cursor) Anchor() Position {
	return Position{Line: c.SelectY, Col: c.SelectX}
}

// Selection returns the normalized selected range and whether one is active.
func (c Cursor) Selection() (Range, bool) {
	if !c.IsSelected {
		return Range{}, false
	}
	r := NewRange(c.Anchor(), c.Position())
	return r, !r.IsEmpty()
}

// CursorAt returns an unselected cursor at pos.
func CursorAt(pos Position) Cursor {
	return Cursor{X: pos.Col, Y: pos.Line}
}
