// Package history provides undo/redo functionality via an action log.
package history

import (
	"bytes"

	"github.com/bethropolis/lex/internal/types"
)

// Clipboard is an owned snapshot of the text spanned by a range at the
// moment an action was recorded. Lines are joined with '\n'.
type Clipboard struct {
	data []byte
}

// NewClipboard copies text; later changes to text do not affect the snapshot.
func NewClipboard(text []byte) Clipboard {
	if len(text) == 0 {
		return Clipboard{}
	}
	data := make([]byte, len(text))
	copy(data, text)
	return Clipboard{data: data}
}

// Bytes returns the snapshot contents. Callers must not modify the result.
func (c Clipboard) Bytes() []byte { return c.data }

// Len returns the snapshot length in bytes.
func (c Clipboard) Len() int { return len(c.data) }

// Lines returns the number of lines spanned (at least 1).
func (c Clipboard) Lines() int { return bytes.Count(c.data, []byte{'\n'}) + 1 }

func (c Clipboard) String() string { return string(c.data) }

// Action is one reversible record in the history. The set of
// implementations is closed: *EditAction and *AttributeAction.
type Action interface {
	isAction()
}

// EditAction replaces the text in DeletedRange with AddedText. Either side
// may be empty, so plain insertions and deletions are edits too.
type EditAction struct {
	DeletedRange types.Range
	DeletedText  Clipboard

	AddedRange types.Range
	AddedText  Clipboard

	OldCursor types.Cursor
	NewCursor types.Cursor
}

// AttributeAction changes the document's newline kind.
type AttributeAction struct {
	OldNewline types.NewlineKind
	NewNewline types.NewlineKind
}

func (*EditAction) isAction()      {}
func (*AttributeAction) isAction() {}

// Document is the set of mutation primitives undo and redo replay against.
// They must be exact inverses of each other given unchanged surrounding state.
type Document interface {
	DeleteRange(r types.Range) Clipboard
	PasteText(text Clipboard, at types.Position)
	SetCursor(c types.Cursor)
	SetNewline(kind types.NewlineKind)
}

// undoAction reverts a against doc.
func undoAction(doc Document, a Action) {
	switch act := a.(type) {
	case *EditAction:
		doc.DeleteRange(act.AddedRange)
		doc.PasteText(act.DeletedText, act.DeletedRange.Start)
		doc.SetCursor(act.OldCursor)
	case *AttributeAction:
		doc.SetNewline(act.OldNewline)
	default:
		panic("history: unknown action type")
	}
}

// redoAction replays a against doc.
func redoAction(doc Document, a Action) {
	switch act := a.(type) {
	case *EditAction:
		doc.DeleteRange(act.DeletedRange)
		doc.PasteText(act.AddedText, act.AddedRange.Start)
		doc.SetCursor(act.NewCursor)
	case *AttributeAction:
		doc.SetNewline(act.NewNewline)
	default:
		panic("history: unknown action type")
	}
}
