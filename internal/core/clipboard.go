package core

import (
	"github.com/atotto/clipboard"

	"github.com/bethropolis/lex/internal/logger"
)

// ClipboardProvider is an external clipboard.
type ClipboardProvider interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard returns the OS clipboard, or nil when the platform has
// no clipboard utility.
func SystemClipboard() ClipboardProvider {
	if clipboard.Unsupported {
		logger.Infof("System clipboard unsupported, using internal register")
		return nil
	}
	return systemClipboard{}
}

// Copy puts the selected text on the clipboard. It returns false if nothing
// was selected.
func (e *Editor) Copy() bool {
	r, ok := e.cursor.Selection()
	if !ok {
		return false
	}
	text, err := e.buffer.Text(r)
	if err != nil {
		logger.Errorf("Editor: copy %v: %v", r, err)
		return false
	}
	e.register = text
	if e.clipboard != nil {
		if err := e.clipboard.WriteAll(string(text)); err != nil {
			logger.Warnf("Editor: system clipboard write failed: %v", err)
		}
	}
	logger.DebugTagf("core", "copied %d bytes", len(text))
	return true
}

// Cut copies the selection and deletes it as one undoable step.
func (e *Editor) Cut() bool {
	if !e.Copy() {
		return false
	}
	return e.DeleteSelection()
}

// Paste inserts the clipboard contents, replacing any selection. The system
// clipboard is preferred; the internal register is used when it is
// unavailable or empty.
func (e *Editor) Paste() bool {
	text := e.register
	if e.clipboard != nil {
		s, err := e.clipboard.ReadAll()
		switch {
		case err != nil:
			logger.Warnf("Editor: system clipboard read failed: %v", err)
		case s != "":
			text = []byte(s)
		}
	}
	if len(text) == 0 {
		return false
	}
	e.InsertText(normalizeNewlines(text))
	return true
}

// normalizeNewlines turns CRLF and lone CR into LF.
func normalizeNewlines(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\r' {
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			c = '\n'
		}
		out = append(out, c)
	}
	return out
}
