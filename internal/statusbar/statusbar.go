// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/lex/internal/config"
	"github.com/bethropolis/lex/internal/theme"
	"github.com/bethropolis/lex/internal/types"
)

// StatusBar is the last screen line: document state on the left, the
// position on the right, or a prompt or temporary message over both.
type StatusBar struct {
	mu             sync.RWMutex
	messageTimeout time.Duration
	now            func() time.Time

	filePath   string
	cursorPos  types.Position
	isModified bool
	dirty      int
	ruleName   string
	newline    types.NewlineKind
	editorMode string

	prompt string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a StatusBar. A zero timeout uses the default.
func New(messageTimeout time.Duration) *StatusBar {
	if messageTimeout <= 0 {
		messageTimeout = config.MessageTimeout
	}
	return &StatusBar{messageTimeout: messageTimeout, now: time.Now}
}

// SetFileInfo updates the file path and modified state.
func (sb *StatusBar) SetFileInfo(path string, modified bool, dirty int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
	sb.dirty = dirty
}

// SetDocumentInfo updates the highlight rule name and newline kind.
func (sb *StatusBar) SetDocumentInfo(ruleName string, newline types.NewlineKind) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.ruleName = ruleName
	sb.newline = newline
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetPrompt shows an input line (for example ":goto 1") until cleared
// with an empty string.
func (sb *StatusBar) SetPrompt(prompt string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = prompt
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the active temporary message, empty when none.
func (sb *StatusBar) Message() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.messageActive() {
		return sb.tempMessage
	}
	return ""
}

func (sb *StatusBar) messageActive() bool {
	return sb.tempMessage != "" && sb.now().Sub(sb.tempMessageTime) <= sb.messageTimeout
}

// leftText builds the document part of the status line.
func (sb *StatusBar) leftText() string {
	name := "[No Name]"
	if sb.filePath != "" {
		name = filepath.Base(sb.filePath)
	}
	text := name
	if sb.isModified {
		text += fmt.Sprintf(" [+%d]", sb.dirty)
	}
	if sb.editorMode != "" {
		text += " -- " + sb.editorMode
	}
	return text
}

// rightText builds the position part of the status line.
func (sb *StatusBar) rightText() string {
	rule := sb.ruleName
	if rule == "" {
		rule = "plain"
	}
	return fmt.Sprintf("%s | %s | %d:%d", rule, sb.newline, sb.cursorPos.Line+1, sb.cursorPos.Col+1)
}

// Draw renders the status bar on the last screen line.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	if !sb.tempMessageTime.IsZero() && !sb.messageActive() {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	var left, right string
	style := th.GetStyle(theme.ElemStatus)
	leftStyle := style
	switch {
	case sb.prompt != "":
		left = sb.prompt
		style = th.GetStyle(theme.ElemPrompt)
		leftStyle = style
	case sb.tempMessage != "":
		left = sb.tempMessage
		leftStyle = th.GetStyle(theme.ElemStatusMessage)
		right = sb.rightText()
	default:
		left = sb.leftText()
		if sb.isModified {
			leftStyle = th.GetStyle(theme.ElemStatusModified)
		}
		right = sb.rightText()
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	rightWidth := uniseg.StringWidth(right)
	leftEnd := drawText(screen, 0, y, width, left, leftStyle)
	if right != "" && leftEnd+1+rightWidth <= width {
		drawText(screen, width-rightWidth, y, width, right, style)
	}
}

// drawText draws text from x by grapheme cluster and returns the column
// after the last drawn cluster.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += clusterWidth
	}
	return x
}
