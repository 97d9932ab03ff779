// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lex/internal/convar"
	"github.com/bethropolis/lex/internal/core"
	"github.com/bethropolis/lex/internal/event"
	"github.com/bethropolis/lex/internal/input"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModeFind
)

var modeNames = map[InputMode]string{
	ModeNormal:  "",
	ModeCommand: "COMMAND",
	ModeFind:    "FIND",
}

// ModeHandler routes decoded keys to the editor, the command line or the
// find prompt depending on the current mode.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	registry       *convar.Registry
	quitSignal     chan<- struct{}

	currentMode       InputMode
	cmdBuffer         []rune
	findBuffer        []rune
	lastSearchTerm    string
	lastSearchForward bool
	forceQuitPending  bool
	quitting          bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Registry       *convar.Registry
	QuitSignal     chan<- struct{} // closed once to ask the app to exit
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil ||
		cfg.StatusBar == nil || cfg.Registry == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:            cfg.Editor,
		inputProcessor:    cfg.InputProcessor,
		eventManager:      cfg.EventManager,
		statusBar:         cfg.StatusBar,
		registry:          cfg.Registry,
		quitSignal:        cfg.QuitSignal,
		currentMode:       ModeNormal,
		lastSearchForward: true,
	}
}

// HandleKeyEvent decodes ev and runs it in the current mode. It returns
// true when the screen needs a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	case ModeFind:
		return mh.handleActionFind(actionEvent)
	}
	logger.Warnf("ModeHandler: unknown input mode %d", mh.currentMode)
	return false
}

// Quit asks the app to exit. Further calls do nothing.
func (mh *ModeHandler) Quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns the mode name for the status bar.
func (mh *ModeHandler) GetCurrentModeString() string {
	return modeNames[mh.currentMode]
}

// GetCommandBuffer returns the command being typed, empty outside command mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// GetFindBuffer returns the search term being typed, empty outside find mode.
func (mh *ModeHandler) GetFindBuffer() string {
	if mh.currentMode == ModeFind {
		return string(mh.findBuffer)
	}
	return ""
}

func (mh *ModeHandler) setMode(mode InputMode) {
	mh.currentMode = mode
	mh.statusBar.SetEditorMode(modeNames[mode])
	switch mode {
	case ModeCommand:
		mh.statusBar.SetPrompt(":" + string(mh.cmdBuffer))
	case ModeFind:
		mh.statusBar.SetPrompt("/" + string(mh.findBuffer))
	default:
		mh.statusBar.SetPrompt("")
	}
}
