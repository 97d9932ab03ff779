// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/lex/internal/buffer"
	"github.com/bethropolis/lex/internal/commands"
	"github.com/bethropolis/lex/internal/config"
	"github.com/bethropolis/lex/internal/convar"
	"github.com/bethropolis/lex/internal/core"
	"github.com/bethropolis/lex/internal/event"
	"github.com/bethropolis/lex/internal/input"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/modehandler"
	"github.com/bethropolis/lex/internal/statusbar"
	"github.com/bethropolis/lex/internal/syntax"
	"github.com/bethropolis/lex/internal/theme"
	"github.com/bethropolis/lex/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg          *config.Config
	tuiManager   *tui.TUI
	editor       *core.Editor
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	modeHandler  *modehandler.ModeHandler
	registry     *convar.Registry
	rules        *syntax.Database
	themeManager *theme.Manager

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// screenFunc builds the terminal once the initial theme is known.
type screenFunc func(defStyle tcell.Style) (*tui.TUI, error)

// NewApp creates and initializes a new application instance on the terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	return newApp(cfg, filePath, tui.New)
}

func newApp(cfg *config.Config, filePath string, newScreen screenFunc) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	buf := buffer.NewSliceBuffer()
	if err := buf.Load(filePath); err != nil {
		return nil, fmt.Errorf("loading %q: %w", filePath, err)
	}

	editor := core.NewEditor(buf, core.Options{
		TabWidth:        cfg.Editor.TabWidth,
		ScrollOff:       cfg.Editor.ScrollOff,
		SystemClipboard: cfg.Editor.SystemClipboard,
	})
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	themeManager := theme.NewManager(cfg.Editor.ThemesDir)
	if cfg.Editor.Theme != "" {
		if err := themeManager.SetTheme(cfg.Editor.Theme); err != nil {
			logger.Warnf("App: %v, keeping %s", err, themeManager.Current().Name)
		}
	}

	a := &App{
		cfg:           cfg,
		editor:        editor,
		statusBar:     statusbar.New(config.MessageTimeout),
		eventManager:  eventManager,
		registry:      convar.NewRegistry(),
		themeManager:  themeManager,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	err := commands.Register(a.registry, a, commands.Settings{
		Syntax:      cfg.Syntax.Enabled,
		Trailing:    cfg.Syntax.Trailing,
		DrawSpace:   cfg.Syntax.DrawSpace,
		LineNumbers: cfg.Editor.LineNumbers,
		TabWidth:    cfg.Editor.TabWidth,
	})
	if err != nil {
		return nil, fmt.Errorf("registering commands: %w", err)
	}

	// The config-file rule is built from the registry, so it is loaded
	// only after every command and variable exists.
	a.rules = syntax.Load(syntax.LoadOptions{
		Commands:  a.registry.Commands(),
		Variables: a.registry.Variables(),
		Elements:  theme.ElementNames(),
		UserDir:   cfg.Syntax.UserDir,
	})
	editor.Highlighter().SetEnabled(cfg.Syntax.Enabled)
	if rule := editor.SelectRule(a.rules); rule != nil {
		logger.Debugf("App: using rule %q for %q", rule.Name, filePath)
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		Registry:       a.registry,
		QuitSignal:     a.quit,
	})

	a.subscribe()
	a.runRCFile()

	tuiManager, err := newScreen(a.themeManager.Current().GetStyle(theme.ElemDefault))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a.tuiManager = tuiManager

	eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})
	return a, nil
}

// runRCFile executes the user's startup commands. A missing file is fine.
func (a *App) runRCFile() {
	path := a.cfg.Editor.RCFile
	if path == "" {
		return
	}
	err := a.registry.ExecFile(path)
	switch {
	case err == nil:
		logger.Infof("App: executed %s", path)
	case errors.Is(err, os.ErrNotExist):
		logger.Debugf("App: no rc file at %s", path)
	default:
		logger.Warnf("App: rc file: %v", err)
		a.SetStatusMessage("%v", err)
	}
}

// Run starts the application's main loop. Key handling and drawing both
// happen on the calling goroutine; a helper goroutine only polls the screen.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	events := make(chan tcell.Event, 16)
	go a.pollEvents(events)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.SetStatusMessage("%s - Ctrl+S Save | Ctrl+P Command | Ctrl+F Find | Ctrl+Q Quit", config.AppName)
	a.drawEditor()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.IsModified() {
				logger.Warnf("App: exiting with unsaved changes in %q", a.editor.FilePath())
			}
			logger.Infof("App: exiting")
			return nil
		case ev := <-events:
			if a.handleEvent(ev) {
				a.drawEditor()
			}
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or the
// app quits.
func (a *App) pollEvents(events chan<- tcell.Event) {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent processes one screen event and reports whether to redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ev)
	}
	return false
}

// Editor returns the open document.
func (a *App) Editor() *core.Editor { return a.editor }

// Themes returns the theme manager.
func (a *App) Themes() *theme.Manager { return a.themeManager }

// Rules returns the loaded rule database.
func (a *App) Rules() *syntax.Database { return a.rules }

// SetStatusMessage shows a temporary message and schedules the redraw that
// clears it once it expires.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	time.AfterFunc(config.MessageTimeout+10*time.Millisecond, a.requestRedraw)
}

// ThemeChanged applies the active theme to the screen and redraws.
func (a *App) ThemeChanged() {
	current := a.themeManager.Current()
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: current.Name})
	a.requestRedraw()
}

// Quit asks the main loop to exit.
func (a *App) Quit() {
	a.modeHandler.Quit()
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
