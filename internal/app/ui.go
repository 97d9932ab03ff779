package app

import (
	"github.com/bethropolis/lex/internal/commands"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/tui"
)

// drawOptions reads the display variables, so "set" commands take effect
// on the next frame.
func (a *App) drawOptions() tui.DrawOptions {
	opts := tui.DefaultDrawOptions()
	opts.StatusBarHeight = a.cfg.Editor.StatusBarHeight
	opts.TabWidth = a.editor.Options().TabWidth
	if v := a.registry.Variable(commands.VarLineNo); v != nil {
		opts.LineNumbers = v.Bool()
	}
	if v := a.registry.Variable(commands.VarTrailing); v != nil {
		opts.Highlight.Trailing = v.Bool()
	}
	if v := a.registry.Variable(commands.VarDrawSpace); v != nil {
		opts.Highlight.DrawSpace = v.Bool()
	}
	return opts
}

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	opts := a.drawOptions()
	currentTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	viewW, viewH := tui.TextAreaSize(width, height, a.editor.GetBuffer().LineCount(), opts)
	a.editor.SetViewSize(viewW, viewH)
	logger.DebugTagf("draw", "drawEditor: screen %dx%d, text area %dx%d", width, height, viewW, viewH)

	a.tuiManager.Clear()
	tui.DrawBuffer(a.tuiManager, a.editor, currentTheme, opts)
	a.statusBar.Draw(screen, width, height, currentTheme)
	tui.DrawCursor(a.tuiManager, a.editor, opts)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.editor.FilePath(), a.editor.IsModified(), a.editor.Dirty())
	a.statusBar.SetDocumentInfo(a.editor.RuleName(), a.editor.GetBuffer().Newline())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())
}
