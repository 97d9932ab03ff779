package app

import (
	"github.com/bethropolis/lex/internal/event"
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/theme"
)

// subscribe wires the app's reactions to editor events.
func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	a.eventManager.Subscribe(event.TypeHistoryChanged, a.handleHistoryChanged)
	a.eventManager.Subscribe(event.TypeNewlineChanged, a.handleNewlineChanged)
	a.eventManager.Subscribe(event.TypeRuleChanged, a.handleRuleChanged)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

func (a *App) handleBufferLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		logger.Debugf("App: loaded %q (%d lines, rule %q)",
			data.FilePath, a.editor.GetBuffer().LineCount(), a.editor.RuleName())
	}
	return false
}

// handleHistoryChanged tells the user when undo/redo lands back on the
// saved text.
func (a *App) handleHistoryChanged(e event.Event) bool {
	data, ok := e.Data.(event.HistoryChangedData)
	if !ok {
		return false
	}
	if !a.editor.IsModified() {
		a.statusBar.SetTemporaryMessage("Buffer matches the saved file")
	} else {
		logger.DebugTagf("history", "App: history step (undo=%v), dirty=%d", data.Undo, data.Dirty)
	}
	return false
}

func (a *App) handleNewlineChanged(e event.Event) bool {
	if data, ok := e.Data.(event.NewlineChangedData); ok {
		a.statusBar.SetDocumentInfo(a.editor.RuleName(), data.Kind)
	}
	return false
}

func (a *App) handleRuleChanged(e event.Event) bool {
	if data, ok := e.Data.(event.RuleChangedData); ok {
		a.statusBar.SetDocumentInfo(data.Name, a.editor.GetBuffer().Newline())
	}
	return false
}

// handleThemeChanged updates the screen's default style. Theme commands
// from the rc file run before the screen exists.
func (a *App) handleThemeChanged(e event.Event) bool {
	if a.tuiManager == nil {
		return false
	}
	a.tuiManager.SetStyle(a.themeManager.Current().GetStyle(theme.ElemDefault))
	return false
}
