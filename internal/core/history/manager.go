package history

import (
	"fmt"

	"github.com/bethropolis/lex/internal/logger"
)

// Manager is a linear, cursor-addressed action log.
//
// actions[:current] have been applied; actions[current:] are the redo tail.
// current == 0 is the empty-history position. dirty counts net forward
// steps (append and redo add one, undo subtracts one) and is never clamped.
type Manager struct {
	actions []Action
	current int
	dirty   int

	// savedAt is the value of current at the last save, or -1 once the
	// saved state has been cut off by truncating the redo tail.
	savedAt int
}

// NewManager creates an empty history.
func NewManager() *Manager {
	return &Manager{}
}

// Append records a new action after the current position, discarding the redo tail.
func (m *Manager) Append(a Action) {
	if a == nil {
		return
	}
	if m.current < len(m.actions) {
		logger.DebugTagf("history", "History: Discarding %d redo action(s)", len(m.actions)-m.current)
		if m.savedAt > m.current {
			m.savedAt = -1
		}
		// Clear references so truncated snapshots can be collected.
		for i := m.current; i < len(m.actions); i++ {
			m.actions[i] = nil
		}
		m.actions = m.actions[:m.current]
	}
	m.actions = append(m.actions, a)
	m.current++
	m.dirty++
	logger.DebugTagf("history", "History: Recorded %s. Index: %d, Count: %d, Dirty: %d", describe(a), m.current, len(m.actions), m.dirty)
}

// Undo reverts the action at the current position.
// It returns false, touching nothing, if there is nothing to undo.
func (m *Manager) Undo(doc Document) bool {
	if m.current == 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return false
	}
	a := m.actions[m.current-1]
	logger.DebugTagf("history", "History: Undoing %d (%s)", m.current-1, describe(a))
	undoAction(doc, a)
	m.current--
	m.dirty--
	return true
}

// Redo replays the first action of the redo tail.
// It returns false, touching nothing, if the redo tail is empty.
func (m *Manager) Redo(doc Document) bool {
	if m.current >= len(m.actions) {
		logger.DebugTagf("history", "History: Nothing to redo. current=%d, len=%d", m.current, len(m.actions))
		return false
	}
	a := m.actions[m.current]
	m.current++
	logger.DebugTagf("history", "History: Redoing %d (%s)", m.current-1, describe(a))
	redoAction(doc, a)
	m.dirty++
	return true
}

// Dirty returns the net number of forward steps since the last reset.
func (m *Manager) Dirty() int { return m.dirty }

// ResetDirty zeroes the dirty counter without touching the log.
func (m *Manager) ResetDirty() { m.dirty = 0 }

// MarkSaved records the current position as the saved state and resets dirty.
func (m *Manager) MarkSaved() {
	m.ResetDirty()
	m.savedAt = m.current
}

// IsClean reports whether the document is at the last saved state.
// Undoing past a save and redoing back is clean again; appending after
// undoing past a save is not, even if dirty happens to read zero.
func (m *Manager) IsClean() bool {
	return m.savedAt == m.current
}

// CanUndo returns true if there are actions that can be undone.
func (m *Manager) CanUndo() bool { return m.current > 0 }

// CanRedo returns true if there are actions that can be redone.
func (m *Manager) CanRedo() bool { return m.current < len(m.actions) }

// Len returns the number of recorded actions, including the redo tail.
func (m *Manager) Len() int { return len(m.actions) }

// Index returns the number of currently applied actions.
func (m *Manager) Index() int { return m.current }

// Clear drops all history, e.g. when a new file is loaded into the document.
func (m *Manager) Clear() {
	m.actions = nil
	m.current = 0
	m.dirty = 0
	m.savedAt = 0
	logger.DebugTagf("history", "History: Cleared.")
}

func describe(a Action) string {
	switch act := a.(type) {
	case *EditAction:
		return fmt.Sprintf("edit(-%d +%d)", act.DeletedText.Len(), act.AddedText.Len())
	case *AttributeAction:
		return fmt.Sprintf("attribute(%s->%s)", act.OldNewline, act.NewNewline)
	}
	return fmt.Sprintf("%T", a)
}
