// internal/event/event.go
package event

import "github.com/bethropolis/lex/internal/types"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified // text changed (edit, undo or redo)
	TypeBufferLoaded   // a file was loaded
	TypeBufferSaved    // a file was written
	TypeCursorMoved    // the cursor position changed
	TypeHistoryChanged // an undo or redo step was applied
	TypeNewlineChanged // the document's newline kind changed
	TypeRuleChanged    // a different highlight rule was selected

	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

var typeNames = map[Type]string{
	TypeUnknown:        "Unknown",
	TypeBufferModified: "BufferModified",
	TypeBufferLoaded:   "BufferLoaded",
	TypeBufferSaved:    "BufferSaved",
	TypeCursorMoved:    "CursorMoved",
	TypeHistoryChanged: "HistoryChanged",
	TypeNewlineChanged: "NewlineChanged",
	TypeRuleChanged:    "RuleChanged",
	TypeAppReady:       "AppReady",
	TypeAppQuit:        "AppQuit",
	TypeThemeChanged:   "ThemeChanged",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData names the lines an edit touched, after the edit.
type BufferModifiedData struct {
	StartLine int
	EndLine   int
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// HistoryChangedData describes an applied undo or redo.
type HistoryChangedData struct {
	Undo  bool // false for redo
	Dirty int  // unsaved-change count after the step
}

// NewlineChangedData carries the new newline kind.
type NewlineChangedData struct {
	Kind types.NewlineKind
}

// RuleChangedData names the selected rule, empty for none.
type RuleChangedData struct {
	Name string
}

// ThemeChangedData names the active theme.
type ThemeChangedData struct {
	Name string
}

// AppReadyData is sent once the app has finished starting.
type AppReadyData struct{}

// AppQuitData is sent just before the app exits.
type AppQuitData struct{}
