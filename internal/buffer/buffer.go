// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/lex/internal/types"

// Buffer defines the line storage the editor mutates.
// Positions are (line, rune column); Delete and Insert are exact inverses:
// inserting the text Delete returned at the range start restores the buffer.
type Buffer interface {
	Load(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Insert(pos types.Position, text []byte) (types.Position, error)
	Delete(r types.Range) ([]byte, error)
	Text(r types.Range) ([]byte, error)
	Save(filePath string) error
	Bytes() []byte
	FilePath() string
	Newline() types.NewlineKind
	SetNewline(kind types.NewlineKind)
}
