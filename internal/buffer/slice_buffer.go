// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/lex/internal/types"
	"github.com/bethropolis/lex/internal/utils"
)

// SliceBuffer stores one []byte per line, without terminators.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	newline  types.NewlineKind
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines: [][]byte{{}}, // A new document has a single empty line
	}
}

// NewSliceBufferFromBytes builds a buffer from in-memory content.
func NewSliceBufferFromBytes(content []byte) *SliceBuffer {
	sb := NewSliceBuffer()
	_ = sb.read(bytes.NewReader(content))
	return sb
}

// Load reads a file into the buffer. Replaces existing content.
// A missing file yields an empty buffer bound to filePath.
func (sb *SliceBuffer) Load(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{{}}
			sb.filePath = filePath
			sb.newline = types.NewlineLF
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	if err := sb.read(file); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	sb.filePath = filePath
	return nil
}

// read replaces the content with r's lines. The newline kind is taken from
// the first terminator seen.
func (sb *SliceBuffer) read(r io.Reader) error {
	reader := bufio.NewReader(r)
	newLines := [][]byte{}
	kind := types.NewlineLF
	sawNewline := false
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 && line[len(line)-1] == '\n' {
			line = line[:len(line)-1]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
				if !sawNewline {
					kind = types.NewlineCRLF
				}
			}
			sawNewline = true
			newLines = append(newLines, append([]byte(nil), line...))
		} else if len(line) > 0 {
			newLines = append(newLines, append([]byte(nil), line...))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte{})
	}
	sb.lines = newLines
	sb.newline = kind
	return nil
}

// Lines returns the backing line slices. Callers must not modify them.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines (always at least 1).
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the content of one line.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins the lines with the buffer's newline kind.
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, sb.newline.Bytes())
}

// Save writes the buffer content to filePath, or the stored path if empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	data := sb.Bytes()
	if len(sb.lines) > 1 || len(sb.lines[0]) > 0 {
		data = append(data, sb.newline.Bytes()...) // every line is terminated on disk
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	sb.filePath = path
	return nil
}

// FilePath returns the path the buffer was loaded from or last saved to.
func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// Newline returns the line terminator used on save.
func (sb *SliceBuffer) Newline() types.NewlineKind {
	return sb.newline
}

// SetNewline changes the line terminator used on save.
func (sb *SliceBuffer) SetNewline(kind types.NewlineKind) {
	sb.newline = kind
}

// --- Buffer Modification Methods ---

// validatePosition clamps pos into the buffer and returns its byte offset.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	line := sb.lines[pos.Line]
	if n := utf8.RuneCount(line); pos.Col > n {
		pos.Col = n
	}
	return pos, utils.RuneIndexToByteOffset(line, pos.Col)
}

// Text returns a copy of the text in r, lines joined with '\n'.
func (sb *SliceBuffer) Text(r types.Range) ([]byte, error) {
	r = types.NewRange(r.Start, r.End)
	start, startOff := sb.validatePosition(r.Start)
	end, endOff := sb.validatePosition(r.End)

	if start.Line == end.Line {
		return append([]byte(nil), sb.lines[start.Line][startOff:endOff]...), nil
	}
	var content bytes.Buffer
	content.Write(sb.lines[start.Line][startOff:])
	for i := start.Line + 1; i < end.Line; i++ {
		content.WriteByte('\n')
		content.Write(sb.lines[i])
	}
	content.WriteByte('\n')
	content.Write(sb.lines[end.Line][:endOff])
	return content.Bytes(), nil
}

// Insert inserts text at pos and returns the position just after it.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.Position, error) {
	validPos, off := sb.validatePosition(pos)
	if len(text) == 0 {
		return validPos, nil
	}

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := append([]byte(nil), currentLine[off:]...)
	head := append([]byte(nil), currentLine[:off]...)

	if len(insertLines) == 1 {
		newLine := append(head, text...)
		sb.lines[validPos.Line] = append(newLine, tail...)
		return types.Position{Line: validPos.Line, Col: validPos.Col + utf8.RuneCount(text)}, nil
	}

	newLines := make([][]byte, len(insertLines))
	newLines[0] = append(head, insertLines[0]...)
	for i := 1; i < len(insertLines); i++ {
		newLines[i] = append([]byte(nil), insertLines[i]...)
	}
	last := len(newLines) - 1
	endCol := utf8.RuneCount(newLines[last])
	newLines[last] = append(newLines[last], tail...)

	rest := append(newLines, sb.lines[validPos.Line+1:]...)
	sb.lines = append(sb.lines[:validPos.Line], rest...)

	return types.Position{Line: validPos.Line + last, Col: endCol}, nil
}

// Delete removes the text in r and returns it.
func (sb *SliceBuffer) Delete(r types.Range) ([]byte, error) {
	removed, err := sb.Text(r)
	if err != nil {
		return nil, err
	}
	r = types.NewRange(r.Start, r.End)
	start, startOff := sb.validatePosition(r.Start)
	end, endOff := sb.validatePosition(r.End)
	if start == end {
		return removed, nil
	}

	head := append([]byte(nil), sb.lines[start.Line][:startOff]...)
	merged := append(head, sb.lines[end.Line][endOff:]...)

	rest := append([][]byte{merged}, sb.lines[end.Line+1:]...)
	sb.lines = append(sb.lines[:start.Line], rest...)
	return removed, nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
