package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/types"
	"github.com/bethropolis/lex/internal/utils"
)

// compileSearch compiles term as a regular expression. With ignoreCase
// set, matching is case-insensitive.
func compileSearch(term string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		term = "(?i)" + term
	}
	re, err := regexp.Compile(term)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return re, nil
}

// Find moves the caret to the next (or previous) match of term, wrapping
// around the buffer. Matches are highlighted.
func (e *Editor) Find(term string, forward, ignoreCase bool) (types.Position, bool, error) {
	if term == "" {
		e.clearSearch()
		return types.Position{}, false, nil
	}
	re, err := compileSearch(term, ignoreCase)
	if err != nil {
		return types.Position{}, false, err
	}
	e.highlightMatches(re, term)

	start := e.cursor.Position()
	if forward {
		start.Col++
	}
	pos, ok := e.findFrom(re, start, forward)
	if !ok {
		return types.Position{}, false, nil
	}
	e.ClearSelection()
	e.moveTo(pos.Line, pos.Col)
	return pos, true, nil
}

// findFrom searches from start, wrapping once around the buffer.
func (e *Editor) findFrom(re *regexp.Regexp, start types.Position, forward bool) (types.Position, bool) {
	lineCount := e.buffer.LineCount()
	for step := 0; step <= lineCount; step++ {
		var lineIdx int
		if forward {
			lineIdx = (start.Line + step) % lineCount
		} else {
			lineIdx = ((start.Line-step)%lineCount + lineCount) % lineCount
		}
		lineBytes, err := e.buffer.Line(lineIdx)
		if err != nil {
			continue
		}
		locs := re.FindAllIndex(lineBytes, -1)

		var best []int
		for _, loc := range locs {
			col := utils.ByteOffsetToRuneIndex(lineBytes, loc[0])
			switch {
			case step == 0 && forward && col < start.Col:
				continue
			case step == 0 && !forward && col >= start.Col:
				continue
			case step == lineCount && forward && col >= start.Col:
				continue
			case step == lineCount && !forward && col < start.Col:
				continue
			}
			best = loc
			if forward {
				break
			}
		}
		if best != nil {
			return types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, best[0])}, true
		}
	}
	return types.Position{}, false
}

// highlightMatches marks every match of re with the match background.
func (e *Editor) highlightMatches(re *regexp.Regexp, term string) {
	e.highlighter.ClearMatches()
	e.searchTerm = term
	count := 0
	for lineIdx := 0; lineIdx < e.buffer.LineCount(); lineIdx++ {
		lineBytes, err := e.buffer.Line(lineIdx)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllIndex(lineBytes, -1) {
			e.highlighter.MarkMatch(lineIdx, loc[0], loc[1]-loc[0])
			count++
		}
	}
	logger.DebugTagf("core", "%d matches for '%s'", count, term)
}

// SearchTerm returns the highlighted search term, empty when none.
func (e *Editor) SearchTerm() string {
	return e.searchTerm
}

// ClearHighlights removes search highlighting.
func (e *Editor) ClearHighlights() {
	e.clearSearch()
}

func (e *Editor) clearSearch() {
	if e.searchTerm == "" {
		return
	}
	e.searchTerm = ""
	e.highlighter.ClearMatches()
}

// ParseSubstituteCommand parses "/pattern/replacement/[g]".
func ParseSubstituteCommand(cmdStr string) (pattern, replacement string, global bool, err error) {
	parts := strings.SplitN(cmdStr, "/", 4)
	if len(parts) < 3 || parts[0] != "" {
		err = fmt.Errorf("invalid format: use /pattern/replacement/[g]")
		return
	}

	pattern = parts[1]
	replacement = parts[2]
	if pattern == "" {
		err = fmt.Errorf("search pattern cannot be empty")
		return
	}
	if len(parts) > 3 && strings.Contains(parts[3], "g") {
		global = true
	}
	return
}

// Replace substitutes matches of pattern on the caret's line, the first one
// or all of them, as a single undoable step. It returns the number replaced.
func (e *Editor) Replace(pattern, replacement string, global bool) (int, error) {
	re, err := compileSearch(pattern, false)
	if err != nil {
		return 0, err
	}
	lineIdx := e.cursor.Y
	lineBytes, err := e.buffer.Line(lineIdx)
	if err != nil {
		return 0, fmt.Errorf("cannot get current line %d: %w", lineIdx, err)
	}

	matches := re.FindAllSubmatchIndex(lineBytes, -1)
	if len(matches) == 0 {
		return 0, nil
	}
	if !global {
		matches = matches[:1]
	}

	var out []byte
	last := 0
	for _, m := range matches {
		out = append(out, lineBytes[last:m[0]]...)
		out = re.Expand(out, []byte(replacement), lineBytes, m)
		last = m[1]
	}
	out = append(out, lineBytes[last:]...)

	lineRange := types.Range{
		Start: types.Position{Line: lineIdx, Col: 0},
		End:   types.Position{Line: lineIdx, Col: e.lineLen(lineIdx)},
	}
	e.replace(lineRange, out)
	e.moveTo(lineIdx, utils.ByteOffsetToRuneIndex(lineBytes, matches[0][0]))
	logger.Debugf("Replace: %d occurrence(s) on line %d", len(matches), lineIdx+1)
	return len(matches), nil
}
