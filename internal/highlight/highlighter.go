// internal/highlight/highlighter.go
package highlight

import (
	"github.com/bethropolis/lex/internal/logger"
	"github.com/bethropolis/lex/internal/syntax"
)

// LineSource is the text the highlighter derives its rows from.
type LineSource interface {
	LineCount() int
	Line(index int) ([]byte, error)
}

// Row is the derived highlight state of one line.
type Row struct {
	HL          []Class // one class per byte of the line
	OpenComment bool    // a block comment is still open at the end of the line

	inComment bool // incoming state the row was last scanned with
	scanned   bool
}

// Highlighter keeps per-row highlight state aligned with a LineSource.
// Callers report structural changes with InsertRows/DeleteRows and content
// changes with Update.
type Highlighter struct {
	src     LineSource
	rule    *syntax.Rule
	enabled bool
	rows    []Row
}

// NewHighlighter creates a highlighter over src with no rule and scans it.
func NewHighlighter(src LineSource) *Highlighter {
	h := &Highlighter{src: src, enabled: true}
	h.Refresh()
	return h
}

// Rule returns the active rule, or nil.
func (h *Highlighter) Rule() *syntax.Rule {
	return h.rule
}

// SetRule switches the active rule and rescans every row.
func (h *Highlighter) SetRule(rule *syntax.Rule) {
	h.rule = rule
	name := "none"
	if rule != nil {
		name = rule.Name
	}
	logger.DebugTagf("highlight", "rule set to %s", name)
	h.Refresh()
}

// Enabled reports whether token highlighting is on.
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// SetEnabled toggles token highlighting. Trailing whitespace is marked either way.
func (h *Highlighter) SetEnabled(enabled bool) {
	if h.enabled == enabled {
		return
	}
	h.enabled = enabled
	h.Refresh()
}

// Len returns the number of rows.
func (h *Highlighter) Len() int {
	return len(h.rows)
}

// Row returns the state of row i. The HL slice is shared; do not modify it.
func (h *Highlighter) Row(i int) (Row, bool) {
	if i < 0 || i >= len(h.rows) {
		return Row{}, false
	}
	return h.rows[i], true
}

// Refresh resizes the row state to the source and rescans all of it.
func (h *Highlighter) Refresh() {
	h.rows = make([]Row, h.src.LineCount())
	for i := range h.rows {
		h.scan(i)
	}
}

// InsertRows adds n unscanned rows before index at.
func (h *Highlighter) InsertRows(at, n int) {
	if n <= 0 {
		return
	}
	if at < 0 {
		at = 0
	}
	if at > len(h.rows) {
		at = len(h.rows)
	}
	fresh := make([]Row, n)
	h.rows = append(h.rows[:at], append(fresh, h.rows[at:]...)...)
}

// DeleteRows removes n rows starting at index at.
func (h *Highlighter) DeleteRows(at, n int) {
	if n <= 0 || at < 0 || at >= len(h.rows) {
		return
	}
	end := at + n
	if end > len(h.rows) {
		end = len(h.rows)
	}
	h.rows = append(h.rows[:at], h.rows[end:]...)
}

// Update rescans row and, while the comment state it hands on changes,
// the rows after it. It returns the number of rows scanned.
func (h *Highlighter) Update(row int) int {
	return h.UpdateRange(row, row)
}

// UpdateRange rescans rows from..to, then keeps going while the next row
// was scanned with a different incoming comment state.
func (h *Highlighter) UpdateRange(from, to int) int {
	h.syncLen()
	if from < 0 {
		from = 0
	}
	count := 0
	for i := from; i < len(h.rows); i++ {
		r := &h.rows[i]
		if i > to && r.scanned && r.inComment == h.incoming(i) {
			break
		}
		h.scan(i)
		count++
	}
	if count > 1 {
		logger.DebugTagf("highlight", "rows %d..%d: %d rescanned", from, to, count)
	}
	return count
}

// MarkMatch sets the match background on n bytes of row starting at col.
func (h *Highlighter) MarkMatch(row, col, n int) {
	if row < 0 || row >= len(h.rows) {
		return
	}
	hl := h.rows[row].HL
	for i := col; i < col+n && i < len(hl); i++ {
		if i >= 0 {
			hl[i] = hl[i].WithBg(BgMatch)
		}
	}
}

// ClearMatches removes every match background.
func (h *Highlighter) ClearMatches() {
	for r := range h.rows {
		hl := h.rows[r].HL
		for i, c := range hl {
			if c.Bg() == BgMatch {
				hl[i] = c.WithBg(BgNormal)
			}
		}
	}
}

func (h *Highlighter) incoming(i int) bool {
	return i > 0 && h.rows[i-1].OpenComment
}

func (h *Highlighter) scan(i int) {
	line, err := h.src.Line(i)
	if err != nil {
		logger.Warnf("highlight: row %d: %v", i, err)
		line = nil
	}
	r := &h.rows[i]
	if cap(r.HL) >= len(line) {
		r.HL = r.HL[:len(line)]
	} else {
		r.HL = make([]Class, len(line))
	}

	rule := h.rule
	if !h.enabled {
		rule = nil
	}
	r.inComment = h.incoming(i)
	r.OpenComment = ScanRow(line, rule, r.inComment, r.HL)
	r.scanned = true
}

// syncLen pads or trims the row slice when the source changed size without
// an InsertRows/DeleteRows call.
func (h *Highlighter) syncLen() {
	n := h.src.LineCount()
	switch {
	case len(h.rows) < n:
		h.rows = append(h.rows, make([]Row, n-len(h.rows))...)
	case len(h.rows) > n:
		h.rows = h.rows[:n]
	}
}
