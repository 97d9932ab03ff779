// internal/highlight/scan.go
package highlight

import "github.com/bethropolis/lex/internal/syntax"

// ScanRow classifies text into hl, which must be the same length.
// inComment is the block-comment state carried in from the previous row;
// the return value is the state carried out. A nil rule leaves every byte
// Normal. Trailing spaces and tabs are always marked.
func ScanRow(text []byte, rule *syntax.Rule, inComment bool, hl []Class) bool {
	for i := range hl {
		hl[i] = Normal
	}
	open := false
	if rule != nil {
		open = scanTokens(text, rule, inComment, hl)
	}
	markTrailing(text, hl)
	return open
}

func scanTokens(text []byte, rule *syntax.Rule, inComment bool, hl []Class) bool {
	n := len(text)
	lineComment := rule.LineComment
	blockStart, blockEnd := rule.BlockStart, rule.BlockEnd
	hasBlock := rule.HasBlockComment()
	hlStrings := rule.Has(syntax.HighlightStrings)
	hlNumbers := rule.Has(syntax.HighlightNumbers)

	prevSep := true
	var quote byte // open string delimiter, 0 outside strings

	i := 0
	for i < n {
		c := text[i]

		if lineComment != "" && quote == 0 && !inComment && hasPrefixAt(text, i, lineComment) {
			fill(hl[i:], Comment)
			break
		}

		if hasBlock && quote == 0 {
			if inComment {
				hl[i] = Comment
				if hasPrefixAt(text, i, blockEnd) {
					fill(hl[i:i+len(blockEnd)], Comment)
					i += len(blockEnd)
					inComment = false
					prevSep = true
				}
				// The byte right after a closing delimiter is skipped unclassified.
				i++
				continue
			}
			if hasPrefixAt(text, i, blockStart) {
				fill(hl[i:i+len(blockStart)], Comment)
				i += len(blockStart)
				inComment = true
				continue
			}
		}

		if hlStrings {
			if quote != 0 {
				hl[i] = String
				if c == '\\' && i+1 < n {
					hl[i+1] = String
					i += 2
					continue
				}
				if c == quote {
					quote = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				quote = c
				hl[i] = String
				i++
				continue
			}
		}

		if hlNumbers && prevSep && (isDigit(c) || c == '.') {
			start := i
			i = scanNumber(text, i)
			if c == '.' && i-start == 1 {
				continue
			}
			if i < n && (text[i] == 'f' || text[i] == 'F') {
				i++
			}
			if i == n || isSeparator(text[i]) {
				fill(hl[start:i], Number)
			}
			prevSep = false
			continue
		}

		if prevSep {
			if length, class := matchKeyword(text, i, rule); length > 0 {
				fill(hl[i:i+length], class)
				i += length
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}
	return inComment
}

// scanNumber returns the end of the numeric literal starting at i.
func scanNumber(text []byte, i int) int {
	n := len(text)
	c := text[i]
	i++
	if c == '0' {
		if i >= n {
			return i
		}
		switch next := text[i]; {
		case next == 'x' || next == 'X':
			i++
			for i < n && isHexDigit(text[i]) {
				i++
			}
		case next >= '0' && next <= '7':
			i++
			for i < n && text[i] >= '0' && text[i] <= '7' {
				i++
			}
		case next == '.':
			i++
			for i < n && isDigit(text[i]) {
				i++
			}
		}
		return i
	}

	for i < n && isDigit(text[i]) {
		i++
	}
	if c != '.' && i < n && text[i] == '.' {
		i++
		for i < n && isDigit(text[i]) {
			i++
		}
	}
	return i
}

// matchKeyword returns the length and class of the first keyword matching
// at i, checking categories in order and each category in stored order.
func matchKeyword(text []byte, i int, rule *syntax.Rule) (int, Class) {
	for cat, words := range rule.Keywords {
		for _, kw := range words {
			if kw == "" || !hasPrefixAt(text, i, kw) {
				continue
			}
			end := i + len(kw)
			if end == len(text) || isSeparator(text[end]) {
				return len(kw), Keyword1 + Class(cat)
			}
		}
	}
	return 0, Normal
}

func markTrailing(text []byte, hl []Class) {
	for i := len(text) - 1; i >= 0 && (text[i] == ' ' || text[i] == '\t'); i-- {
		hl[i] = Make(Normal, BgTrailing)
	}
}

func hasPrefixAt(text []byte, i int, s string) bool {
	return len(text)-i >= len(s) && string(text[i:i+len(s)]) == s
}

func fill(hl []Class, c Class) {
	for i := range hl {
		hl[i] = c
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isSeparator reports whether c cannot be part of an identifier.
// Bytes of multi-byte UTF-8 sequences count as identifier bytes.
func isSeparator(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', isDigit(c), c == '_', c >= 0x80:
		return false
	}
	return true
}
