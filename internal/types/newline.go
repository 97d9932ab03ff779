package types

import (
	"fmt"
	"strings"
)

// NewlineKind is the line terminator a document is written with.
type NewlineKind int

const (
	NewlineLF NewlineKind = iota
	NewlineCRLF
)

// Bytes returns the terminator sequence.
func (n NewlineKind) Bytes() []byte {
	if n == NewlineCRLF {
		return []byte("\r\n")
	}
	return []byte("\n")
}

func (n NewlineKind) String() string {
	if n == NewlineCRLF {
		return "CRLF"
	}
	return "LF"
}

// ParseNewlineKind accepts "lf", "crlf", "unix" or "dos" in any case.
func ParseNewlineKind(s string) (NewlineKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lf", "unix":
		return NewlineLF, nil
	case "crlf", "dos":
		return NewlineCRLF, nil
	}
	return NewlineLF, fmt.Errorf("unknown newline kind %q", s)
}
