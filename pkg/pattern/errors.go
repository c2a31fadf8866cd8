package pattern

import "fmt"

// SyntaxError reports a malformed pattern. It is returned by Compile (and
// therefore by Match) the first time the offending pattern is used; a bad
// pattern never degrades into a rule that silently matches nothing.
type SyntaxError struct {
	// Pattern is the full pattern text being compiled.
	Pattern string

	// Offset is the byte offset of the offending segment within Pattern.
	Offset int

	// Msg describes what is wrong with the segment.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern: invalid pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Msg)
}

// syntaxErr builds a SyntaxError for the segment starting at offset.
func syntaxErr(pat string, offset int, format string, args ...any) error {
	return &SyntaxError{
		Pattern: pat,
		Offset:  offset,
		Msg:     fmt.Sprintf(format, args...),
	}
}
