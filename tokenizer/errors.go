package tokenizer

import (
	"errors"
	"fmt"
)

// LexError is raised by the Tokenizer in strict mode when the input
// violates a lexical constraint. It carries the 1-based source line so
// callers can format "<message> Line N" without re-deriving position
// themselves.
type LexError struct {
	Msg  string
	Line int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s Line %d", e.Msg, e.Line)
}

// Is reports whether target is a *LexError with the same message,
// independent of the line it occurred on — so callers can write
// errors.Is(err, ErrAttributeValueMissing) without pinning a line number.
func (e *LexError) Is(target error) bool {
	var le *LexError
	if errors.As(target, &le) {
		return e.Msg == le.Msg
	}
	return false
}

// Canonical strict-mode error messages.
var (
	ErrWriteAfterDone           = &LexError{Msg: ".write() after done!"}
	ErrEndAfterDone             = &LexError{Msg: ".end() after done!"}
	ErrElementNameLt            = &LexError{Msg: "Element name cannot include '<'"}
	ErrElementNameAmp           = &LexError{Msg: "Element name cannot include '&'"}
	ErrAttributeNameLt          = &LexError{Msg: "Attribute name cannot include '<'"}
	ErrAttributeNameAmp         = &LexError{Msg: "Attribute name cannot include '&'"}
	ErrAttributeValueMissing    = &LexError{Msg: "Attribute value is missing"}
	ErrAttributeValueNotQuoted  = &LexError{Msg: "Attribute value must be in quotes"}
	ErrUnescapedLtInAttribValue = &LexError{Msg: "Unescaped '<' not allowed in attributes values"}
)

func lexErrorAt(base *LexError, line int) *LexError {
	return &LexError{Msg: base.Msg, Line: line}
}
