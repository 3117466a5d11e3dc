package parser

import (
	"errors"
	"fmt"
)

// StructureError is raised in strict mode for open-element stack
// violations: a closing tag with no matching open element, or elements
// still open when the document ends. Same Unwrap/Is typed-error shape as
// tokenizer.LexError.
type StructureError struct {
	Msg string
	Tag string
}

func (e *StructureError) Error() string {
	if e.Tag == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Tag)
}

func (e *StructureError) Is(target error) bool {
	var se *StructureError
	if errors.As(target, &se) {
		return e.Msg == se.Msg
	}
	return false
}

// ErrClosingTagMissing is the canonical message for an unclosed element
// still on the stack when the document ends, in strict mode.
var ErrClosingTagMissing = &StructureError{Msg: "Closing tag is missing"}
