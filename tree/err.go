package tree

import (
	"errors"
	"fmt"
	"strings"
)

// BuildError wraps a Handler.OnError error (a *tokenizer.LexError or
// *parser.StructureError) with the element path open at the time it
// fired, e.g. "html/body/div: Closing tag is missing: div".
type BuildError struct {
	Path string
	Err  error
}

func (e *BuildError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Err.Error())
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func (e *BuildError) Is(target error) bool {
	var be *BuildError
	if errors.As(target, &be) {
		return e.Path == be.Path && errors.Is(e.Err, be.Err)
	}
	return false
}

// buildErrorPath renders the open-element stack as a "/"-joined path,
// innermost last, e.g. "html/body/div".
func buildErrorPath(stack []*Node) string {
	names := make([]string, len(stack))
	for i, n := range stack {
		names[i] = n.Data
	}
	return strings.Join(names, "/")
}
