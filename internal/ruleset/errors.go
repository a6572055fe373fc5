package ruleset

import (
	"errors"
	"fmt"
)

// Error is a decode or validation problem located in a rule set file.
type Error struct {
	Path    string
	Line    int // 1-based, 0 если неизвестна
	Column  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Problems flattens err (possibly an errors.Join of several) into the
// located problems it carries. Errors without location are wrapped with
// Line 0.
func Problems(err error) []*Error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*Error
		for _, e := range joined.Unwrap() {
			out = append(out, Problems(e)...)
		}
		return out
	}
	var re *Error
	if errors.As(err, &re) {
		return []*Error{re}
	}
	return []*Error{{Message: err.Error(), Cause: err}}
}
