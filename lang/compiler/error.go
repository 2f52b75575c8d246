package compiler

import "fmt"

// Error is the compiler's single flat error kind (spec.md §4.6/§7): every
// semantic error raised during the type walk or emission carries only a
// human-readable message, never a structured diagnostic tree or source
// position (source-location diagnostics are an explicit Non-goal, spec.md
// §1).
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
