package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a plan identifier has no backing document.
	ErrNotFound = errors.New("plan not found")

	// ErrParse indicates a plan document does not have the expected shape.
	ErrParse = errors.New("malformed plan document")

	// ErrIO indicates a read or write failure at the storage boundary.
	ErrIO = errors.New("plan storage failure")

	// ErrPlanExists indicates a plan would be created over an existing one.
	ErrPlanExists = errors.New("plan already exists")

	// ErrInvalidPlanID indicates an identifier that cannot name a plan.
	ErrInvalidPlanID = errors.New("invalid plan identifier")

	// ErrNoPlan indicates an edit was persisted while no plan is open.
	ErrNoPlan = errors.New("no plan open")

	// ErrInvalidText indicates task text that cannot be stored unchanged.
	ErrInvalidText = errors.New("task text is not valid XML character data")
)

// ParseError describes a malformed document. Line and Column are 1-based
// and zero when the position is unknown.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d: %v", ErrParse, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// IOError wraps a filesystem or database failure with the operation and the
// storage location involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
