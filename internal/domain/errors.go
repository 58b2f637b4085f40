package domain

import (
	"errors"
	"fmt"
)

// Input errors. Missing input and bad data abort the run; empty optional
// tables only degrade the derived results.
var (
	ErrMissingInput = errors.New("missing input")
	ErrDataFormat   = errors.New("data format error")
	ErrEmptyData    = errors.New("empty data")
)

// MissingInputError reports a required table that is absent or has no rows.
type MissingInputError struct {
	Table string
	Path  string
	Err   error
}

func (e *MissingInputError) Error() string {
	msg := fmt.Sprintf("%s table is required but %s is missing or empty", e.Table, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingInputError) Is(target error) bool { return target == ErrMissingInput }

func (e *MissingInputError) Unwrap() error { return e.Err }

// DataFormatError reports a cell that could not be parsed or a required
// column that is absent. Row is the 1-based line number in the source file,
// 0 when the problem is in the header.
type DataFormatError struct {
	Table  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: missing required column %q", e.Table, e.Column)
	}
	msg := fmt.Sprintf("%s row %d: invalid %s %q", e.Table, e.Row, e.Column, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataFormatError) Is(target error) bool { return target == ErrDataFormat }

func (e *DataFormatError) Unwrap() error { return e.Err }

// EmptyDataWarning reports an optional table that loaded with zero rows.
type EmptyDataWarning struct {
	Table string
	Path  string
}

func (e *EmptyDataWarning) Error() string {
	return fmt.Sprintf("%s table at %s has no rows", e.Table, e.Path)
}

func (e *EmptyDataWarning) Is(target error) bool { return target == ErrEmptyData }
