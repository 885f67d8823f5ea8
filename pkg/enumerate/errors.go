package enumerate

import (
	"errors"
	"fmt"
)

var (
	// ErrInputTooLong is returned for inputs longer than MaxInputLen bytes.
	ErrInputTooLong = errors.New("input is too long")
	// ErrPrefixBudgetTooLarge is returned for a prefix budget outside 0..MaxPrefixLen.
	ErrPrefixBudgetTooLarge = errors.New("prefix budget is too large")
	// ErrTooManyMatches is returned when the search would exceed the match ceiling.
	ErrTooManyMatches = errors.New("too many matches")
)

// InputError carries the length of a rejected input.
//
// The sentinel can be tested with errors.Is.
type InputError struct {
	Len int
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v: %d bytes (max %d)", e.Err, e.Len, MaxInputLen)
}

func (e *InputError) Unwrap() error { return e.Err }

// PrefixError carries a rejected prefix budget.
type PrefixError struct {
	PrefixLen int
	Err       error
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("%v: %d (allowed 0..%d)", e.Err, e.PrefixLen, MaxPrefixLen)
}

func (e *PrefixError) Unwrap() error { return e.Err }

// TooManyMatchesError reports the ceiling that was hit.
type TooManyMatchesError struct {
	Limit int
	Err   error
}

func (e *TooManyMatchesError) Error() string {
	return fmt.Sprintf("%v: more than %d words matched", e.Err, e.Limit)
}

func (e *TooManyMatchesError) Unwrap() error { return e.Err }
