package trie

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWordList is returned when there is nothing to build from.
	ErrEmptyWordList = errors.New("word list is empty")
	// ErrEmptyWord is returned for a zero-length word.
	ErrEmptyWord = errors.New("word is empty")
	// ErrUnsortedOrDuplicateWords is returned when words are not in strictly ascending order.
	ErrUnsortedOrDuplicateWords = errors.New("words are unsorted or duplicated")
	// ErrNonASCIIByte is returned for any byte >= 0x80.
	ErrNonASCIIByte = errors.New("word contains a non-ASCII byte")
	// ErrUppercaseByteInWord is returned for any byte in 'A'..'Z'.
	ErrUppercaseByteInWord = errors.New("word contains an uppercase letter")
	// ErrNulByteInWord is returned for a 0x00 byte, which is the terminal label.
	ErrNulByteInWord = errors.New("word contains a NUL byte")
	// ErrTooLarge is returned when the word list exceeds what the unit layout can address.
	ErrTooLarge = errors.New("word list is too large for the double array")
	// ErrCorruptData is returned when decoding a malformed unit array.
	ErrCorruptData = errors.New("corrupt trie data")
)

// WordError reports which word failed validation.
type WordError struct {
	Index int
	Word  string
	Err   error
}

func (e *WordError) Error() string {
	return fmt.Sprintf("word %d (%q): %v", e.Index, e.Word, e.Err)
}

func (e *WordError) Unwrap() error { return e.Err }
