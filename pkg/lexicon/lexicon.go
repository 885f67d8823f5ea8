// Package lexicon pairs a word list with the trie built over it.
package lexicon

import (
	"errors"
	"fmt"

	"github.com/bastiangx/goodname/pkg/trie"
)

// ErrTrieMismatch is returned by NewWithTrie when the trie was not built
// from the given words.
var ErrTrieMismatch = errors.New("trie does not match word list")

// Lexicon is an immutable word list indexed by word id.
// It is safe to share between goroutines.
type Lexicon struct {
	words []string
	trie  *trie.Trie
}

// New builds a lexicon from words, which must be sorted, unique,
// non-empty, lowercase ASCII. Trie validation errors are returned as is.
func New(words []string) (*Lexicon, error) {
	owned := make([]string, len(words))
	copy(owned, words)

	t, err := trie.Build(owned)
	if err != nil {
		return nil, err
	}
	return &Lexicon{words: owned, trie: t}, nil
}

// NewWithTrie pairs words with a trie built from them earlier, for example
// one read back from disk. Every word must map to its own index and the
// trie must hold no other word.
func NewWithTrie(words []string, t *trie.Trie) (*Lexicon, error) {
	if len(words) == 0 {
		return nil, trie.ErrEmptyWordList
	}
	owned := make([]string, len(words))
	copy(owned, words)
	for i, w := range owned {
		if id, ok := t.Lookup(w); !ok || id != i {
			return nil, fmt.Errorf("%w: word %d %q", ErrTrieMismatch, i, w)
		}
	}

	terminals, badID := 0, -1
	t.Terminals(func(id int) bool {
		terminals++
		if id >= len(owned) {
			badID = id
			return false
		}
		return terminals <= len(owned)
	})
	if badID >= 0 {
		return nil, fmt.Errorf("%w: id %d outside 0..%d", ErrTrieMismatch, badID, len(owned)-1)
	}
	if terminals != len(owned) {
		return nil, fmt.Errorf("%w: trie holds more than %d words", ErrTrieMismatch, len(owned))
	}
	return &Lexicon{words: owned, trie: t}, nil
}

// Word returns the word with the given id.
func (l *Lexicon) Word(id int) string {
	return l.words[id]
}

// Trie returns the underlying trie.
func (l *Lexicon) Trie() *trie.Trie {
	return l.trie
}

// Len returns the number of words.
func (l *Lexicon) Len() int {
	return len(l.words)
}

// Words returns a copy of the word list in id order.
func (l *Lexicon) Words() []string {
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}

// ID returns the id of word, if it is in the lexicon.
func (l *Lexicon) ID(word string) (int, bool) {
	return l.trie.Lookup(word)
}
