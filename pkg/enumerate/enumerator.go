/*
Package enumerate finds every lexicon word that is a subsequence of an input
description and ranks the matches.

Uppercase letters in the input are anchors: a match has to consume them.
Every other byte may be skipped. Each consumed byte adds a weight that favours
the first letters of the space separated source words:

	"ab abc a" -> 4 2 0 4 2 1 0 4

Optionally up to MaxPrefixLen letters may be prepended to a match before the
input is consumed. They carry no score and are shown upper-cased by Format.

	lex, _ := lexicon.New([]string{"aa", "abaab", "abb", "bab", "bb", "bbb"})
	e, _ := enumerate.New(lex, "abAaB")
	matches, _ := e.AllSubsequencesSorted()
	word, desc := e.Format(matches[0]) // "abaab", "ABAAB"

A Lexicon may be shared by any number of concurrent enumerators.
*/
package enumerate

import (
	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/lexicon"
	"github.com/charmbracelet/log"
)

const (
	// MaxInputLen is the longest input, bounded by the width of Positions.
	MaxInputLen = 128
	// MaxPrefixLen bounds the number of unscored leading letters.
	MaxPrefixLen = 3
	// MaxMatches is the default ceiling on distinct matched words.
	MaxMatches = 10000

	delimiter = ' '

	// weights are capped so that a full input cannot overflow a uint64 score
	maxWeightShift = 56
)

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithPrefixLen allows up to n unscored letters in front of each match.
func WithPrefixLen(n int) Option {
	return func(e *Enumerator) {
		e.prefixLen = n
	}
}

// WithMaxMatches lowers the match ceiling; values outside 1..MaxMatches keep the default.
func WithMaxMatches(n int) Option {
	return func(e *Enumerator) {
		if n > 0 && n <= MaxMatches {
			e.maxMatches = n
		}
	}
}

// Enumerator runs subsequence searches of one input over a lexicon.
type Enumerator struct {
	lex        *lexicon.Lexicon
	text       string
	scores     []uint64
	prefixLen  int
	maxMatches int
}

// New validates text and the options and precomputes the position weights.
func New(lex *lexicon.Lexicon, text string, opts ...Option) (*Enumerator, error) {
	e := &Enumerator{
		lex:        lex,
		text:       text,
		maxMatches: MaxMatches,
	}
	for _, opt := range opts {
		opt(e)
	}

	if len(text) > MaxInputLen {
		return nil, &InputError{Len: len(text), Err: ErrInputTooLong}
	}
	if e.prefixLen < 0 || e.prefixLen > MaxPrefixLen {
		return nil, &PrefixError{PrefixLen: e.prefixLen, Err: ErrPrefixBudgetTooLarge}
	}
	e.scores = buildScores(text)
	return e, nil
}

// Text returns the input description.
func (e *Enumerator) Text() string {
	return e.text
}

// PrefixLen returns the prefix budget.
func (e *Enumerator) PrefixLen() int {
	return e.prefixLen
}

// Lexicon returns the lexicon searched by e.
func (e *Enumerator) Lexicon() *lexicon.Lexicon {
	return e.lex
}

// buildScores assigns 2^(L-1) .. 2^0 to the bytes of each source word of
// length L and 0 to delimiters.
func buildScores(text string) []uint64 {
	scores := make([]uint64, len(text))
	for start := 0; start < len(text); {
		if text[start] == delimiter {
			start++
			continue
		}
		end := start
		for end < len(text) && text[end] != delimiter {
			end++
		}
		for i := start; i < end; i++ {
			shift := end - 1 - i
			if shift > maxWeightShift {
				shift = maxWeightShift
			}
			scores[i] = 1 << uint(shift)
		}
		start = end
	}
	return scores
}

type state struct {
	node      uint32
	pos       int
	score     uint64
	positions Positions
	prefix    string
	// only states that have not touched the input may grow the prefix
	prefixPhase bool
}

// AllSubsequences returns one match per matched word, in no particular order.
//
// The search is exhaustive. Among variants of the same word the highest
// score wins; on ties the first variant found is kept, where variants that
// consume earlier bytes and use shorter prefixes are found first.
func (e *Enumerator) AllSubsequences() ([]Match, error) {
	t := e.lex.Trie()
	matched := make(map[int]*Match)

	stack := make([]state, 0, 2*len(e.text)+26*e.prefixLen+1)
	stack = append(stack, state{node: t.Root(), prefixPhase: e.prefixLen > 0})

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.pos == len(e.text) {
			if id, ok := t.Value(s.node); ok {
				if m, seen := matched[id]; !seen {
					matched[id] = &Match{WordID: id, Score: s.score, Positions: s.positions, Prefix: s.prefix}
					if len(matched) > e.maxMatches {
						log.Debugf("Aborting enumeration of %q: more than %d matches", e.text, e.maxMatches)
						return nil, &TooManyMatchesError{Limit: e.maxMatches, Err: ErrTooManyMatches}
					}
				} else if s.score > m.Score {
					m.Score, m.Positions, m.Prefix = s.score, s.positions, s.prefix
				}
			}
		}

		// Pushed in reverse visiting order: prefix letters, skip, consume.
		if s.prefixPhase && len(s.prefix) < e.prefixLen {
			for c := byte('z'); c >= 'a'; c-- {
				if child, ok := t.Child(s.node, c); ok {
					stack = append(stack, state{
						node:        child,
						pos:         s.pos,
						score:       s.score,
						positions:   s.positions,
						prefix:      s.prefix + string(c),
						prefixPhase: true,
					})
				}
			}
		}
		if s.pos == len(e.text) {
			continue
		}

		c := e.text[s.pos]
		if !utils.IsUpper(c) {
			stack = append(stack, state{
				node:      s.node,
				pos:       s.pos + 1,
				score:     s.score,
				positions: s.positions,
				prefix:    s.prefix,
			})
		}
		if child, ok := t.Child(s.node, utils.ToLower(c)); ok {
			stack = append(stack, state{
				node:      child,
				pos:       s.pos + 1,
				score:     s.score + e.scores[s.pos],
				positions: s.positions.With(s.pos),
				prefix:    s.prefix,
			})
		}
	}

	matches := make([]Match, 0, len(matched))
	for _, m := range matched {
		matches = append(matches, *m)
	}
	log.Debugf("Enumerated %d matches for %q (prefix=%d)", len(matches), e.text, e.prefixLen)
	return matches, nil
}

// AllSubsequencesSorted is AllSubsequences ordered by descending score,
// ties broken by ascending word id.
func (e *Enumerator) AllSubsequencesSorted() ([]Match, error) {
	matches, err := e.AllSubsequences()
	if err != nil {
		return nil, err
	}
	SortMatches(matches)
	return matches, nil
}

// Format returns the matched word with its prefix letters upper-cased and
// the input with every consumed byte upper-cased.
func (e *Enumerator) Format(m Match) (word, desc string) {
	w := []byte(e.lex.Word(m.WordID))
	for i := 0; i < len(m.Prefix) && i < len(w); i++ {
		w[i] = utils.ToUpper(w[i])
	}
	d := []byte(e.text)
	for i := range d {
		if m.Positions.Has(i) {
			d[i] = utils.ToUpper(d[i])
		}
	}
	return string(w), string(d)
}
