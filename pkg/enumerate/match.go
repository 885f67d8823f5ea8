package enumerate

import (
	"math/bits"
	"sort"
)

// Positions is a set of input byte positions, one bit per byte of an
// input of at most MaxInputLen bytes.
type Positions [MaxInputLen / 64]uint64

// With returns a copy of p with position i added.
func (p Positions) With(i int) Positions {
	p[i>>6] |= 1 << (uint(i) & 63)
	return p
}

// Has reports whether position i is in the set.
func (p Positions) Has(i int) bool {
	if i < 0 || i >= MaxInputLen {
		return false
	}
	return p[i>>6]&(1<<(uint(i)&63)) != 0
}

// Len returns the number of positions in the set.
func (p Positions) Len() int {
	n := 0
	for _, w := range p {
		n += bits.OnesCount64(w)
	}
	return n
}

// List returns the positions in ascending order.
func (p Positions) List() []int {
	out := make([]int, 0, p.Len())
	for wi, w := range p {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			out = append(out, wi*64+tz)
			w &= w - 1
		}
	}
	return out
}

// Match is one dictionary word found as a subsequence of the input.
type Match struct {
	WordID    int
	Score     uint64
	Positions Positions // input bytes consumed by the match
	Prefix    string    // letters prepended before the first consumed byte
}

// SortMatches orders matches by descending score, then ascending word id.
func SortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].WordID < matches[j].WordID
	})
}

// TopK returns at most k leading matches; k <= 0 returns all of them.
func TopK(matches []Match, k int) []Match {
	if k <= 0 || k >= len(matches) {
		return matches
	}
	return matches[:k]
}
