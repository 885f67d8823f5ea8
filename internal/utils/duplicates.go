package utils

// WordFilter drops words that were already seen.
type WordFilter struct {
	seenWords map[string]struct{}
}

// NewWordFilter creates a new filter sized for roughly n words
func NewWordFilter(n int) *WordFilter {
	return &WordFilter{seenWords: make(map[string]struct{}, n)}
}

// ShouldInclude returns true the first time a word is offered and false afterwards.
func (f *WordFilter) ShouldInclude(word string) bool {
	if _, ok := f.seenWords[word]; ok {
		return false
	}
	f.seenWords[word] = struct{}{}
	return true
}

// Len returns the number of distinct words seen so far.
func (f *WordFilter) Len() int {
	return len(f.seenWords)
}
