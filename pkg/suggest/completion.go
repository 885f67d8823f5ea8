package suggest

import (
	"sort"

	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/lexicon"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Suggestion is one completion of a prefix.
type Suggestion struct {
	Word string
	ID   int
}

// Completer looks up lexicon words by prefix.
// It is read-only after construction and safe for concurrent use.
type Completer struct {
	trie       *patricia.Trie
	totalWords int
	maxLen     int
}

var _ ICompleter = (*Completer)(nil)

// NewCompleter indexes every word of lex by its id.
func NewCompleter(lex *lexicon.Lexicon) *Completer {
	c := &Completer{trie: patricia.NewTrie()}
	for id, word := range lex.Words() {
		c.trie.Insert(patricia.Prefix(word), id)
		c.totalWords++
		if len(word) > c.maxLen {
			c.maxLen = len(word)
		}
	}
	log.Debugf("Completer indexed %s words", utils.FormatWithCommas(c.totalWords))
	return c
}

// Complete returns words starting with prefix ordered by id, at most limit
// of them when limit > 0. Letters that are upper case in prefix are upper
// case in the returned words as well.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if len(prefix) > c.maxLen {
		return []Suggestion{}
	}

	lowerPrefix := make([]byte, len(prefix))
	capitalPositions := make([]bool, len(prefix))
	for i := 0; i < len(prefix); i++ {
		lowerPrefix[i] = utils.ToLower(prefix[i])
		capitalPositions[i] = utils.IsUpper(prefix[i])
	}

	suggestions := []Suggestion{}
	err := c.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		id, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type: %T for word %s", item, p)
			return nil
		}
		suggestions = append(suggestions, Suggestion{Word: string(p), ID: id})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].ID < suggestions[j].ID
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	for i := range suggestions {
		suggestions[i].Word = ApplyCapitalization(suggestions[i].Word, capitalPositions)
	}
	return suggestions
}

// Stats returns statistics about the indexed words.
func (c *Completer) Stats() map[string]int {
	return map[string]int{
		"totalWords":    c.totalWords,
		"maxWordLength": c.maxLen,
	}
}

// ApplyCapitalization upper-cases the letters of word at the marked positions.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}
	buf := []byte(word)
	for i := 0; i < len(buf) && i < len(capitalPositions); i++ {
		if capitalPositions[i] {
			buf[i] = utils.ToUpper(buf[i])
		}
	}
	return string(buf)
}
