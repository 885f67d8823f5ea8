package lexicon

import (
	"testing"

	"github.com/bastiangx/goodname/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicon(t *testing.T) {
	words := []string{"aa", "abaab", "abb", "bab", "bb", "bbb"}
	lex, err := New(words)
	require.NoError(t, err)

	assert.Equal(t, len(words), lex.Len())
	for i, w := range words {
		assert.Equal(t, w, lex.Word(i))
		id, ok := lex.ID(w)
		require.True(t, ok)
		assert.Equal(t, i, id)
	}

	_, ok := lex.ID("ab")
	assert.False(t, ok)
}

func TestLexiconOwnsWords(t *testing.T) {
	words := []string{"a", "b"}
	lex, err := New(words)
	require.NoError(t, err)

	words[0] = "zzz"
	assert.Equal(t, "a", lex.Word(0))

	out := lex.Words()
	out[1] = "zzz"
	assert.Equal(t, "b", lex.Word(1))
}

func TestLexiconPropagatesTrieErrors(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, trie.ErrEmptyWordList)

	_, err = New([]string{"b", "a"})
	assert.ErrorIs(t, err, trie.ErrUnsortedOrDuplicateWords)

	_, err = New([]string{"Abc"})
	assert.ErrorIs(t, err, trie.ErrUppercaseByteInWord)
}

func TestNewWithTrie(t *testing.T) {
	words := []string{"ab", "abc", "b"}
	tr, err := trie.Build(words)
	require.NoError(t, err)

	lex, err := NewWithTrie(words, tr)
	require.NoError(t, err)
	assert.Equal(t, 3, lex.Len())
	assert.Same(t, tr, lex.Trie())

	_, err = NewWithTrie([]string{"ab", "b", "abc"}, tr)
	assert.ErrorIs(t, err, ErrTrieMismatch)

	_, err = NewWithTrie([]string{"ab", "abc", "c"}, tr)
	assert.ErrorIs(t, err, ErrTrieMismatch)

	_, err = NewWithTrie(nil, tr)
	assert.ErrorIs(t, err, trie.ErrEmptyWordList)
}

func TestNewWithTrieRejectsExtraWords(t *testing.T) {
	tr, err := trie.Build([]string{"a", "b", "c"})
	require.NoError(t, err)

	_, err = NewWithTrie([]string{"a", "b"}, tr)
	assert.ErrorIs(t, err, ErrTrieMismatch)

	// same size, every listed word in place, one extra terminal in between
	tr, err = trie.FromRecords([]trie.Record{{Word: "a", ID: 0}, {Word: "ab", ID: 1}, {Word: "b", ID: 1}})
	require.NoError(t, err)
	_, err = NewWithTrie([]string{"a", "b"}, tr)
	assert.ErrorIs(t, err, ErrTrieMismatch)
}
