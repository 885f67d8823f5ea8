package trie

import (
	"errors"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walk(t *testing.T, tr *Trie, word string) uint32 {
	t.Helper()
	node := tr.Root()
	for i := 0; i < len(word); i++ {
		var ok bool
		node, ok = tr.Child(node, word[i])
		require.Truef(t, ok, "missing edge %q at depth %d of %q", word[i], i, word)
	}
	return node
}

func TestToyWords(t *testing.T) {
	words := []string{"aa", "abaab", "abb", "bab", "bb", "bbb"}
	tr, err := Build(words)
	require.NoError(t, err)

	for i, w := range words {
		id, ok := tr.Value(walk(t, tr, w))
		require.True(t, ok, w)
		assert.Equal(t, i, id, w)
	}
}

func TestPrefixWords(t *testing.T) {
	words := []string{"a", "ab", "aba", "ac", "acb", "acc", "ad", "ba", "bb", "bc", "c", "caa"}
	tr, err := Build(words)
	require.NoError(t, err)

	for i, w := range words {
		id, ok := tr.Lookup(w)
		require.True(t, ok, w)
		assert.Equal(t, i, id, w)
	}

	// inner nodes that are not words
	for _, w := range []string{"ca", "b"} {
		_, ok := tr.Lookup(w)
		assert.False(t, ok, w)
	}
	_, ok := tr.Value(tr.Root())
	assert.False(t, ok, "root is never terminal")
}

func TestNoFalseEdges(t *testing.T) {
	words := []string{"ab", "abc", "b", "bad", "cab", "dab", "dd"}
	tr, err := Build(words)
	require.NoError(t, err)

	set := make(map[string]int, len(words))
	for i, w := range words {
		set[w] = i
	}

	// every string up to length 3 over a..d agrees with the word set
	alphabet := "abcd"
	var check func(prefix string)
	check = func(prefix string) {
		if len(prefix) > 0 {
			id, ok := tr.Lookup(prefix)
			want, exists := set[prefix]
			require.Equal(t, exists, ok, prefix)
			if exists {
				assert.Equal(t, want, id, prefix)
			}
		}
		if len(prefix) == 3 {
			return
		}
		for i := 0; i < len(alphabet); i++ {
			check(prefix + alphabet[i:i+1])
		}
	}
	check("")

	// bytes outside the alphabet never resolve
	for _, c := range []byte{0, 'z', '~', 0x7F} {
		_, ok := tr.Child(tr.Root(), c)
		assert.False(t, ok, "byte %#x", c)
	}
}

func randomWords(n int, seed uint64) []string {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	seen := make(map[string]struct{}, n)
	for len(seen) < n {
		buf := make([]byte, 1+r.IntN(12))
		for i := range buf {
			buf[i] = byte('a' + r.IntN(26))
		}
		seen[string(buf)] = struct{}{}
	}
	words := make([]string, 0, n)
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func TestManyBlocks(t *testing.T) {
	words := randomWords(20000, 42)
	tr, err := Build(words)
	require.NoError(t, err)
	require.Greater(t, tr.NumUnits(), numExtras, "expected the free-list window to slide")
	assert.Zero(t, tr.NumUnits()%blockSize)

	for i, w := range words {
		id, ok := tr.Lookup(w)
		require.True(t, ok, w)
		require.Equal(t, i, id, w)
	}

	// words with a trailing letter appended are only found if listed
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	for _, w := range words[:2000] {
		probe := w + "q"
		_, want := set[probe]
		_, ok := tr.Lookup(probe)
		assert.Equal(t, want, ok, probe)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		err   error
		index int
	}{
		{"empty list", []string{}, ErrEmptyWordList, -1},
		{"nil list", nil, ErrEmptyWordList, -1},
		{"empty word", []string{"", "a"}, ErrEmptyWord, 0},
		{"unsorted", []string{"a", "c", "b"}, ErrUnsortedOrDuplicateWords, 2},
		{"duplicate", []string{"a", "b", "b"}, ErrUnsortedOrDuplicateWords, 2},
		{"uppercase", []string{"a", "B", "c"}, ErrUppercaseByteInWord, 1},
		{"non ascii", []string{"a", "caf\xc3\xa9"}, ErrNonASCIIByte, 1},
		{"high byte", []string{"\x80"}, ErrNonASCIIByte, 0},
		{"nul byte", []string{"a\x00b"}, ErrNulByteInWord, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := Build(tc.words)
			require.Error(t, err)
			assert.Nil(t, tr)
			assert.ErrorIs(t, err, tc.err)

			var wordErr *WordError
			if tc.index < 0 {
				assert.False(t, errors.As(err, &wordErr))
				return
			}
			require.True(t, errors.As(err, &wordErr))
			assert.Equal(t, tc.index, wordErr.Index)
		})
	}
}

func TestTerminals(t *testing.T) {
	words := []string{"a", "ab", "aba", "ac", "b", "bca"}
	tr, err := Build(words)
	require.NoError(t, err)

	var ids []int
	tr.Terminals(func(id int) bool {
		ids = append(ids, id)
		return true
	})
	sort.Ints(ids)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, ids)

	calls := 0
	tr.Terminals(func(int) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)

	(&Trie{}).Terminals(func(int) bool {
		t.Fatal("empty trie has no terminals")
		return false
	})
}

func TestFromRecords(t *testing.T) {
	records := []Record{{"ab", 7}, {"abc", 7}, {"b", 0}, {"bad", MaxValue}}
	tr, err := FromRecords(records)
	require.NoError(t, err)
	for _, r := range records {
		id, ok := tr.Lookup(r.Word)
		require.True(t, ok, r.Word)
		assert.Equal(t, r.ID, id, r.Word)
	}

	_, err = FromRecords([]Record{{"a", 0}, {"b", -1}})
	var wordErr *WordError
	require.ErrorAs(t, err, &wordErr)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, 1, wordErr.Index)

	_, err = FromRecords([]Record{{"b", 0}, {"a", 1}})
	assert.ErrorIs(t, err, ErrUnsortedOrDuplicateWords)

	_, err = FromRecords(nil)
	assert.ErrorIs(t, err, ErrEmptyWordList)
}

func TestASCIIPunctuationAllowed(t *testing.T) {
	words := []string{"a-b", "a.b", "a b", "x_y"}
	sort.Strings(words)
	tr, err := Build(words)
	require.NoError(t, err)
	for i, w := range words {
		id, ok := tr.Lookup(w)
		require.True(t, ok, w)
		assert.Equal(t, i, id)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	words := randomWords(500, 7)
	tr, err := Build(words)
	require.NoError(t, err)

	data, err := tr.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, tr.SizeInBytes())

	var restored Trie
	require.NoError(t, restored.UnmarshalBinary(data))
	for i, w := range words {
		id, ok := restored.Lookup(w)
		require.True(t, ok, w)
		assert.Equal(t, i, id)
	}

	assert.ErrorIs(t, new(Trie).UnmarshalBinary(data[:len(data)-1]), ErrCorruptData)
	assert.ErrorIs(t, new(Trie).UnmarshalBinary(nil), ErrCorruptData)
}

func TestQueriesOnCorruptData(t *testing.T) {
	// arbitrary units must never make queries panic
	var tr Trie
	require.NoError(t, tr.UnmarshalBinary([]byte{0xff, 0xff, 0xff, 0xff, 0x00, 0x01, 0x00, 0x00}))
	assert.NotPanics(t, func() {
		for c := 0; c < 256; c++ {
			tr.Child(0, byte(c))
			tr.Child(1, byte(c))
		}
		tr.Value(0)
		tr.Value(1)
		tr.Value(99)
		tr.Lookup("abc")
	})
}

func BenchmarkBuild(b *testing.B) {
	words := randomWords(20000, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(words); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLookup(b *testing.B) {
	words := randomWords(20000, 1)
	tr, err := Build(words)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Lookup(words[i%len(words)])
	}
}
