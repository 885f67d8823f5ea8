package suggest

import (
	"sync"
	"testing"

	"github.com/bastiangx/goodname/pkg/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompleter(t *testing.T) *Completer {
	t.Helper()
	lex, err := lexicon.New([]string{"car", "card", "care", "cart", "cat", "dog"})
	require.NoError(t, err)
	return NewCompleter(lex)
}

func words(ss []Suggestion) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Word
	}
	return out
}

func TestComplete(t *testing.T) {
	c := newCompleter(t)

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"car", 0, []string{"car", "card", "care", "cart"}},
		{"car", 2, []string{"car", "card"}},
		{"ca", 0, []string{"car", "card", "care", "cart", "cat"}},
		{"", 0, []string{"car", "card", "care", "cart", "cat", "dog"}},
		{"Ca", 1, []string{"Car"}},
		{"cX", 0, []string{}},
		{"dogs", 0, []string{}},
		{"cartography", 0, []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.prefix, func(t *testing.T) {
			assert.Equal(t, tc.want, words(c.Complete(tc.prefix, tc.limit)))
		})
	}
}

func TestCompleteOrderedByID(t *testing.T) {
	c := newCompleter(t)
	got := c.Complete("c", 0)
	for i, s := range got {
		assert.Equal(t, i, s.ID)
	}
}

func TestCompleteConcurrent(t *testing.T) {
	c := newCompleter(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, c.Complete("car", 0), 4)
		}()
	}
	wg.Wait()
}

func TestStats(t *testing.T) {
	stats := newCompleter(t).Stats()
	assert.Equal(t, 6, stats["totalWords"])
	assert.Equal(t, 4, stats["maxWordLength"])
}

func TestApplyCapitalization(t *testing.T) {
	assert.Equal(t, "CaR", ApplyCapitalization("car", []bool{true, false, true}))
	assert.Equal(t, "Cart", ApplyCapitalization("cart", []bool{true}))
	assert.Equal(t, "car", ApplyCapitalization("car", nil))
}
