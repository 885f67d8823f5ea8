//go:build test

package enumerate

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/bastiangx/goodname/pkg/lexicon"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var memTexts = []string{
	"abAaB",
	"Character wise Double array Dictionary",
	"the quick brown fox",
	"Go Word Finder",
	"a b c d e f g",
}

func memLexicon(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	words := make([]string, 0, 26*26*26)
	for x := 'a'; x <= 'z'; x++ {
		for y := 'a'; y <= 'z'; y++ {
			for z := 'a'; z <= 'z'; z++ {
				words = append(words, string([]rune{x, y, z}))
			}
		}
	}
	lex, err := lexicon.New(words)
	if err != nil {
		t.Fatalf("lexicon build failed: %v", err)
	}
	return lex
}

type memSnapshot struct {
	alloc      int64
	goroutines int
}

func snapshot() memSnapshot {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return memSnapshot{alloc: int64(m.Alloc), goroutines: runtime.NumGoroutine()}
}

func checkRetention(t *testing.T, baseline memSnapshot, ops int) {
	t.Helper()
	final := snapshot()
	memDelta := final.alloc - baseline.alloc
	goroutineDelta := final.goroutines - baseline.goroutines
	memPerOp := float64(memDelta) / float64(ops)

	t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d", ops, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive retained memory per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func TestMemoryRetentionSequential(t *testing.T) {
	lex := memLexicon(t)
	for _, iterations := range []int{100, 500} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			baseline := snapshot()
			for i := 0; i < iterations; i++ {
				for _, text := range memTexts {
					e, err := New(lex, text, WithPrefixLen(i%2))
					if err != nil {
						t.Fatal(err)
					}
					if _, err := e.AllSubsequencesSorted(); err != nil {
						t.Fatal(err)
					}
				}
			}
			checkRetention(t, baseline, iterations*len(memTexts))
		})
	}
}

func TestMemoryRetentionConcurrent(t *testing.T) {
	lex := memLexicon(t)
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 2, iterationsPerWorker: 200},
		{workers: 8, iterationsPerWorker: 50},
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", cfg.workers, cfg.iterationsPerWorker), func(t *testing.T) {
			baseline := snapshot()
			var wg sync.WaitGroup
			for w := 0; w < cfg.workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < cfg.iterationsPerWorker; i++ {
						for _, text := range memTexts {
							e, err := New(lex, text)
							if err != nil {
								t.Error(err)
								return
							}
							if _, err := e.AllSubsequences(); err != nil {
								t.Error(err)
								return
							}
						}
					}
				}()
			}
			wg.Wait()
			checkRetention(t, baseline, cfg.workers*cfg.iterationsPerWorker*len(memTexts))
		})
	}
}

func TestBatchDoesNotLeakGoroutines(t *testing.T) {
	lex := memLexicon(t)
	queries := make([]Query, 0, 4*len(memTexts))
	for p := 0; p <= MaxPrefixLen; p++ {
		for _, text := range memTexts {
			queries = append(queries, Query{Text: text, PrefixLen: p})
		}
	}

	baseline := snapshot()
	rounds := 20
	for i := 0; i < rounds; i++ {
		if _, err := Batch(context.Background(), lex, queries, 4); err != nil {
			t.Fatal(err)
		}
	}
	checkRetention(t, baseline, rounds*len(queries))
}
