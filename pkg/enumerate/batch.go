package enumerate

import (
	"context"
	"runtime"

	"github.com/bastiangx/goodname/pkg/lexicon"
	"golang.org/x/sync/errgroup"
)

// Query is one input of a batch.
type Query struct {
	Text      string
	PrefixLen int
}

// Result holds the sorted matches of one query, or the error it failed with.
// Enumerator is the one that produced Matches and formats them.
type Result struct {
	Query      Query
	Enumerator *Enumerator
	Matches    []Match
	Err        error
}

// Batch enumerates queries concurrently over a shared lexicon. Results keep
// the order of queries. Per-query failures are reported in Result.Err; the
// returned error is only set when ctx is done before every query ran.
// workers <= 0 uses GOMAXPROCS. opts apply to every query.
func Batch(ctx context.Context, lex *lexicon.Lexicon, queries []Query, workers int, opts ...Option) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Query = q
			e, err := New(lex, q.Text, append([]Option{WithPrefixLen(q.PrefixLen)}, opts...)...)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Enumerator = e
			results[i].Matches, results[i].Err = e.AllSubsequencesSorted()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
