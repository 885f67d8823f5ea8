package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/config"
	"github.com/bastiangx/goodname/pkg/enumerate"
	"github.com/bastiangx/goodname/pkg/lexicon"
	"github.com/bastiangx/goodname/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/time/rate"
)

const (
	codeBadRequest  = 400
	codeRateLimited = 429
	codeInternal    = 500

	maxBatchQueries = 256
)

var (
	errNonASCIIInput  = errors.New("input must be ASCII")
	errTooManyQueries = fmt.Errorf("batch holds more than %d queries", maxBatchQueries)
	errRateLimited    = errors.New("rate limit exceeded")
)

// Server answers msgpack requests for one lexicon.
type Server struct {
	lex       *lexicon.Lexicon
	completer suggest.ICompleter
	cfg       *config.Config
	limiter   *rate.Limiter
	cache     *ResultCache

	encoder      *msgpack.Encoder
	writer       *bufio.Writer
	requestCount int
}

// NewServer creates a server over lex, configured by cfg.
func NewServer(lex *lexicon.Lexicon, completer suggest.ICompleter, cfg *config.Config) *Server {
	limit := rate.Inf
	if cfg.Server.RateLimit > 0 {
		limit = rate.Limit(cfg.Server.RateLimit)
	}
	return &Server{
		lex:       lex,
		completer: completer,
		cfg:       cfg,
		limiter:   rate.NewLimiter(limit, cfg.Server.Burst),
		cache:     NewResultCache(cfg.Server.CacheSize),
	}
}

// Start serves requests from stdin until it is closed or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads requests from r and writes responses to w until r is
// exhausted or ctx is done. It returns nil on a clean end of input.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	log.Debug("Starting Server.")
	s.writer = bufio.NewWriter(w)
	s.encoder = msgpack.NewEncoder(s.writer)
	decoder := msgpack.NewDecoder(bufio.NewReader(r))

	if err := s.sendResponse(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}
		s.requestCount++
		if err := s.handleRequest(ctx, raw); err != nil {
			return err
		}
	}
}

// handleRequest routes one message. Only write failures are returned.
func (s *Server) handleRequest(ctx context.Context, raw msgpack.RawMessage) error {
	var h header
	if err := msgpack.Unmarshal(raw, &h); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		return s.sendError(uuid.NewString(), "invalid msgpack request", codeBadRequest)
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	if !s.limiter.Allow() {
		log.Warnf("Request %s rejected: %v", h.ID, errRateLimited)
		return s.sendError(h.ID, errRateLimited.Error(), codeRateLimited)
	}

	switch h.Action {
	case "", ActionEnumerate:
		var req EnumerateRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			return s.sendError(h.ID, "invalid enumerate request: "+err.Error(), codeBadRequest)
		}
		req.ID = h.ID
		return s.handleEnumerate(req)
	case ActionLookup:
		var req LookupRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			return s.sendError(h.ID, "invalid lookup request: "+err.Error(), codeBadRequest)
		}
		req.ID = h.ID
		return s.handleLookup(req)
	case ActionBatch:
		var req BatchRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			return s.sendError(h.ID, "invalid batch request: "+err.Error(), codeBadRequest)
		}
		req.ID = h.ID
		return s.handleBatch(ctx, req)
	case ActionHealth:
		return s.sendResponse(StatusResponse{ID: h.ID, Status: "ok"})
	case ActionStats:
		return s.sendResponse(StatusResponse{ID: h.ID, Status: "ok", Stats: s.stats()})
	default:
		return s.sendError(h.ID, fmt.Sprintf("unknown action: %s", h.Action), codeBadRequest)
	}
}

func (s *Server) handleEnumerate(req EnumerateRequest) error {
	start := time.Now()

	if err := s.validateText(req.Text); err != nil {
		log.Debugf("Request %s rejected: %v", req.ID, err)
		return s.sendError(req.ID, err.Error(), codeBadRequest)
	}

	e, matches, err := s.enumerate(req.Text, req.PrefixLen)
	if err != nil {
		log.Debugf("Request %s failed: %v", req.ID, err)
		return s.sendError(req.ID, err.Error(), codeBadRequest)
	}

	resp := s.buildResponse(e, matches, s.limit(req.Limit))
	resp.ID = req.ID
	resp.TimeTaken = time.Since(start).Microseconds()
	log.Debugf("Request %s: %d of %d matches for %q in %dµs", req.ID, resp.Count, resp.Total, req.Text, resp.TimeTaken)
	return s.sendResponse(resp)
}

func cacheKey(text string, prefixLen int) string {
	return strconv.Itoa(prefixLen) + "\x00" + text
}

// enumerate returns the complete sorted matches of text, from the cache when possible.
func (s *Server) enumerate(text string, prefixLen int) (*enumerate.Enumerator, []enumerate.Match, error) {
	key := cacheKey(text, prefixLen)
	if e, matches, ok := s.cache.Get(key); ok {
		return e, matches, nil
	}

	e, err := enumerate.New(s.lex, text,
		enumerate.WithPrefixLen(prefixLen),
		enumerate.WithMaxMatches(s.cfg.Search.MaxMatches))
	if err != nil {
		return nil, nil, err
	}
	matches, err := e.AllSubsequencesSorted()
	if err != nil {
		return nil, nil, err
	}
	s.cache.Put(key, e, matches)
	return e, matches, nil
}

func (s *Server) handleLookup(req LookupRequest) error {
	start := time.Now()
	if len(req.Prefix) > s.cfg.Server.MaxInputLen {
		return s.sendError(req.ID, fmt.Sprintf("prefix exceeds maximum length of %d", s.cfg.Server.MaxInputLen), codeBadRequest)
	}

	suggestions := s.completer.Complete(req.Prefix, s.limit(req.Limit))
	words := make([]string, len(suggestions))
	for i, sg := range suggestions {
		words[i] = sg.Word
	}
	return s.sendResponse(LookupResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleBatch(ctx context.Context, req BatchRequest) error {
	start := time.Now()
	if len(req.Queries) > maxBatchQueries {
		return s.sendError(req.ID, errTooManyQueries.Error(), codeBadRequest)
	}

	limit := s.limit(req.Limit)
	results := make([]EnumerateResponse, len(req.Queries))
	queries := make([]enumerate.Query, 0, len(req.Queries))
	index := make([]int, 0, len(req.Queries))
	for i, q := range req.Queries {
		if err := s.validateText(q.Text); err != nil {
			results[i] = EnumerateResponse{Matches: []EnumerateMatch{}, Error: err.Error()}
			continue
		}
		if e, matches, ok := s.cache.Get(cacheKey(q.Text, q.PrefixLen)); ok {
			results[i] = s.buildResponse(e, matches, limit)
			continue
		}
		queries = append(queries, enumerate.Query{Text: q.Text, PrefixLen: q.PrefixLen})
		index = append(index, i)
	}

	batch, err := enumerate.Batch(ctx, s.lex, queries, s.cfg.Search.Workers,
		enumerate.WithMaxMatches(s.cfg.Search.MaxMatches))
	if err != nil {
		return s.sendError(req.ID, err.Error(), codeInternal)
	}
	for j, res := range batch {
		i := index[j]
		if res.Err != nil {
			results[i] = EnumerateResponse{Matches: []EnumerateMatch{}, Error: res.Err.Error()}
			continue
		}
		s.cache.Put(cacheKey(res.Query.Text, res.Query.PrefixLen), res.Enumerator, res.Matches)
		results[i] = s.buildResponse(res.Enumerator, res.Matches, limit)
	}

	log.Debugf("Batch %s: %d queries", req.ID, len(req.Queries))
	return s.sendResponse(BatchResponse{
		ID:        req.ID,
		Results:   results,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) validateText(text string) error {
	if len(text) > s.cfg.Server.MaxInputLen {
		return &enumerate.InputError{Len: len(text), Err: enumerate.ErrInputTooLong}
	}
	if !utils.IsASCII(text) {
		return errNonASCIIInput
	}
	return nil
}

// limit applies the configured default and ceiling to a requested limit.
func (s *Server) limit(k int) int {
	if k <= 0 {
		k = s.cfg.Search.DefaultTopK
	}
	return min(k, s.cfg.Search.MaxTopK)
}

func (s *Server) buildResponse(e *enumerate.Enumerator, matches []enumerate.Match, k int) EnumerateResponse {
	top := enumerate.TopK(matches, k)
	out := make([]EnumerateMatch, len(top))
	for i, m := range top {
		word, desc := e.Format(m)
		out[i] = EnumerateMatch{Word: word, Desc: desc, Score: m.Score}
	}
	return EnumerateResponse{
		Matches: out,
		Total:   len(matches),
		Count:   len(out),
	}
}

func (s *Server) stats() map[string]int {
	stats := s.cache.Stats()
	for k, v := range s.completer.Stats() {
		stats[k] = v
	}
	stats["requests"] = s.requestCount
	stats["trieUnits"] = s.lex.Trie().NumUnits()
	return stats
}

// sendResponse encodes one response and flushes it to the client.
func (s *Server) sendResponse(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return s.writer.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
