/*
Package server implements msgpack IPC for goodname.

Clients write msgpack encoded maps to stdin and read one msgpack map per
request from stdout. Messages are processed in order; every response
carries the id of its request, or a generated uuid when the request had none.

# IPC

On start the server announces itself:

	{"status": "ready"}

Enumeration requests carry the description and optionally a result limit
and a prefix budget:

	{"id": "req_001", "t": "abAaB", "k": 10, "p": 2}

The server responds with the ranked matches, the number of words that
matched in total and the time taken in microseconds:

	{"id": "req_001", "m": [{"w": "abaab", "d": "ABAAB", "s": 31}, {"w": "bab", "d": "aBAaB", "s": 13}], "n": 4, "c": 2, "t": 88}

Other operations are selected with an action field:

	{"id": "l1", "action": "lookup", "p": "car", "l": 5}
	{"id": "b1", "action": "batch", "q": [{"t": "abAaB"}, {"t": "bAb", "p": 1}], "k": 5}
	{"id": "h1", "action": "health"}
	{"id": "s1", "action": "stats"}

Failures are reported as

	{"id": "req_001", "e": "input is too long: 200 bytes (max 128)", "c": 400}

with code 400 for invalid requests and 429 when the client is rate limited.
*/
package server

const (
	ActionEnumerate = "enumerate"
	ActionLookup    = "lookup"
	ActionBatch     = "batch"
	ActionHealth    = "health"
	ActionStats     = "stats"
)

// header is decoded first to route a message.
type header struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
}

// EnumerateRequest asks for the words hidden in a description.
type EnumerateRequest struct {
	ID        string `msgpack:"id"`
	Action    string `msgpack:"action,omitempty"`
	Text      string `msgpack:"t"`
	Limit     int    `msgpack:"k,omitempty"`
	PrefixLen int    `msgpack:"p,omitempty"`
}

// EnumerateMatch is one ranked candidate.
type EnumerateMatch struct {
	Word  string `msgpack:"w"`
	Desc  string `msgpack:"d"`
	Score uint64 `msgpack:"s"`
}

// EnumerateResponse holds the top matches of one description.
type EnumerateResponse struct {
	ID        string           `msgpack:"id,omitempty"`
	Matches   []EnumerateMatch `msgpack:"m"`
	Total     int              `msgpack:"n"`
	Count     int              `msgpack:"c"`
	TimeTaken int64            `msgpack:"t"`
	// Error is only set on failed entries of a batch
	Error string `msgpack:"e,omitempty"`
}

// LookupRequest asks for the words starting with a prefix.
type LookupRequest struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
}

// LookupResponse lists the words with the requested prefix in id order.
type LookupResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"w"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// BatchQuery is one description of a batch.
type BatchQuery struct {
	Text      string `msgpack:"t"`
	PrefixLen int    `msgpack:"p,omitempty"`
}

// BatchRequest enumerates several descriptions concurrently.
type BatchRequest struct {
	ID      string       `msgpack:"id"`
	Action  string       `msgpack:"action"`
	Queries []BatchQuery `msgpack:"q"`
	Limit   int          `msgpack:"k,omitempty"`
}

// BatchResponse holds one result per query, in request order.
type BatchResponse struct {
	ID        string              `msgpack:"id"`
	Results   []EnumerateResponse `msgpack:"r"`
	TimeTaken int64               `msgpack:"t"`
}

// StatusResponse answers health and stats requests and announces readiness.
type StatusResponse struct {
	ID     string         `msgpack:"id,omitempty"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
