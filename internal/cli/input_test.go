package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/goodname/pkg/config"
	"github.com/bastiangx/goodname/pkg/enumerate"
	"github.com/bastiangx/goodname/pkg/lexicon"
	"github.com/bastiangx/goodname/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr bool
	}{
		{line: "abAaB", want: Command{Kind: CmdQuery, Arg: "abAaB"}},
		{line: ":prefix 2", want: Command{Kind: CmdPrefix, N: 2}},
		{line: ":p 0", want: Command{Kind: CmdPrefix, N: 0}},
		{line: ":prefix 4", wantErr: true},
		{line: ":prefix two", wantErr: true},
		{line: ":k 5", want: Command{Kind: CmdLimit, N: 5}},
		{line: ":k 0", wantErr: true},
		{line: ":lookup car", want: Command{Kind: CmdLookup, Arg: "car"}},
		{line: ":lookup", wantErr: true},
		{line: ":save", want: Command{Kind: CmdSave}},
		{line: ":help", want: Command{Kind: CmdHelp}},
		{line: ":q", want: Command{Kind: CmdQuit}},
		{line: ":frobnicate", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			got, err := ParseCommand(tc.line)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func newHandler(t *testing.T, configPath string) *InputHandler {
	t.Helper()
	lex, err := lexicon.New([]string{"aa", "abaab", "abb", "bab", "bb", "bbb", "cbab", "ccbab"})
	require.NoError(t, err)
	return NewInputHandler(lex, suggest.NewCompleter(lex), config.DefaultConfig(), configPath)
}

func TestRunSession(t *testing.T) {
	h := newHandler(t, "")
	in := strings.NewReader("abAaB\n:prefix 2\nabAaB\n:lookup bb\n:prefix 9\n:quit\nnever reached\n")
	var out bytes.Buffer

	require.NoError(t, h.Run(in, &out))
	got := out.String()

	assert.Contains(t, got, "abaab")
	assert.Contains(t, got, "ABAAB")
	assert.Contains(t, got, "CCbab")
	assert.Contains(t, got, "bbb")
	assert.Contains(t, got, "prefix must be between 0 and 3")
	assert.NotContains(t, got, "never reached")
	assert.Equal(t, 2, h.requestCount)
}

func TestRunReportsErrors(t *testing.T) {
	h := newHandler(t, "")
	in := strings.NewReader(strings.Repeat("a", enumerate.MaxInputLen+1) + "\n:save\n")
	var out bytes.Buffer

	require.NoError(t, h.Run(in, &out))
	assert.Contains(t, out.String(), "input is too long")
	assert.Contains(t, out.String(), "no config file in use")
}

func TestSaveWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	h := newHandler(t, path)
	var out bytes.Buffer

	require.NoError(t, h.Run(strings.NewReader(":prefix 1\n:k 7\n:save\n"), &out))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Search.DefaultPrefixLen)
	assert.Equal(t, 7, cfg.Search.DefaultTopK)
}

func TestQuery(t *testing.T) {
	h := newHandler(t, "")
	res, err := Query(h.lex, "abAaB", 2, 1, enumerate.MaxMatches)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	require.Len(t, res.Matches, 1)

	word, desc := res.Enumerator.Format(res.Matches[0])
	assert.Equal(t, "abaab", word)
	assert.Equal(t, "ABAAB", desc)
}

func TestRunOnce(t *testing.T) {
	h := newHandler(t, "")
	var out bytes.Buffer
	require.NoError(t, RunOnce(h.lex, h.cfg, &out, "bAb", 0, 10))
	assert.Contains(t, out.String(), "bab")
	assert.Contains(t, out.String(), "BAB")

	out.Reset()
	require.NoError(t, RunOnce(h.lex, h.cfg, &out, "xyz", 0, 10))
	assert.Contains(t, out.String(), "no words found")
}

func TestBanner(t *testing.T) {
	assert.Contains(t, Banner("v1.2.3"), "v1.2.3")
	assert.Contains(t, Banner("v1.2.3"), "goodname")
}
