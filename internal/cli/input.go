// Package cli runs one-shot queries and the interactive prompt.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/config"
	"github.com/bastiangx/goodname/pkg/enumerate"
	"github.com/bastiangx/goodname/pkg/lexicon"
	"github.com/bastiangx/goodname/pkg/suggest"
	"github.com/charmbracelet/log"
)

// CommandKind identifies a line typed at the prompt.
type CommandKind int

const (
	CmdQuery CommandKind = iota
	CmdPrefix
	CmdLimit
	CmdLookup
	CmdSave
	CmdHelp
	CmdQuit
)

// Command is a parsed prompt line.
type Command struct {
	Kind CommandKind
	Arg  string
	N    int
}

var errUnknownCommand = errors.New("unknown command")

const helpText = `type a description and press Enter; uppercase letters must be used
:prefix N     allow up to N leading letters (0..3)
:k N          show N results
:lookup PRE   list words starting with PRE
:save         store prefix and k as defaults in the config file
:quit         leave`

// ParseCommand parses one prompt line. Lines not starting with ':' are queries.
func ParseCommand(line string) (Command, error) {
	if !strings.HasPrefix(line, ":") {
		return Command{Kind: CmdQuery, Arg: line}, nil
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "prefix", "p":
		n, err := parseInt(name, arg)
		if err != nil {
			return Command{}, err
		}
		if n < 0 || n > enumerate.MaxPrefixLen {
			return Command{}, fmt.Errorf("prefix must be between 0 and %d", enumerate.MaxPrefixLen)
		}
		return Command{Kind: CmdPrefix, N: n}, nil
	case "k", "limit":
		n, err := parseInt(name, arg)
		if err != nil {
			return Command{}, err
		}
		if n < 1 {
			return Command{}, errors.New("k must be at least 1")
		}
		return Command{Kind: CmdLimit, N: n}, nil
	case "lookup", "l":
		if arg == "" {
			return Command{}, errors.New("lookup needs a prefix")
		}
		return Command{Kind: CmdLookup, Arg: arg}, nil
	case "save":
		return Command{Kind: CmdSave}, nil
	case "help", "h", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	}
	return Command{}, fmt.Errorf("%w: %s", errUnknownCommand, name)
}

func parseInt(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf(":%s needs a number, got %q", name, arg)
	}
	return n, nil
}

// InputHandler runs the interactive prompt over a lexicon.
type InputHandler struct {
	lex          *lexicon.Lexicon
	completer    suggest.ICompleter
	cfg          *config.Config
	configPath   string
	prefixLen    int
	limit        int
	requestCount int
	render       *Renderer
}

// NewInputHandler creates a prompt using cfg's search and cli defaults.
// configPath is where :save writes to; empty disables it.
func NewInputHandler(lex *lexicon.Lexicon, completer suggest.ICompleter, cfg *config.Config, configPath string) *InputHandler {
	return &InputHandler{
		lex:        lex,
		completer:  completer,
		cfg:        cfg,
		configPath: configPath,
		prefixLen:  cfg.Search.DefaultPrefixLen,
		limit:      cfg.CLI.DefaultLimit,
	}
}

// Start runs the prompt on stdin/stdout.
func (h *InputHandler) Start(version string) error {
	fmt.Fprintln(os.Stdout, Banner(version))
	return h.Run(os.Stdin, os.Stdout)
}

// Run reads lines from in until EOF or :quit.
func (h *InputHandler) Run(in io.Reader, out io.Writer) error {
	h.render = NewRenderer(out, h.cfg.CLI.ShowScores)
	h.render.Info("type a description and press Enter (:help for commands)")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			h.render.Error(err)
			continue
		}
		if cmd.Kind == CmdQuit {
			return nil
		}
		h.handleCommand(cmd)
	}
}

func (h *InputHandler) handleCommand(cmd Command) {
	switch cmd.Kind {
	case CmdQuery:
		h.handleInput(cmd.Arg)
	case CmdPrefix:
		h.prefixLen = cmd.N
		h.render.Info("prefix budget set to %d", h.prefixLen)
	case CmdLimit:
		h.limit = cmd.N
		h.render.Info("showing %d results", h.limit)
	case CmdLookup:
		h.render.Suggestions(cmd.Arg, h.completer.Complete(cmd.Arg, h.limit))
	case CmdSave:
		if h.configPath == "" {
			h.render.Error(errors.New("no config file in use"))
			return
		}
		h.cfg.CLI.DefaultLimit = h.limit
		if err := h.cfg.Update(h.configPath, &h.prefixLen, &h.limit, nil); err != nil {
			h.render.Error(err)
			return
		}
		h.render.Info("saved defaults to %s", h.configPath)
	case CmdHelp:
		h.render.Info("%s", helpText)
	}
}

// handleInput enumerates one description and prints the top results.
func (h *InputHandler) handleInput(text string) {
	h.requestCount++
	if !utils.IsValidInput(text) {
		h.render.Info("nothing to search in %q: use ASCII text with at least one letter", text)
		return
	}
	log.Debugf("Processing request %d: %q (%d letters, %d anchors)",
		h.requestCount, text, utils.CountLetters(text), utils.CountAnchors(text))

	res, err := Query(h.lex, text, h.prefixLen, h.limit, h.cfg.Search.MaxMatches)
	if err != nil {
		h.render.Error(err)
		return
	}
	h.render.Matches(res)
}

// Result is the outcome of one query.
type Result struct {
	Enumerator *enumerate.Enumerator
	Matches    []enumerate.Match // the top results only
	Total      int               // number of matched words
	Elapsed    time.Duration
}

// Query enumerates text and keeps the top limit matches.
func Query(lex *lexicon.Lexicon, text string, prefixLen, limit, maxMatches int) (*Result, error) {
	start := time.Now()
	e, err := enumerate.New(lex, text, enumerate.WithPrefixLen(prefixLen), enumerate.WithMaxMatches(maxMatches))
	if err != nil {
		return nil, err
	}
	matches, err := e.AllSubsequencesSorted()
	if err != nil {
		return nil, err
	}
	return &Result{
		Enumerator: e,
		Matches:    enumerate.TopK(matches, limit),
		Total:      len(matches),
		Elapsed:    time.Since(start),
	}, nil
}

// RunOnce prints the results of a single query to out.
func RunOnce(lex *lexicon.Lexicon, cfg *config.Config, out io.Writer, text string, prefixLen, limit int) error {
	res, err := Query(lex, text, prefixLen, limit, cfg.Search.MaxMatches)
	if err != nil {
		return err
	}
	NewRenderer(out, cfg.CLI.ShowScores).Matches(res)
	return nil
}
