// Package dictionary reads word lists from disk and turns them into lexicons.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/lexicon"
	"github.com/bastiangx/goodname/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrUnknownFormat is returned for files whose extension is not recognised.
	ErrUnknownFormat = errors.New("unknown dictionary format")
	// ErrNoWords is returned when a word list holds no usable word.
	ErrNoWords = errors.New("word list is empty")
)

// maxLineLen bounds a single line of a word list.
const maxLineLen = 1 << 20

// Options control how a word list is prepared.
type Options struct {
	// Normalize lowercases words, drops anything that is not a..z only,
	// then sorts and dedupes the list. Without it lines are used verbatim
	// and the trie reports what is wrong with them.
	Normalize bool
	// TrieCache, when set, names a .dic file holding the trie of this word
	// list. LoadLexicon reads it if present and writes it after a build.
	TrieCache string
}

// LoadWords reads a newline separated word list. Blank lines are skipped.
// The format is chosen from the extension: .txt, .gz or .zst.
func LoadWords(path string, opts Options) ([]string, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatTrie {
		return nil, fmt.Errorf("%s holds a trie, not a word list", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer file.Close()

	start := time.Now()
	r, closeFn, err := decompress(file, format)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s stream %s: %w", format, path, err)
	}
	defer closeFn()

	words, err := ReadWords(r, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	log.Debugf("Loaded %s words from %s in %v", utils.FormatWithCommas(len(words)), path, time.Since(start))
	return words, nil
}

// ReadWords reads a word list from r.
func ReadWords(r io.Reader, opts Options) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	var words []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if opts.Normalize {
		words = normalize(words)
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	return words, nil
}

func normalize(words []string) []string {
	filter := utils.NewWordFilter(len(words))
	out := words[:0]
	dropped := 0
	for _, w := range words {
		nw, ok := utils.NormalizeWord(w)
		if !ok {
			dropped++
			continue
		}
		if filter.ShouldInclude(nw) {
			out = append(out, nw)
		}
	}
	sort.Strings(out)
	if dropped > 0 {
		log.Debugf("Normalization dropped %d words with characters outside a-z", dropped)
	}
	return out
}

func decompress(r io.Reader, format FileFormat) (io.Reader, func(), error) {
	switch format {
	case FormatGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gz, func() { gz.Close() }, nil
	case FormatZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	}
	return r, func() {}, nil
}

// LoadLexicon loads a word list and builds its lexicon.
func LoadLexicon(path string, opts Options) (*lexicon.Lexicon, error) {
	words, err := LoadWords(path, opts)
	if err != nil {
		return nil, err
	}

	if opts.TrieCache != "" && utils.FileExists(opts.TrieCache) {
		lex, err := loadCached(words, opts.TrieCache)
		if err == nil {
			log.Debugf("Using cached trie %s", opts.TrieCache)
			return lex, nil
		}
		log.Warnf("Ignoring trie cache %s: %v", opts.TrieCache, err)
	}

	lex, err := lexicon.New(words)
	if err != nil {
		return nil, fmt.Errorf("failed to build lexicon from %s: %w", path, err)
	}

	if opts.TrieCache != "" {
		if err := SaveTrie(opts.TrieCache, lex.Trie()); err != nil {
			log.Warnf("Failed to write trie cache %s: %v", opts.TrieCache, err)
		}
	}
	return lex, nil
}

func loadCached(words []string, path string) (*lexicon.Lexicon, error) {
	t, err := LoadTrie(path)
	if err != nil {
		return nil, err
	}
	return lexicon.NewWithTrie(words, t)
}

// BuildTrieFile builds the trie of a word list and saves it to out.
func BuildTrieFile(path, out string, opts Options) (*trie.Trie, error) {
	words, err := LoadWords(path, opts)
	if err != nil {
		return nil, err
	}
	t, err := trie.Build(words)
	if err != nil {
		return nil, err
	}
	if err := SaveTrie(out, t); err != nil {
		return nil, err
	}
	return t, nil
}
