package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/trie"
	"github.com/charmbracelet/log"
)

// .dic layout, little-endian:
//
//	[4]byte  magic "GNDC"
//	uint32   format version
//	uint32   unit count
//	[]uint32 units
const (
	trieMagic   = "GNDC"
	trieVersion = 1
	headerSize  = 12

	// units are addressed by 29-bit offsets
	maxUnits = 1 << 29
)

// ErrBadTrieFile is returned for .dic files with a wrong header or a truncated body.
var ErrBadTrieFile = errors.New("invalid trie file")

// SaveTrie writes t to path, creating parent directories as needed.
// The file is written to a temporary name first and renamed into place.
func SaveTrie(path string, t *trie.Trie) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	body, err := t.MarshalBinary()
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create trie file %s: %w", tmp, err)
	}

	w := bufio.NewWriter(file)
	if err := writeTrie(w, t.NumUnits(), body); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write trie file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	log.Debugf("Saved trie to %s (%d units)", path, t.NumUnits())
	return nil
}

func writeTrie(w *bufio.Writer, numUnits int, body []byte) error {
	if _, err := w.WriteString(trieMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(trieVersion)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(numUnits)); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	return w.Flush()
}

// LoadTrie reads a trie written by SaveTrie.
func LoadTrie(path string) (*trie.Trie, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trie file %s: %w", path, err)
	}
	defer file.Close()

	t, err := ReadTrie(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded trie from %s (%d units)", path, t.NumUnits())
	return t, nil
}

// ReadTrie decodes a trie in .dic layout from r.
func ReadTrie(r io.Reader) (*trie.Trie, error) {
	magic := make([]byte, len(trieMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrBadTrieFile, err)
	}
	if string(magic) != trieMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadTrieFile, magic)
	}

	var version, numUnits uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: failed to read version: %v", ErrBadTrieFile, err)
	}
	if version != trieVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadTrieFile, version)
	}
	if err := binary.Read(r, binary.LittleEndian, &numUnits); err != nil {
		return nil, fmt.Errorf("%w: failed to read unit count: %v", ErrBadTrieFile, err)
	}
	if numUnits == 0 || numUnits > maxUnits {
		return nil, fmt.Errorf("%w: unit count %d out of range", ErrBadTrieFile, numUnits)
	}

	body := make([]byte, 4*int(numUnits))
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: truncated body: %v", ErrBadTrieFile, err)
	}

	t := new(trie.Trie)
	if err := t.UnmarshalBinary(body); err != nil {
		return nil, err
	}
	return t, nil
}
