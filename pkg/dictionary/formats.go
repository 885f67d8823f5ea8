package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // Plain text word list
	FormatGzip               // gzip compressed word list
	FormatZstd               // zstd compressed word list
	FormatTrie               // Serialized double-array trie
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
	FormatGzip: {
		Format:      FormatGzip,
		Description: "Gzip Compressed Word List",
		Extensions:  []string{".txt.gz", ".gz"},
		MinSize:     18, // gzip header + trailer
	},
	FormatZstd: {
		Format:      FormatZstd,
		Description: "Zstandard Compressed Word List",
		Extensions:  []string{".txt.zst", ".zst"},
		MinSize:     9, // magic + frame header
	},
	FormatTrie: {
		Format:      FormatTrie,
		Description: "Binary Trie Dictionary",
		Extensions:  []string{".dic"},
		MinSize:     headerSize + 4, // header + at least one unit
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// formatForName maps a file name to a format using its extension only.
// Longer extensions are checked first so "words.txt.gz" is gzip, not text.
func formatForName(filename string) FileFormat {
	name := strings.ToLower(filepath.Base(filename))
	switch {
	case strings.HasSuffix(name, ".gz"):
		return FormatGzip
	case strings.HasSuffix(name, ".zst"):
		return FormatZstd
	case strings.HasSuffix(name, ".dic"):
		return FormatTrie
	case strings.HasSuffix(name, ".txt"), filepath.Ext(name) == "":
		return FormatText
	}
	return FormatUnknown
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	if got := formatForName(filename); got != expectedFormat {
		return fmt.Errorf("file %s has the wrong extension for format %s (expected: %v)",
			filename, formatInfo.Description, formatInfo.Extensions)
	}

	log.Debugf("File %s validated as %s", filename, formatInfo.Description)
	return nil
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	format := formatForName(filename)
	if format == FormatUnknown {
		return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
	}
	if err := ValidateFileFormat(filename, format); err != nil {
		return FormatUnknown, err
	}
	return format, nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
