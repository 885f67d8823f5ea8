package utils

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into v and returns the keys the file
// sets that v has no field for, usually typos.
func LoadTOMLFile(configPath string, v any) ([]string, error) {
	md, err := toml.DecodeFile(configPath, v)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return nil, err
	}
	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// ParseTOMLWithRecovery decodes a TOML file without a schema, so sections
// that hold values of the wrong type can still be picked apart key by key.
func ParseTOMLWithRecovery(configPath string) (map[string]any, error) {
	raw := make(map[string]any)
	if _, err := toml.DecodeFile(configPath, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", configPath, err)
	}
	return raw, nil
}

// Extract returns data[key] when it holds a T.
// Sections come back as map[string]any.
func Extract[T any](data map[string]any, key string) (T, bool) {
	val, ok := data[key].(T)
	return val, ok
}

// ExtractInt returns an integer key as int. TOML integers decode as int64,
// values that do not fit an int are reported as missing.
func ExtractInt(data map[string]any, key string) (int, bool) {
	val, ok := Extract[int64](data, key)
	if !ok || val > math.MaxInt || val < math.MinInt {
		return 0, false
	}
	return int(val), true
}

// ExtractFloat accepts both TOML floats and integers.
func ExtractFloat(data map[string]any, key string) (float64, bool) {
	switch val := data[key].(type) {
	case float64:
		return val, true
	case int64:
		return float64(val), true
	}
	return 0, false
}
