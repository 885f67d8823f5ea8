/*
Package config manages the TOML config of goodname.

A missing file is created with defaults, a malformed one is recovered
section by section, and out of range values fall back to their defaults.
*/
package config

import (
	"path/filepath"
	"strings"

	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/enumerate"
	"github.com/charmbracelet/log"
)

const configFileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// SearchConfig has enumeration defaults.
type SearchConfig struct {
	DefaultPrefixLen int `toml:"default_prefix_len"`
	DefaultTopK      int `toml:"default_top_k"`
	MaxTopK          int `toml:"max_top_k"`
	MaxMatches       int `toml:"max_matches"`
	Workers          int `toml:"workers"`
}

// DictConfig holds word list options.
type DictConfig struct {
	WordList  string `toml:"word_list"`
	Normalize bool   `toml:"normalize"`
	TrieCache string `toml:"trie_cache"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	CacheSize   int     `toml:"cache_size"`
	RateLimit   float64 `toml:"rate_limit"`
	Burst       int     `toml:"burst"`
	MaxInputLen int     `toml:"max_input_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	ShowScores   bool `toml:"show_scores"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultPrefixLen: 0,
			DefaultTopK:      30,
			MaxTopK:          1000,
			MaxMatches:       enumerate.MaxMatches,
			Workers:          0,
		},
		Dict: DictConfig{
			WordList:  "words.txt",
			Normalize: true,
			TrieCache: "",
		},
		Server: ServerConfig{
			CacheSize:   256,
			RateLimit:   200,
			Burst:       50,
			MaxInputLen: enumerate.MaxInputLen,
		},
		CLI: CliConfig{
			DefaultLimit: 30,
			ShowScores:   true,
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return resolver.GetConfigPath(configFileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/goodname/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	unknown, err := utils.LoadTOMLFile(configPath, config)
	if err != nil {
		return tryPartialParse(configPath)
	}
	if len(unknown) > 0 {
		log.Warnf("Ignoring unknown keys in %s: %s", configPath, strings.Join(unknown, ", "))
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse keeps every key that still decodes with the right type.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.Extract[map[string]any](tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.Extract[map[string]any](tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.Extract[map[string]any](tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.Extract[map[string]any](tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.sanitize()
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt(data, "default_prefix_len"); ok {
		search.DefaultPrefixLen = val
	}
	if val, ok := utils.ExtractInt(data, "default_top_k"); ok {
		search.DefaultTopK = val
	}
	if val, ok := utils.ExtractInt(data, "max_top_k"); ok {
		search.MaxTopK = val
	}
	if val, ok := utils.ExtractInt(data, "max_matches"); ok {
		search.MaxMatches = val
	}
	if val, ok := utils.ExtractInt(data, "workers"); ok {
		search.Workers = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.Extract[string](data, "word_list"); ok {
		dict.WordList = val
	}
	if val, ok := utils.Extract[bool](data, "normalize"); ok {
		dict.Normalize = val
	}
	if val, ok := utils.Extract[string](data, "trie_cache"); ok {
		dict.TrieCache = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "cache_size"); ok {
		server.CacheSize = val
	}
	if val, ok := utils.ExtractFloat(data, "rate_limit"); ok {
		server.RateLimit = val
	}
	if val, ok := utils.ExtractInt(data, "burst"); ok {
		server.Burst = val
	}
	if val, ok := utils.ExtractInt(data, "max_input_len"); ok {
		server.MaxInputLen = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.Extract[bool](data, "show_scores"); ok {
		cli.ShowScores = val
	}
}

// sanitize resets out of range values to their defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()

	if c.Search.DefaultPrefixLen < 0 || c.Search.DefaultPrefixLen > enumerate.MaxPrefixLen {
		log.Warnf("search.default_prefix_len %d out of range 0..%d, using %d",
			c.Search.DefaultPrefixLen, enumerate.MaxPrefixLen, def.Search.DefaultPrefixLen)
		c.Search.DefaultPrefixLen = def.Search.DefaultPrefixLen
	}
	if c.Search.MaxTopK <= 0 {
		c.Search.MaxTopK = def.Search.MaxTopK
	}
	if c.Search.DefaultTopK <= 0 || c.Search.DefaultTopK > c.Search.MaxTopK {
		log.Warnf("search.default_top_k %d out of range, using %d", c.Search.DefaultTopK, def.Search.DefaultTopK)
		c.Search.DefaultTopK = min(def.Search.DefaultTopK, c.Search.MaxTopK)
	}
	if c.Search.MaxMatches <= 0 || c.Search.MaxMatches > enumerate.MaxMatches {
		c.Search.MaxMatches = def.Search.MaxMatches
	}
	if c.Search.Workers < 0 {
		c.Search.Workers = def.Search.Workers
	}
	if c.Server.CacheSize < 0 {
		c.Server.CacheSize = def.Server.CacheSize
	}
	if c.Server.RateLimit < 0 {
		c.Server.RateLimit = def.Server.RateLimit
	}
	if c.Server.Burst <= 0 {
		c.Server.Burst = def.Server.Burst
	}
	if c.Server.MaxInputLen <= 0 || c.Server.MaxInputLen > enumerate.MaxInputLen {
		c.Server.MaxInputLen = def.Server.MaxInputLen
	}
	if c.CLI.DefaultLimit <= 0 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the search defaults and saves to file.
// Nil arguments leave the current value untouched.
func (c *Config) Update(configPath string, prefixLen, topK *int, normalize *bool) error {
	if prefixLen != nil {
		c.Search.DefaultPrefixLen = *prefixLen
	}
	if topK != nil {
		c.Search.DefaultTopK = *topK
	}
	if normalize != nil {
		c.Dict.Normalize = *normalize
	}
	c.sanitize()
	return SaveConfig(c, configPath)
}
