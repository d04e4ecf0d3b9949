/*
Package config manages the TOML configuration for syllabix.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/syllabix/internal/utils"
	"github.com/bastiangx/syllabix/pkg/prism"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Syllabifier SyllabifierConfig `toml:"syllabifier"`
	Corrector   CorrectorConfig   `toml:"corrector"`
	Dict        DictConfig        `toml:"dict"`
	Server      ServerConfig      `toml:"server"`
	Redis       RedisConfig       `toml:"redis"`
}

// SyllabifierConfig controls graph construction.
type SyllabifierConfig struct {
	EnableCompletion bool   `toml:"enable_completion"`
	StrictSpelling   bool   `toml:"strict_spelling"`
	Delimiters       string `toml:"delimiters"`
}

// CorrectorConfig controls typo tolerance.
type CorrectorConfig struct {
	Enabled     bool    `toml:"enabled"`
	MaxDistance int     `toml:"max_distance"`
	NearKeyCost float64 `toml:"near_key_cost"`
}

// DictConfig names the syllable table and the spelling rules applied to it.
type DictConfig struct {
	Path  string       `toml:"path"`
	Rules []prism.Rule `toml:"rules"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxInput int `toml:"max_input"`
}

// RedisConfig locates the user syllable store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME/syllabix or ~/.config/syllabix
// 2. ~/Library/Application Support/syllabix (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		path := filepath.Join(xdg, "syllabix")
		if status := utils.CheckDirStatus(path); status.Writable {
			return path, nil
		}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "syllabix")
	if status := utils.CheckDirStatus(primaryPath); status.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "syllabix")
	if status := utils.CheckDirStatus(macOSPath); status.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.ExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [ConfigDir]/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
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

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Syllabifier: SyllabifierConfig{
			EnableCompletion: false,
			StrictSpelling:   false,
			Delimiters:       " '",
		},
		Corrector: CorrectorConfig{
			Enabled:     false,
			MaxDistance: 1,
			NearKeyCost: 0.5,
		},
		Dict: DictConfig{
			Path:  "data/pinyin",
			Rules: prism.DefaultRules(),
		},
		Server: ServerConfig{
			MaxInput: 64,
		},
		Redis: RedisConfig{
			Key: "syllabix:user_syllables",
		},
	}
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

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. A file that fails to decode as a whole
// is salvaged section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	// rules from the file replace the defaults instead of merging into them
	config.Dict.Rules = nil

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	// still nil only when the file declares no rules at all
	if config.Dict.Rules == nil {
		config.Dict.Rules = prism.DefaultRules()
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "syllabifier"); ok {
		extractSyllabifierConfig(section, &config.Syllabifier)
	}
	if section, ok := utils.ExtractSection(raw, "corrector"); ok {
		extractCorrectorConfig(section, &config.Corrector)
	}
	if section, ok := utils.ExtractSection(raw, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_input"); ok {
			config.Server.MaxInput = val
		}
	}
	if section, ok := utils.ExtractSection(raw, "redis"); ok {
		extractRedisConfig(section, &config.Redis)
	}
	return config, nil
}

func extractSyllabifierConfig(data map[string]any, syl *SyllabifierConfig) {
	if val, ok := utils.ExtractBool(data, "enable_completion"); ok {
		syl.EnableCompletion = val
	}
	if val, ok := utils.ExtractBool(data, "strict_spelling"); ok {
		syl.StrictSpelling = val
	}
	if val, ok := utils.ExtractString(data, "delimiters"); ok {
		syl.Delimiters = val
	}
}

func extractCorrectorConfig(data map[string]any, corrector *CorrectorConfig) {
	if val, ok := utils.ExtractBool(data, "enabled"); ok {
		corrector.Enabled = val
	}
	if val, ok := utils.ExtractInt64(data, "max_distance"); ok {
		corrector.MaxDistance = val
	}
	if val, ok := utils.ExtractFloat(data, "near_key_cost"); ok {
		corrector.NearKeyCost = val
	}
}

// extractDictConfig keeps only the rules that carry a kind and a pattern.
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	tables, ok := utils.ExtractTables(data, "rules")
	if !ok {
		return
	}
	rules := make([]prism.Rule, 0, len(tables))
	for i, table := range tables {
		kind, okKind := utils.ExtractString(table, "kind")
		pattern, okPattern := utils.ExtractString(table, "pattern")
		if !okKind || !okPattern {
			log.Warnf("Skipping dict rule %d: kind and pattern are required", i)
			continue
		}
		replacement, _ := utils.ExtractString(table, "replacement")
		rules = append(rules, prism.Rule{Kind: kind, Pattern: pattern, Replacement: replacement})
	}
	dict.Rules = rules
}

func extractRedisConfig(data map[string]any, redis *RedisConfig) {
	if val, ok := utils.ExtractString(data, "addr"); ok {
		redis.Addr = val
	}
	if val, ok := utils.ExtractString(data, "password"); ok {
		redis.Password = val
	}
	if val, ok := utils.ExtractInt64(data, "db"); ok {
		redis.DB = val
	}
	if val, ok := utils.ExtractString(data, "key"); ok {
		redis.Key = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
