package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into v. Keys the struct does not know are
// logged and otherwise ignored.
func LoadTOMLFile(path string, v any) error {
	meta, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	for _, key := range meta.Undecoded() {
		log.Warnf("Unknown config key %q in %s", key.String(), path)
	}
	return nil
}

// ParseTOMLWithRecovery decodes a TOML file into a generic map so that valid
// sections can be salvaged from a file that does not fit the config struct.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any)
	if _, err := toml.Decode(string(data), &raw); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", path, err)
		return nil, err
	}
	return raw, nil
}

// ExtractSection returns a table from parsed TOML data.
func ExtractSection(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// ExtractTables returns an array of tables such as [[dict.rules]].
func ExtractTables(data map[string]any, key string) ([]map[string]any, bool) {
	tables, ok := data[key].([]map[string]any)
	return tables, ok
}

// ExtractInt64 returns an integer value as int.
func ExtractInt64(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// ExtractFloat returns a float value, accepting integers as well.
func ExtractFloat(data map[string]any, key string) (float64, bool) {
	switch val := data[key].(type) {
	case float64:
		return val, true
	case int64:
		return float64(val), true
	}
	return 0, false
}

// ExtractBool returns a boolean value.
func ExtractBool(data map[string]any, key string) (bool, bool) {
	if val, ok := data[key].(bool); ok {
		return val, true
	}
	return false, false
}

// ExtractString returns a string value.
func ExtractString(data map[string]any, key string) (string, bool) {
	if val, ok := data[key].(string); ok {
		return val, true
	}
	return "", false
}
