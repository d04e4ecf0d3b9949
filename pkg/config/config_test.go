package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/syllabix/pkg/prism"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[syllabifier]
enable_completion = true
delimiters = "'"

[corrector]
enabled = true
max_distance = 2

[dict]
path = "/opt/tables/zhuyin.bin"

[[dict.rules]]
kind = "fuzz"
pattern = "^zh"
replacement = "z"

[redis]
addr = "localhost:6379"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Syllabifier.EnableCompletion)
	assert.False(t, cfg.Syllabifier.StrictSpelling)
	assert.Equal(t, "'", cfg.Syllabifier.Delimiters)
	assert.True(t, cfg.Corrector.Enabled)
	assert.Equal(t, 2, cfg.Corrector.MaxDistance)
	assert.Equal(t, 0.5, cfg.Corrector.NearKeyCost)
	assert.Equal(t, "/opt/tables/zhuyin.bin", cfg.Dict.Path)
	assert.Equal(t, []prism.Rule{{Kind: "fuzz", Pattern: "^zh", Replacement: "z"}}, cfg.Dict.Rules)
	assert.Equal(t, 64, cfg.Server.MaxInput)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "syllabix:user_syllables", cfg.Redis.Key)
}

func TestLoadConfigKeepsDefaultRules(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[server]\nmax_input = 32\n"))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Server.MaxInput)
	assert.Equal(t, prism.DefaultRules(), cfg.Dict.Rules)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[syllabifier]
strict_spelling = true

[server]
max_input = "lots"

[[dict.rules]]
kind = "abbrev"
pattern = "^(.).+$"
replacement = "$1"

[[dict.rules]]
replacement = "orphan"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Syllabifier.StrictSpelling)
	assert.Equal(t, 64, cfg.Server.MaxInput)
	assert.Equal(t, []prism.Rule{{Kind: "abbrev", Pattern: "^(.).+$", Replacement: "$1"}}, cfg.Dict.Rules)
}

func TestLoadConfigUnparsable(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[syllabifier\nstrict_spelling = "))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.FileExists(t, path)

	reloaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), reloaded)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[corrector]\nnear_key_cost = 0.25\n")
	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 0.25, cfg.Corrector.NearKeyCost)
}
