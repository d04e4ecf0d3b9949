package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"xian", true},
		{"Xi'an", true},
		{"ni hao", true},
		{"", false},
		{"'an", false},
		{"xi1", false},
		{"xi-an", false},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidInput(tc.input, " '"))
		})
	}
	assert.Equal(t, "xi'an", NormalizeInput("  Xi'AN\n"))
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := `
[corrector]
max_distance = 2
near_key_cost = 1

[syllabifier]
delimiters = "'"
enable_completion = true

[[dict.rules]]
kind = "abbrev"
pattern = "^(.).+$"
replacement = "$1"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)

	corrector, ok := ExtractSection(raw, "corrector")
	require.True(t, ok)
	dist, ok := ExtractInt64(corrector, "max_distance")
	assert.True(t, ok)
	assert.Equal(t, 2, dist)
	cost, ok := ExtractFloat(corrector, "near_key_cost")
	assert.True(t, ok)
	assert.Equal(t, 1.0, cost)

	syl, ok := ExtractSection(raw, "syllabifier")
	require.True(t, ok)
	delims, ok := ExtractString(syl, "delimiters")
	assert.True(t, ok)
	assert.Equal(t, "'", delims)
	completion, ok := ExtractBool(syl, "enable_completion")
	assert.True(t, ok)
	assert.True(t, completion)
	_, ok = ExtractBool(syl, "delimiters")
	assert.False(t, ok)

	dict, ok := ExtractSection(raw, "dict")
	require.True(t, ok)
	rules, ok := ExtractTables(dict, "rules")
	require.True(t, ok)
	require.Len(t, rules, 1)
	kind, _ := ExtractString(rules[0], "kind")
	assert.Equal(t, "abbrev", kind)
}

func TestParseTOMLWithRecoveryBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nmax_input = "), 0o644))
	_, err := ParseTOMLWithRecovery(path)
	assert.Error(t, err)
}

func TestResolveTablePath(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "pinyin.bin")
	require.NoError(t, os.WriteFile(table, []byte{0, 0, 0, 0}, 0o644))

	assert.Equal(t, table, ResolveTablePath(table, ""))
	assert.Equal(t, table, ResolveTablePath("pinyin", dir))
	assert.Equal(t, table, ResolveTablePath("pinyin.bin", dir))
	assert.Equal(t, "missing.txt", ResolveTablePath("missing.txt", dir))
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	status := CheckDirStatus(dir)
	require.NoError(t, status.Error)
	assert.True(t, status.Exists)
	assert.True(t, status.Writable)
	assert.False(t, FileExists(filepath.Join(dir, ".write_test")))
}
