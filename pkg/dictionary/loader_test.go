package dictionary

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/syllabix/pkg/spelling"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const sampleTable = `# pinyin sample
xi	400
an	200
xian	100
ni
bad	-3
`

func TestReadText(t *testing.T) {
	table, err := ReadText(strings.NewReader(sampleTable))
	require.NoError(t, err)

	require.Equal(t, 4, table.Len())
	assert.Equal(t, "xi", table.Text(0))
	assert.Equal(t, "ni", table.Text(3))

	id, ok := table.ID("xian")
	require.True(t, ok)
	assert.InDelta(t, math.Log(0.25), table.Syllables[id].Credibility, 1e-12)
	assert.Equal(t, 0.0, table.Syllables[0].Credibility)

	_, ok = table.ID("bad")
	assert.False(t, ok)
}

func TestTableAdd(t *testing.T) {
	table := NewTable()
	first := table.Add("ni", -2)
	again := table.Add("ni", -1)
	positive := table.Add("hao", 3)

	assert.Equal(t, first, again)
	assert.Equal(t, -1.0, table.Syllables[first].Credibility)
	assert.Equal(t, 0.0, table.Syllables[positive].Credibility)
	assert.Equal(t, "", table.Text(42))
}

func TestCompileAndLoadBinary(t *testing.T) {
	table, err := ReadText(strings.NewReader(sampleTable))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pinyin.bin")
	require.NoError(t, Compile(table, path))

	format, err := DetectFileFormat(path)
	require.NoError(t, err)
	assert.Equal(t, FormatBinary, format)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, table.Syllables, loaded.Syllables)
	id, ok := loaded.ID("an")
	require.True(t, ok)
	assert.Equal(t, "an", loaded.Text(id))
}

func TestLoadMsgpack(t *testing.T) {
	table := NewTable()
	table.Add("zhong", -0.5)
	table.Add("guo", -1)

	path := filepath.Join(t.TempDir(), "table.mpk")
	require.NoError(t, SaveMsgpack(table, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	id, ok := loaded.ID("guo")
	require.True(t, ok)
	assert.Equal(t, spelling.SyllableID(1), id)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name    string
		file    string
		content []byte
		wantErr error
	}{
		{"unknown extension", "table.csv", []byte("xi,1"), ErrUnknownFormat},
		{"empty text table", "empty.txt", []byte("# nothing\n"), ErrEmptyTable},
		{"truncated binary", "short.bin", []byte{1, 0}, ErrUnknownFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(path, tc.content, 0o644))
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestReadBinaryRejectsBadHeader(t *testing.T) {
	_, err := ReadBinary(strings.NewReader("\xff\xff\xff\xff"))
	assert.Error(t, err)
}
