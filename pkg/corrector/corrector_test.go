package corrector

import (
	"testing"

	"github.com/bastiangx/syllabix/pkg/dictionary"
	"github.com/bastiangx/syllabix/pkg/prism"
	"github.com/bastiangx/syllabix/pkg/spelling"
	"github.com/bastiangx/syllabix/pkg/syllabify"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newTestCorrector(t *testing.T, cfg Config) (*Corrector, *prism.Prism, *dictionary.Table) {
	t.Helper()
	return newRuledCorrector(t, cfg, nil)
}

func newRuledCorrector(t *testing.T, cfg Config, rules []prism.Rule) (*Corrector, *prism.Prism, *dictionary.Table) {
	t.Helper()
	table := dictionary.NewTable()
	table.Add("xi", -1)
	table.Add("an", -1.5)
	table.Add("xian", -2)
	table.Add("zhong", -1)
	table.Add("hao", -1)
	p, err := prism.New(table, rules, "'")
	require.NoError(t, err)
	return New(p, cfg), p, table
}

func find(spellings []spelling.Spelling, id spelling.SyllableID, end int) (spelling.Spelling, bool) {
	for _, s := range spellings {
		if s.SyllableID == id && s.End == end {
			return s, true
		}
	}
	return spelling.Spelling{}, false
}

func TestKeyboard(t *testing.T) {
	assert.True(t, nearKeys('u', 'i'))
	assert.True(t, nearKeys('a', 'S'))
	assert.False(t, nearKeys('q', 'm'))
	assert.False(t, nearKeys('a', '1'))

	a, b, ok := singleSubstitution("xuan", "xian")
	require.True(t, ok)
	assert.Equal(t, byte('u'), a)
	assert.Equal(t, byte('i'), b)
	_, _, ok = singleSubstitution("xuan", "xuan")
	assert.False(t, ok)
	_, _, ok = singleSubstitution("xu", "xian")
	assert.False(t, ok)

	assert.True(t, isOneAdjacentSwap("ixan", "xian"))
	assert.True(t, isOneAdjacentSwap("xina", "xian"))
	assert.False(t, isOneAdjacentSwap("xnia", "xian"))
	assert.False(t, isOneAdjacentSwap("xian", "xian"))
}

func TestSuggest(t *testing.T) {
	c, _, table := newTestCorrector(t, DefaultConfig())
	xi, _ := table.ID("xi")
	xian, _ := table.ID("xian")

	got := c.Suggest("xuan", 0)

	testCases := []struct {
		name string
		id   spelling.SyllableID
		end  int
		cred float64
	}{
		{"near key substitution", xian, 4, -2 - 0.5},
		{"near key prefix", xi, 2, -1 - 0.5},
		{"missing character", xi, 1, -1 - 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := find(got, tc.id, tc.end)
			require.True(t, ok, "missing syllable %d ending at %d in %v", tc.id, tc.end, got)
			assert.Equal(t, spelling.Normal, s.Type)
			assert.InDelta(t, tc.cred, s.Credibility, 1e-12)
		})
	}

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].End, got[i].End)
	}
}

func TestSuggestWithAbbreviationRules(t *testing.T) {
	c, p, table := newRuledCorrector(t, DefaultConfig(), prism.DefaultRules())
	xi, _ := table.ID("xi")
	xian, _ := table.ID("xian")

	// "x" abbreviates both syllables but must not hide their corrections
	_, ok := find(p.Lookup("xuan", 0), xian, 1)
	require.True(t, ok)

	got := c.Suggest("xuan", 0)
	s, ok := find(got, xian, 4)
	require.True(t, ok, "missing correction to xian in %v", got)
	assert.InDelta(t, -2-0.5, s.Credibility, 1e-12)
	_, ok = find(got, xi, 2)
	assert.True(t, ok)

	for _, s := range c.Suggest("xian", 0) {
		assert.NotEqual(t, xian, s.SyllableID)
	}
}

func TestSuggestTransposition(t *testing.T) {
	c, _, table := newTestCorrector(t, DefaultConfig())
	xian, _ := table.ID("xian")

	s, ok := find(c.Suggest("ixan", 0), xian, 4)
	require.True(t, ok)
	assert.InDelta(t, -2-0.6, s.Credibility, 1e-12)
}

func TestSuggestSkipsExactMatches(t *testing.T) {
	c, _, table := newTestCorrector(t, DefaultConfig())
	xi, _ := table.ID("xi")
	xian, _ := table.ID("xian")

	for _, s := range c.Suggest("xian", 0) {
		assert.NotEqual(t, xi, s.SyllableID)
		assert.NotEqual(t, xian, s.SyllableID)
	}
}

func TestSuggestDelimiters(t *testing.T) {
	c, _, table := newTestCorrector(t, DefaultConfig())
	xi, _ := table.ID("xi")

	got := c.Suggest("xu'an", 0)
	_, ok := find(got, xi, 3)
	assert.True(t, ok, "suggestion should consume the delimiter: %v", got)
	for _, s := range got {
		assert.NotEqual(t, 2, s.End)
	}
}

func TestSuggestDisabled(t *testing.T) {
	c, _, _ := newTestCorrector(t, DefaultConfig())
	assert.Nil(t, c.Suggest("xuan", 4))
	assert.Nil(t, c.Suggest("xuan", -1))

	cfg := DefaultConfig()
	cfg.MaxDistance = 0
	off, _, _ := newTestCorrector(t, cfg)
	assert.Nil(t, off.Suggest("xuan", 0))
}

func TestCorrectionEdgesInGraph(t *testing.T) {
	c, p, table := newTestCorrector(t, DefaultConfig())
	xian, _ := table.ID("xian")
	an, _ := table.ID("an")

	syl := syllabify.New(p, syllabify.DefaultOptions())
	syl.EnableCorrection(c)
	g := syllabify.NewSyllableGraph()
	require.Equal(t, 4, syl.BuildSyllableGraph("xuan", g))

	whole, ok := g.Edge(0, 4, xian)
	require.True(t, ok)
	assert.True(t, whole.IsCorrection)
	assert.InDelta(t, -2.5+syllabify.CorrectionCredibility, whole.Credibility, 1e-9)

	tail, ok := g.Edge(2, 4, an)
	require.True(t, ok)
	assert.False(t, tail.IsCorrection)
	assert.InDelta(t, -1.5, tail.Credibility, 1e-12)
}
