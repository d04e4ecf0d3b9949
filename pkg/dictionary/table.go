// Package dictionary loads syllable tables: the list of syllables a prism is
// compiled from, each with its id and base credibility.
package dictionary

import (
	"errors"
	"math"

	"github.com/bastiangx/syllabix/pkg/spelling"
)

// ErrEmptyTable is returned when a source yields no syllables.
var ErrEmptyTable = errors.New("dictionary: table has no syllables")

// Syllable is one row of a table. Its id is its position in Table.Syllables.
type Syllable struct {
	Text        string  `msgpack:"t"`
	Credibility float64 `msgpack:"c"`
}

// Table is an ordered set of syllables.
type Table struct {
	Syllables []Syllable `msgpack:"s"`

	byText map[string]spelling.SyllableID
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byText: make(map[string]spelling.SyllableID)}
}

// Add appends a syllable and returns its id. Adding a known syllable keeps
// the higher credibility and returns the existing id.
func (t *Table) Add(text string, credibility float64) spelling.SyllableID {
	if t.byText == nil {
		t.reindex()
	}
	credibility = math.Min(credibility, 0)
	if id, ok := t.byText[text]; ok {
		if credibility > t.Syllables[id].Credibility {
			t.Syllables[id].Credibility = credibility
		}
		return id
	}
	id := spelling.SyllableID(len(t.Syllables))
	t.Syllables = append(t.Syllables, Syllable{Text: text, Credibility: credibility})
	t.byText[text] = id
	return id
}

// ID returns the id of text.
func (t *Table) ID(text string) (spelling.SyllableID, bool) {
	if t.byText == nil {
		t.reindex()
	}
	id, ok := t.byText[text]
	return id, ok
}

// Text returns the syllable spelled by id, or "" for unknown ids.
func (t *Table) Text(id spelling.SyllableID) string {
	if id < 0 || int(id) >= len(t.Syllables) {
		return ""
	}
	return t.Syllables[id].Text
}

// Len returns the number of syllables.
func (t *Table) Len() int {
	return len(t.Syllables)
}

func (t *Table) reindex() {
	t.byText = make(map[string]spelling.SyllableID, len(t.Syllables))
	for i, s := range t.Syllables {
		t.byText[s.Text] = spelling.SyllableID(i)
	}
}

// WeightsToCredibility converts raw weights to log credibilities relative to
// the largest weight, so the most frequent syllable scores 0.
func WeightsToCredibility(weights []float64) []float64 {
	maxWeight := 0.0
	for _, w := range weights {
		maxWeight = math.Max(maxWeight, w)
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		if w <= 0 || maxWeight == 0 {
			out[i] = math.Inf(-1)
			continue
		}
		out[i] = math.Log(w / maxWeight)
	}
	return out
}
