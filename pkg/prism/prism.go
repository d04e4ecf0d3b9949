// Package prism indexes every spelling of every syllable in a patricia trie so
// that all syllables starting at a given input position can be found with a
// single prefix walk.
package prism

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bastiangx/syllabix/pkg/dictionary"
	"github.com/bastiangx/syllabix/pkg/spelling"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ExpandSearchLimit caps the syllables considered for one completion.
const ExpandSearchLimit = 512

var errStopVisit = errors.New("prism: stop visit")

type entry struct {
	id   spelling.SyllableID
	typ  spelling.Type
	cred float64
}

// Prism maps spellings to the syllables they may stand for. It is read-only
// once built and safe for concurrent lookups.
type Prism struct {
	trie       *patricia.Trie
	table      *dictionary.Table
	delimiters string
	completion bool
	keys       int
	spellings  int
}

// New builds a prism from table, deriving extra spellings with rules.
// Delimiters following a spelling are consumed as part of its edge.
func New(table *dictionary.Table, rules []Rule, delimiters string) (*Prism, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, fmt.Errorf("prism: %w", err)
	}
	p := &Prism{
		trie:       patricia.NewTrie(),
		table:      table,
		delimiters: delimiters,
		completion: true,
	}
	for i, s := range table.Syllables {
		id := spelling.SyllableID(i)
		for _, d := range apply(compiled, s.Text, s.Credibility) {
			p.insert(d.text, entry{id: id, typ: d.typ, cred: d.cred})
		}
	}
	log.Debugf("Prism built: %d syllables, %d spellings under %d keys", table.Len(), p.spellings, p.keys)
	return p, nil
}

func (p *Prism) insert(text string, e entry) {
	key := patricia.Prefix(text)
	item := p.trie.Get(key)
	if item == nil {
		p.trie.Insert(key, []entry{e})
		p.keys++
		p.spellings++
		return
	}
	entries := item.([]entry)
	for i, existing := range entries {
		if existing.id != e.id {
			continue
		}
		if e.typ.Better(existing.typ) || (e.typ == existing.typ && e.cred > existing.cred) {
			entries[i] = e
		}
		return
	}
	p.trie.Set(key, append(entries, e))
	p.spellings++
}

// SetCompletion turns the completion search of Lookup on or off. It is on
// for a new prism and must not be changed while lookups are running.
func (p *Prism) SetCompletion(enabled bool) {
	p.completion = enabled
}

// Lookup returns the spellings that start at pos. Exact spellings end where
// they end, extended over any delimiters that follow. When the rest of the
// input is a proper prefix of longer spellings and completion is enabled, one
// Completion spelling per syllable is returned ending at len(input).
func (p *Prism) Lookup(input string, pos int) []spelling.Spelling {
	if pos < 0 || pos >= len(input) {
		return nil
	}
	rest := input[pos:]

	var out []spelling.Spelling
	err := p.trie.VisitPrefixes(patricia.Prefix(rest), func(prefix patricia.Prefix, item patricia.Item) error {
		if len(prefix) == 0 {
			return nil
		}
		end := p.skipDelimiters(input, pos+len(prefix))
		for _, e := range item.([]entry) {
			out = append(out, spelling.Spelling{
				End:         end,
				SyllableID:  e.id,
				Type:        e.typ,
				Credibility: e.cred,
			})
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting prism prefixes: %v", err)
	}

	if p.completion {
		out = append(out, p.completions(rest, len(input))...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		return out[i].SyllableID < out[j].SyllableID
	})
	return out
}

// completions lists syllables whose spellings extend rest.
func (p *Prism) completions(rest string, end int) []spelling.Spelling {
	best := make(map[spelling.SyllableID]float64)
	visited := 0
	err := p.trie.VisitSubtree(patricia.Prefix(rest), func(prefix patricia.Prefix, item patricia.Item) error {
		if len(prefix) == len(rest) {
			return nil
		}
		for _, e := range item.([]entry) {
			if e.typ != spelling.Normal {
				continue
			}
			if cred, ok := best[e.id]; !ok || e.cred > cred {
				best[e.id] = e.cred
			}
		}
		visited++
		if visited >= ExpandSearchLimit {
			return errStopVisit
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Errorf("Error visiting prism subtree: %v", err)
	}

	out := make([]spelling.Spelling, 0, len(best))
	for id, cred := range best {
		out = append(out, spelling.Spelling{
			End:         end,
			SyllableID:  id,
			Type:        spelling.Completion,
			Credibility: cred,
		})
	}
	return out
}

func (p *Prism) skipDelimiters(input string, end int) int {
	for end < len(input) && strings.IndexByte(p.delimiters, input[end]) >= 0 {
		end++
	}
	return end
}

// Visit calls fn for every (spelling, syllable) pair in the prism. Returning
// false stops the walk.
func (p *Prism) Visit(fn func(text string, s spelling.Spelling) bool) {
	err := p.trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		text := string(prefix)
		for _, e := range item.([]entry) {
			if !fn(text, spelling.Spelling{End: len(text), SyllableID: e.id, Type: e.typ, Credibility: e.cred}) {
				return errStopVisit
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopVisit) {
		log.Errorf("Error visiting prism: %v", err)
	}
}

// SyllableText returns the canonical spelling of id.
func (p *Prism) SyllableText(id spelling.SyllableID) string {
	return p.table.Text(id)
}

// Delimiters returns the separator characters the prism consumes.
func (p *Prism) Delimiters() string {
	return p.delimiters
}

// Stats reports the size of the prism: syllables, distinct spelling keys and
// (spelling, syllable) pairs.
func (p *Prism) Stats() map[string]int {
	return map[string]int{
		"syllables": p.table.Len(),
		"keys":      p.keys,
		"spellings": p.spellings,
	}
}
