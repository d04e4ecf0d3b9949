// Package corrector suggests syllables for mistyped keystrokes. A suggestion
// is a syllable whose spelling lies within a small edit distance of the input
// at some position, scored by how plausible the typo is on a QWERTY keyboard.
package corrector

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"

	"github.com/bastiangx/syllabix/pkg/prism"
	"github.com/bastiangx/syllabix/pkg/spelling"
	"github.com/charmbracelet/log"
)

// Config tunes the tolerance search.
type Config struct {
	MaxDistance   int
	MinLength     int
	NearKeyCost   float64
	TransposeCost float64
	EditCost      float64
}

// DefaultConfig returns the tolerance used when none is configured.
func DefaultConfig() Config {
	return Config{
		MaxDistance:   1,
		MinLength:     2,
		NearKeyCost:   0.5,
		TransposeCost: 0.6,
		EditCost:      1.0,
	}
}

type target struct {
	text string
	id   spelling.SyllableID
	cred float64
}

// Corrector searches a prism's normal spellings for near misses. It is
// read-only after New and safe for concurrent use.
type Corrector struct {
	prism   *prism.Prism
	cfg     Config
	targets []target
}

// New collects the normal spellings of p that are long enough to correct.
func New(p *prism.Prism, cfg Config) *Corrector {
	c := &Corrector{prism: p, cfg: cfg}
	p.Visit(func(text string, s spelling.Spelling) bool {
		if s.Type == spelling.Normal && len(text) >= cfg.MinLength {
			c.targets = append(c.targets, target{text: text, id: s.SyllableID, cred: s.Credibility})
		}
		return true
	})
	log.Debugf("Corrector ready: %d correctable spellings, max distance %d", len(c.targets), cfg.MaxDistance)
	return c
}

type edgeKey struct {
	end int
	id  spelling.SyllableID
}

// Suggest returns syllables that the input at pos may have been meant to
// spell. Syllables the prism already matches at pos with a normal or fuzzy
// spelling are left out.
func (c *Corrector) Suggest(input string, pos int) []spelling.Spelling {
	if pos < 0 || pos >= len(input) || c.cfg.MaxDistance <= 0 {
		return nil
	}

	// abbreviations and completions only cover part of a syllable, so they
	// do not rule out a correction of the whole of it
	exact := mapset.NewThreadUnsafeSet[spelling.SyllableID]()
	for _, s := range c.prism.Lookup(input, pos) {
		if s.Type == spelling.Normal || s.Type == spelling.Fuzzy {
			exact.Add(s.SyllableID)
		}
	}

	delimiters := c.prism.Delimiters()
	best := make(map[edgeKey]float64)
	for _, t := range c.targets {
		if exact.Contains(t.id) {
			continue
		}
		for l := len(t.text) - c.cfg.MaxDistance; l <= len(t.text)+c.cfg.MaxDistance; l++ {
			if l < 1 || pos+l > len(input) {
				continue
			}
			typed := input[pos : pos+l]
			if strings.ContainsAny(typed, delimiters) {
				continue
			}
			d := edlib.OSADamerauLevenshteinDistance(typed, t.text)
			if d == 0 || d > c.cfg.MaxDistance {
				continue
			}
			key := edgeKey{end: skipDelimiters(input, pos+l, delimiters), id: t.id}
			cred := t.cred - c.cost(typed, t.text, d)
			if current, ok := best[key]; !ok || cred > current {
				best[key] = cred
			}
		}
	}

	out := make([]spelling.Spelling, 0, len(best))
	for key, cred := range best {
		out = append(out, spelling.Spelling{
			End:         key.end,
			SyllableID:  key.id,
			Type:        spelling.Normal,
			Credibility: cred,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].End != out[j].End {
			return out[i].End < out[j].End
		}
		return out[i].SyllableID < out[j].SyllableID
	})
	return out
}

// cost weighs an edit of distance d turning typed into want.
func (c *Corrector) cost(typed, want string, d int) float64 {
	if d == 1 {
		if a, b, ok := singleSubstitution(typed, want); ok && nearKeys(a, b) {
			return c.cfg.NearKeyCost
		}
		if isOneAdjacentSwap(typed, want) {
			return c.cfg.TransposeCost
		}
	}
	return float64(d) * c.cfg.EditCost
}

func skipDelimiters(input string, end int, delimiters string) int {
	for end < len(input) && strings.IndexByte(delimiters, input[end]) >= 0 {
		end++
	}
	return end
}
