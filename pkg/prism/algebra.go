package prism

import (
	"fmt"
	"regexp"

	"github.com/bastiangx/syllabix/pkg/spelling"
)

// FuzzyPenalty and AbbreviationPenalty are log(0.5), charged to spellings
// produced by fuzz and abbrev rules.
const (
	FuzzyPenalty        = -0.6931471805599453
	AbbreviationPenalty = -0.6931471805599453
)

// Rule derives extra spellings from a syllable's spelling with a regexp
// replacement. Kind is one of "derive", "fuzz" or "abbrev".
type Rule struct {
	Kind        string `toml:"kind"`
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

type compiledRule struct {
	kind string
	re   *regexp.Regexp
	repl string
}

// DefaultRules abbreviates every syllable to its initial, and the "zh", "ch"
// and "sh" initials to their two letters.
func DefaultRules() []Rule {
	return []Rule{
		{Kind: "abbrev", Pattern: `^([zcs]h).+$`, Replacement: "$1"},
		{Kind: "abbrev", Pattern: `^([a-z]).+$`, Replacement: "$1"},
	}
}

func compileRules(rules []Rule) ([]compiledRule, error) {
	out := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		switch r.Kind {
		case "derive", "fuzz", "abbrev":
		default:
			return nil, fmt.Errorf("rule %d: unknown kind %q", i, r.Kind)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		out = append(out, compiledRule{kind: r.Kind, re: re, repl: r.Replacement})
	}
	return out, nil
}

// derivation is one spelling of a syllable with its classification.
type derivation struct {
	text string
	typ  spelling.Type
	cred float64
}

// apply runs the rules in order over the spellings derived so far; each rule
// sees the output of the previous ones.
func apply(rules []compiledRule, text string, cred float64) []derivation {
	out := []derivation{{text: text, typ: spelling.Normal, cred: cred}}
	seen := map[string]int{text: 0}
	for _, r := range rules {
		n := len(out)
		for i := 0; i < n; i++ {
			src := out[i]
			if !r.re.MatchString(src.text) {
				continue
			}
			derived := r.re.ReplaceAllString(src.text, r.repl)
			if derived == "" || derived == src.text {
				continue
			}
			typ, penalty := r.classify(derived)
			if src.typ > typ {
				typ = src.typ
			}
			d := derivation{text: derived, typ: typ, cred: src.cred + penalty}
			if j, ok := seen[derived]; ok {
				if d.typ.Better(out[j].typ) || (d.typ == out[j].typ && d.cred > out[j].cred) {
					out[j] = d
				}
				continue
			}
			seen[derived] = len(out)
			out = append(out, d)
		}
	}
	return out
}

func (r compiledRule) classify(derived string) (spelling.Type, float64) {
	switch r.kind {
	case "fuzz":
		return spelling.Fuzzy, FuzzyPenalty
	case "abbrev":
		if len(derived) == 1 {
			return spelling.AbbreviatedSingleChar, AbbreviationPenalty
		}
		return spelling.AbbreviatedWholeSyllable, AbbreviationPenalty
	default:
		return spelling.Normal, 0
	}
}
