// Package spelling defines the vocabulary shared by the syllabifier and the
// components that feed it: spelling classifications, the records a dictionary
// returns for a position, and the capability interfaces a dictionary or a
// corrector must satisfy.
package spelling

import (
	"fmt"
	"strings"
)

// SyllableID is the opaque identifier a dictionary assigns to a syllable.
type SyllableID int32

// Type classifies how a spelling relates to the syllable it stands for.
// Smaller values are preferred over larger ones.
type Type uint8

const (
	Normal Type = iota
	Fuzzy
	AbbreviatedWholeSyllable
	AbbreviatedSingleChar
	Completion
	Invalid
)

var typeNames = [...]string{
	Normal:                   "normal",
	Fuzzy:                    "fuzzy",
	AbbreviatedWholeSyllable: "abbrev",
	AbbreviatedSingleChar:    "abbrev_char",
	Completion:               "completion",
	Invalid:                  "invalid",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Better reports whether t is preferred over other.
func (t Type) Better(other Type) bool {
	return t < other
}

// Valid reports whether t may appear in a syllable graph.
func (t Type) Valid() bool {
	return t < Invalid
}

// ParseType maps a type name back to its Type. Unknown names yield Invalid.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Invalid, fmt.Errorf("unknown spelling type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Spelling is one candidate a dictionary or corrector reports for a start
// position: the input from that position up to End spells SyllableID.
// Credibility is a natural-log probability, 0 meaning certain.
type Spelling struct {
	End         int
	SyllableID  SyllableID
	Type        Type
	Credibility float64
}

// Dictionary supplies the spellings that start at a position of the input.
// It is consulted once per reachable position and must not retain input.
type Dictionary interface {
	Lookup(input string, pos int) []Spelling
}

// Corrector supplies typo-tolerant alternatives for a position of the input.
type Corrector interface {
	Suggest(input string, pos int) []Spelling
}
