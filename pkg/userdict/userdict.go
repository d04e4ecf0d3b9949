// Package userdict keeps user-defined syllables in a Redis hash so they
// survive restarts and can be shared between server instances.
package userdict

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/syllabix/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the hash the syllables are stored under.
const DefaultKey = "syllabix:user_syllables"

// UserDict wraps a Redis client. Each hash field is a syllable and its value
// the syllable's weight.
type UserDict struct {
	client redis.Cmdable
	key    string
}

// New creates a UserDict stored under key, or DefaultKey when key is empty.
func New(client redis.Cmdable, key string) *UserDict {
	if key == "" {
		key = DefaultKey
	}
	return &UserDict{client: client, key: key}
}

// Add stores a syllable with a positive weight, replacing any previous one.
func (ud *UserDict) Add(ctx context.Context, syllable string, weight float64) error {
	syllable = strings.ToLower(strings.TrimSpace(syllable))
	if syllable == "" {
		return fmt.Errorf("userdict: empty syllable")
	}
	if weight <= 0 {
		return fmt.Errorf("userdict: weight for %q must be positive, got %g", syllable, weight)
	}
	return ud.client.HSet(ctx, ud.key, syllable, weight).Err()
}

// Remove deletes a syllable.
func (ud *UserDict) Remove(ctx context.Context, syllable string) error {
	return ud.client.HDel(ctx, ud.key, strings.ToLower(syllable)).Err()
}

// Syllables returns every stored syllable with its weight. Fields whose value
// is not a positive number are skipped.
func (ud *UserDict) Syllables(ctx context.Context) (map[string]float64, error) {
	raw, err := ud.client.HGetAll(ctx, ud.key).Result()
	if err != nil {
		return nil, fmt.Errorf("userdict: failed to read %s: %w", ud.key, err)
	}
	out := make(map[string]float64, len(raw))
	for syllable, value := range raw {
		w, err := strconv.ParseFloat(value, 64)
		if err != nil || w <= 0 {
			log.Warnf("Skipping user syllable %q with invalid weight %q", syllable, value)
			continue
		}
		out[syllable] = w
	}
	return out, nil
}

// Merge adds user syllables to table. Weights are scaled against the
// heaviest user syllable; known syllables keep the better credibility and
// new ones get ids after the existing rows, in lexical order. It returns the
// number of syllables appended.
func Merge(table *dictionary.Table, syllables map[string]float64) int {
	texts := make([]string, 0, len(syllables))
	for text := range syllables {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	weights := make([]float64, len(texts))
	for i, text := range texts {
		weights[i] = syllables[text]
	}
	creds := dictionary.WeightsToCredibility(weights)

	before := table.Len()
	for i, text := range texts {
		if weights[i] <= 0 {
			continue
		}
		table.Add(text, creds[i])
	}
	added := table.Len() - before
	log.Debugf("Merged %d user syllables, %d new", len(texts), added)
	return added
}
