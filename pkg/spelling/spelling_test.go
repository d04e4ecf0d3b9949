package spelling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOrder(t *testing.T) {
	ordered := []Type{Normal, Fuzzy, AbbreviatedWholeSyllable, AbbreviatedSingleChar, Completion, Invalid}
	for i := 1; i < len(ordered); i++ {
		assert.True(t, ordered[i-1].Better(ordered[i]), "%s should beat %s", ordered[i-1], ordered[i])
		assert.False(t, ordered[i].Better(ordered[i-1]))
	}
	assert.False(t, Normal.Better(Normal))
	assert.True(t, Completion.Valid())
	assert.False(t, Invalid.Valid())
}

func TestTypeText(t *testing.T) {
	text, err := Fuzzy.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fuzzy", string(text))

	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("completion")))
	assert.Equal(t, Completion, typ)
	assert.Error(t, typ.UnmarshalText([]byte("bogus")))

	parsed, err := ParseType(" Abbrev_Char ")
	require.NoError(t, err)
	assert.Equal(t, AbbreviatedSingleChar, parsed)

	_, err = ParseType("phonetic")
	assert.Error(t, err)
	assert.Equal(t, "Type(9)", Type(9).String())
}
