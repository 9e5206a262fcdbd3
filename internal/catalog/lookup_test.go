package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load()
	require.NoError(t, err)
	return cat
}

func TestLookupExactMatch(t *testing.T) {
	t.Parallel()
	cat := mustLoad(t)

	matches := cat.Lookup("The Tower")
	require.Len(t, matches, 1)
	assert.Equal(t, "The Tower", matches[0].Name)

	// Number words and digits resolve to the same card.
	word := cat.Lookup("three of cups")
	digit := cat.Lookup("3 of cups")
	require.Len(t, word, 1)
	require.Len(t, digit, 1)
	assert.Equal(t, word[0].Name, digit[0].Name)
	assert.Equal(t, "Three of Cups", word[0].Name)
}

func TestLookupPrefixMatch(t *testing.T) {
	t.Parallel()
	cat := mustLoad(t)

	matches := cat.Lookup("the hiero")
	require.Len(t, matches, 1)
	assert.Equal(t, "The Hierophant", matches[0].Name)
}

func TestLookupAmbiguousPrefix(t *testing.T) {
	t.Parallel()
	cat := mustLoad(t)

	// Four knights share the prefix; all are returned, sorted by name.
	matches := cat.Lookup("knight")
	require.Len(t, matches, 4)
	for i := 1; i < len(matches); i++ {
		assert.Less(t, matches[i-1].Name, matches[i].Name)
	}
}

func TestLookupTokenContainment(t *testing.T) {
	t.Parallel()
	cat := mustLoad(t)

	// Out-of-order tokens still resolve when every token appears.
	matches := cat.Lookup("pentacles ace")
	require.Len(t, matches, 1)
	assert.Equal(t, "Ace of Pentacles", matches[0].Name)
}

func TestLookupFuzzyMatch(t *testing.T) {
	t.Parallel()
	cat := mustLoad(t)

	matches := cat.Lookup("towr")
	require.Len(t, matches, 1)
	assert.Equal(t, "The Tower", matches[0].Name)
}

func TestLookupNoMatch(t *testing.T) {
	t.Parallel()
	cat := mustLoad(t)

	assert.Empty(t, cat.Lookup("xqzvwj"))
	assert.Empty(t, cat.Lookup(""))
	assert.Empty(t, cat.Lookup("   "))
}

func TestLookupDiacritics(t *testing.T) {
	t.Parallel()
	cat := mustLoad(t)

	matches := cat.Lookup("thé hérmit")
	require.Len(t, matches, 1)
	assert.Equal(t, "The Hermit", matches[0].Name)
}
