package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanara/arcanara/internal/domain"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	t.Parallel()

	cat, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 78, cat.Size(), "a full deck has 78 cards")
	assert.Len(t, cat.MajorArcana(), 22)

	// Every card must be valid and indexed under its normalized name.
	for _, card := range cat.Cards() {
		require.NoError(t, card.Validate())
		found, ok := cat.ByName(card.Name)
		require.True(t, ok, "card %q not indexed", card.Name)
		assert.Same(t, card, found)
	}
}

func TestLoadRejectsBadData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: "not json at all",
		},
		{
			name: "empty dataset",
			data: "[]",
		},
		{
			name: "invalid card",
			data: `[{"name": "", "suit": "Major Arcana", "upright": "x", "reversed": "y"}]`,
		},
		{
			name: "duplicate normalized names",
			data: `[
				{"name": "The Fool", "suit": "Major Arcana", "upright": "x", "reversed": "y"},
				{"name": "Fool", "suit": "Major Arcana", "upright": "x", "reversed": "y"}
			]`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := load([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestByNameNormalizesQuery(t *testing.T) {
	t.Parallel()

	cat, err := Load()
	require.NoError(t, err)

	card, ok := cat.ByName("  the FOOL ")
	require.True(t, ok)
	assert.Equal(t, "The Fool", card.Name)
	assert.Equal(t, domain.SuitMajorArcana, card.Suit)

	_, ok = cat.ByName("no such card")
	assert.False(t, ok)
}
