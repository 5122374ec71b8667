package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveISO2(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		c, ok := ResolveISO2("UA")
		require.True(t, ok)
		assert.Equal(t, "Ukraine", c.Name)
		assert.InDelta(t, 48.38, c.Lat, 0.001)
		assert.Positive(t, c.Population)
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		c, ok := ResolveISO2(" ua ")
		require.True(t, ok)
		assert.Equal(t, "Ukraine", c.Name)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, ok := ResolveISO2("XX")
		assert.False(t, ok)
	})

	t.Run("empty code", func(t *testing.T) {
		_, ok := ResolveISO2("")
		assert.False(t, ok)
	})
}

func TestResolveISO3(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		c, ok := ResolveISO3("ukr")
		require.True(t, ok)
		assert.Equal(t, "Ukraine", c.Name)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, ok := ResolveISO3("ZZZ")
		assert.False(t, ok)
	})
}

func TestCorrelationPairCodesResolve(t *testing.T) {
	// Every ISO-3 code the arc table can reference must resolve, otherwise
	// pairs silently disappear from the map.
	codes := []string{
		"RUS", "UKR", "ISR", "PSE", "LBN", "IRN", "ARM", "AZE", "IND", "PAK",
		"AFG", "ETH", "ERI", "SDN", "SSD", "COD", "RWA", "MLI", "BFA", "NER",
		"YEM", "SAU", "PRK", "KOR", "CHN", "TWN",
	}
	for _, code := range codes {
		_, ok := ResolveISO3(code)
		assert.True(t, ok, "centroid missing for %s", code)
	}
}
