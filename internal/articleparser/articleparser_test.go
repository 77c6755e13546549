package articleparser

import (
	"errors"
	"testing"

	"fjacquet/cardmarket-lexoffice/internal/models"
	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArticlesSingleItem(t *testing.T) {
	articles, err := ParseArticles("1001",
		"3x Lightning Bolt - M12 - Common - NM - English - 0,50 EUR",
		"P1",
		"Lightning Bolt")
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, models.Article{
		Quantity:      3,
		Name:          "Lightning Bolt",
		Number:        "M12",
		Rarity:        "Common",
		Condition:     "NM",
		Language:      "English",
		Price:         "0,50 EUR",
		ProductID:     "P1",
		LocalizedName: "Lightning Bolt",
	}, articles[0])
}

func TestParseArticlesMultipleItems(t *testing.T) {
	articles, err := ParseArticles("1002",
		"2x Counterspell - 7ED - Common - EX - English - 1,20 EUR | 1x Shock - M20 - Common - NM - German - 0,10 EUR",
		"P10 | P11",
		"Counterspell | Schock")
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, 2, articles[0].Quantity)
	assert.Equal(t, "Counterspell", articles[0].Name)
	assert.Equal(t, "P10", articles[0].ProductID)

	assert.Equal(t, 1, articles[1].Quantity)
	assert.Equal(t, "Shock", articles[1].Name)
	assert.Equal(t, "German", articles[1].Language)
	assert.Equal(t, "Schock", articles[1].LocalizedName)
}

func TestParseArticlesItemCountMismatch(t *testing.T) {
	_, err := ParseArticles("1003",
		"2x Counterspell - 7ED - Common - EX - English - 1,20 EUR | 1x Shock - M20 - Common - NM - German - 0,10 EUR",
		"P10",
		"Counterspell | Schock")

	var mismatchErr *pipelineerror.ItemCountMismatchError
	require.True(t, errors.As(err, &mismatchErr))
	assert.Equal(t, "1003", mismatchErr.OrderID)
	assert.Equal(t, 2, mismatchErr.Descriptions)
	assert.Equal(t, 1, mismatchErr.ProductIDs)
	assert.Equal(t, 2, mismatchErr.Names)
}

// A description with fewer than two dash-separated parts yields an article
// with all positional descriptors absent; it never fails at this stage.
func TestParseArticlesShortDescription(t *testing.T) {
	articles, err := ParseArticles("1004", "4x Giant Growth", "P2", "Giant Growth")
	require.NoError(t, err)
	require.Len(t, articles, 1)

	article := articles[0]
	assert.Equal(t, 4, article.Quantity)
	assert.Equal(t, "Giant Growth", article.Name)
	assert.Empty(t, article.Number)
	assert.Empty(t, article.Rarity)
	assert.Empty(t, article.Condition)
	assert.Empty(t, article.Language)
	assert.Empty(t, article.Price)
}

// Exactly five parts means no price field: the price only appears beyond
// the five recognized positions.
func TestParseArticlesNoPriceWithFiveParts(t *testing.T) {
	articles, err := ParseArticles("1005",
		"1x Opt - DOM - Common - NM - English", "P3", "Opt")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Empty(t, articles[0].Price)
	assert.Equal(t, "English", articles[0].Language)
}

func TestParseArticlesQuantityPrefix(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		quantity     int
		expectedName string
	}{
		{"No quantity prefix", "Lightning Bolt - M12", 0, ""},
		{"Name stops at parenthesis", "2x Llanowar Elves (V.1) - M19", 2, "Llanowar Elves"},
		{"Two-digit quantity", "12x Forest - UNH", 12, "Forest"},
		{"Three digits do not match as a whole", "123x Forest - UNH", 23, "Forest"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			articles, err := ParseArticles("1006", tc.description, "P", "N")
			require.NoError(t, err)
			require.Len(t, articles, 1)
			assert.Equal(t, tc.quantity, articles[0].Quantity)
			assert.Equal(t, tc.expectedName, articles[0].Name)
		})
	}
}
