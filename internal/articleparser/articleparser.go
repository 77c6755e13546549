// Package articleparser decodes the compact article cells of a CardMarket
// export row into structured Article records.
//
// A single row can encode several articles: the description, product id and
// localized name cells are each pipe-delimited lists that must align
// one-to-one. Each description is itself a " - "-separated micro-format:
//
//	3x Lightning Bolt - M12 - Common - NM - English - 0,50 EUR
//	^quantity+name      ^number ^rarity ^cond ^lang    ^unit price
package articleparser

import (
	"regexp"
	"strconv"
	"strings"

	"fjacquet/cardmarket-lexoffice/internal/models"
	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"
)

const (
	itemSeparator  = " | "
	fieldSeparator = " - "
)

// quantityPattern matches the "<1-2 digits>x <name>" prefix. The name runs
// until the next opening parenthesis, which starts edition or foil remarks.
var quantityPattern = regexp.MustCompile(`(\d{1,2})x\s+([^(]+)`)

// ParseArticles decodes one row's description, product-id and localized-name
// cells into the articles they encode, in input order.
//
// The three cells must agree on the number of pipe-delimited sub-items;
// disagreement returns an ItemCountMismatchError (orderID only identifies
// the row in the error). A description whose quantity prefix does not match
// yields an article with zero quantity and empty name, which is not an
// error here: the payload builder rejects the whole shipment later.
func ParseArticles(orderID, description, productID, localizedName string) ([]models.Article, error) {
	descriptions := strings.Split(description, itemSeparator)
	productIDs := strings.Split(productID, itemSeparator)
	names := strings.Split(localizedName, itemSeparator)

	if len(descriptions) != len(productIDs) || len(descriptions) != len(names) {
		return nil, &pipelineerror.ItemCountMismatchError{
			OrderID:      orderID,
			Descriptions: len(descriptions),
			ProductIDs:   len(productIDs),
			Names:        len(names),
		}
	}

	articles := make([]models.Article, 0, len(descriptions))
	for i := range descriptions {
		articles = append(articles, parseArticle(descriptions[i], productIDs[i], names[i]))
	}
	return articles, nil
}

func parseArticle(description, productID, localizedName string) models.Article {
	parts := strings.Split(description, fieldSeparator)

	article := models.Article{
		ProductID:     strings.TrimSpace(productID),
		LocalizedName: strings.TrimSpace(localizedName),
	}

	if head := strings.TrimSpace(parts[0]); head != "" {
		if matches := quantityPattern.FindStringSubmatch(head); matches != nil {
			// The pattern guarantees 1-2 digits, so Atoi cannot fail.
			article.Quantity, _ = strconv.Atoi(matches[1])
			article.Name = strings.TrimSpace(matches[2])
		}
	}

	if len(parts) > 1 {
		article.Number = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		article.Rarity = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		article.Condition = strings.TrimSpace(parts[3])
	}
	if len(parts) > 4 {
		article.Language = strings.TrimSpace(parts[4])
	}
	// Anything beyond the five recognized fields collapses into a trailing
	// unit price; with five or fewer parts the price stays absent.
	if len(parts) > 5 {
		article.Price = strings.TrimSpace(parts[len(parts)-1])
	}

	return article
}

