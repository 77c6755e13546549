// Package countryutils resolves free-text country names from order exports
// to ISO 3166-1 alpha-2 codes. The reference table is embedded and carries,
// next to the English short name, the localized spellings that CardMarket
// buyers actually enter (German names, official long forms).
package countryutils

import (
	_ "embed"
	"sort"
	"strings"

	"fjacquet/cardmarket-lexoffice/internal/pipelineerror"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var countriesYAML []byte

type countryEntry struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
}

var entries = mustLoadEntries()

func mustLoadEntries() []countryEntry {
	var loaded []countryEntry
	if err := yaml.Unmarshal(countriesYAML, &loaded); err != nil {
		panic("countryutils: invalid embedded country table: " + err.Error())
	}
	// Stable name order makes the substring fallback deterministic.
	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].Name < loaded[j].Name
	})
	return loaded
}

// ResolveCode maps a country name to its two-letter code.
//
// Resolution is staged: an exact case-sensitive match against names and
// aliases wins outright; then case-insensitive equality; then a
// case-insensitive substring match where the query must be contained in a
// table name or alias. Substring matching is ambiguous by nature (see
// "Niger" vs "Nigeria"), so the longest containing name wins and ties break
// on table order, which makes the fallback deterministic.
func ResolveCode(countryName string) (string, error) {
	query := strings.TrimSpace(countryName)
	if query == "" {
		return "", &pipelineerror.UnknownCountryError{Name: countryName}
	}

	for _, entry := range entries {
		if query == entry.Name {
			return entry.Code, nil
		}
		for _, alias := range entry.Aliases {
			if query == alias {
				return entry.Code, nil
			}
		}
	}

	lowerQuery := strings.ToLower(query)
	for _, entry := range entries {
		if lowerQuery == strings.ToLower(entry.Name) {
			return entry.Code, nil
		}
		for _, alias := range entry.Aliases {
			if lowerQuery == strings.ToLower(alias) {
				return entry.Code, nil
			}
		}
	}

	bestCode, bestLen := "", 0
	for _, entry := range entries {
		for _, candidate := range append([]string{entry.Name}, entry.Aliases...) {
			if strings.Contains(strings.ToLower(candidate), lowerQuery) && len(candidate) > bestLen {
				bestCode, bestLen = entry.Code, len(candidate)
			}
		}
	}
	if bestCode != "" {
		return bestCode, nil
	}

	return "", &pipelineerror.UnknownCountryError{Name: countryName}
}
