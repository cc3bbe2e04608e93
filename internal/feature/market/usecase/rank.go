package usecase

import (
	"strings"

	"github.com/jhansali/tradelab/internal/feature/market/domain/entity"
)

// maxSearchResults caps the number of symbol-search results.
const maxSearchResults = 10

// Rank matches query against the asset list and returns an ordered,
// deduplicated, capped result list. It is pure and deterministic.
//
// Matching is a strict two-tier stable partition, not a scored fuzzy match:
// symbols starting with query come first, then symbols merely containing it,
// each tier preserving the asset list's original order. Duplicate symbols are
// emitted once. query must already be uppercased and trimmed.
func Rank(query string, assets []entity.Asset) []entity.SearchHit {
	var starts, contains []entity.Asset
	for _, a := range assets {
		symbol := strings.ToUpper(a.Symbol)
		switch {
		case strings.HasPrefix(symbol, query):
			starts = append(starts, a)
		case strings.Contains(symbol, query):
			contains = append(contains, a)
		}
	}

	results := make([]entity.SearchHit, 0, maxSearchResults)
	seen := make(map[string]struct{}, maxSearchResults)
	for _, a := range append(starts, contains...) {
		symbol := strings.ToUpper(a.Symbol)
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		results = append(results, entity.SearchHit{Symbol: symbol, Name: a.Name})
		if len(results) >= maxSearchResults {
			break
		}
	}
	return results
}
