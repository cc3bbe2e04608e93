// Package dto defines response DTOs for the market feature's HTTP surface.
package dto

// SearchItem is one symbol-search result entry.
type SearchItem struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SearchResponse wraps the ranked search results.
type SearchResponse struct {
	Results []SearchItem `json:"results"`
}
