// Package entity defines the domain models for the market feature.
package entity

// Asset is one entry of the provider's asset master list. The full active
// US-equity list is fetched and cached wholesale; identity is the symbol,
// normalized to uppercase everywhere in the gateway.
type Asset struct {
	ID       string `json:"id"`
	Class    string `json:"class"`
	Exchange string `json:"exchange"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Tradable bool   `json:"tradable"`
}

// SearchHit is one ranked symbol-search result.
type SearchHit struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
