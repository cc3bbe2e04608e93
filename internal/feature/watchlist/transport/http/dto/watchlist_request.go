// Package dto defines data transfer objects for the watchlist feature's HTTP transport layer.
package dto

// AddSymbolReq represents the request body for adding a watchlist symbol.
type AddSymbolReq struct {
	Symbol string `json:"symbol" binding:"required"`
}

// SymbolsRes wraps the user's current watchlist symbols.
type SymbolsRes struct {
	Symbols []string `json:"symbols"`
}
