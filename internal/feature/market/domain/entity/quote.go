package entity

// Quote is the shaped latest quote for a single symbol. Price fields are
// pointers so that "provider returned nothing" serializes as JSON null
// instead of zero. ChangePct is always null: the provider does not supply
// it in this flow.
type Quote struct {
	Symbol    string   `json:"symbol"`
	Last      *float64 `json:"last"`
	Bid       *float64 `json:"bid"`
	Ask       *float64 `json:"ask"`
	ChangePct *float64 `json:"changePct"`
	UpdatedAt *string  `json:"updatedAt"`
}

// QuotesPayload is the cached and returned result of a quotes query.
// Every requested symbol has an entry, even when the provider omitted it.
type QuotesPayload struct {
	AsOf   string           `json:"asOf"`
	Quotes map[string]Quote `json:"quotes"`
}
