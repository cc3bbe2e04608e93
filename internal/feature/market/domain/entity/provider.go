package entity

// ProviderQuote is the raw latest quote for one symbol as returned by the
// provider. Prices are pointers: the provider omits sides it has no data for.
type ProviderQuote struct {
	Bid       *float64 `json:"bp"`
	Ask       *float64 `json:"ap"`
	Timestamp *string  `json:"t"`
}

// ProviderBar is one raw bar from the provider. Fields are pointers because
// partial bars occur and are filtered out during shaping, not surfaced as errors.
type ProviderBar struct {
	T *string  `json:"t"`
	C *float64 `json:"c"`
}
