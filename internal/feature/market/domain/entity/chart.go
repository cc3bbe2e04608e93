package entity

// ChartPoint is a single close price at a point in time.
type ChartPoint struct {
	T string  `json:"t"` // Bar timestamp, RFC 3339, as delivered by the provider
	C float64 `json:"c"` // Close price
}

// Chart is the shaped bar series for one symbol, ascending by time.
// AsOf is the wall-clock time the response was built, not a provider value.
type Chart struct {
	Symbol string       `json:"symbol"`
	AsOf   string       `json:"asOf"`
	Points []ChartPoint `json:"points"`
}
