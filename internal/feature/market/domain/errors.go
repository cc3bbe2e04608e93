// Package domain defines domain-level errors for the market feature.
package domain

import "fmt"

// UpstreamError is a non-2xx response from the market-data provider. It
// carries the upstream status and body so upper layers can decide how much
// of it to expose; network-level failures are ordinary wrapped errors and
// never take this type.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("provider http %d: %s", e.StatusCode, e.Body)
}
