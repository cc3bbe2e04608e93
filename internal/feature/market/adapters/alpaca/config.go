// Package alpaca provides a client for the Alpaca market-data and trading APIs.
package alpaca

// Config holds connection settings for the Alpaca APIs.
type Config struct {
	KeyID     string // API key id, sent as APCA-API-KEY-ID
	SecretKey string // API secret, sent as APCA-API-SECRET-KEY
	DataBase  string // Base URL of the market-data API
	TradeBase string // Base URL of the trading/reference API
	Feed      string // Data feed tier requested for quotes and bars
}
