// Package di provides dependency injection factories for creating application components.
package di

import (
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/jhansali/tradelab/internal/config"
	"github.com/jhansali/tradelab/internal/feature/market/adapters/alpaca"
	markethandler "github.com/jhansali/tradelab/internal/feature/market/transport/handler"
	marketusecase "github.com/jhansali/tradelab/internal/feature/market/usecase"
	"github.com/jhansali/tradelab/internal/platform/cache"
	infrahttp "github.com/jhansali/tradelab/internal/platform/http"
)

// NewMarketHandler builds the market gateway stack: one shared HTTP client,
// the Alpaca client, the expiring cache store and the cache-aside usecase.
// rdb may be nil, in which case the gateway runs uncached.
func NewMarketHandler(cfg config.Config, rdb *redisv9.Client) *markethandler.MarketHandler {
	httpClient := infrahttp.NewHTTPClient(cfg.Alpaca.Timeout)
	client := alpaca.NewClient(alpaca.Config{
		KeyID:     cfg.Alpaca.KeyID,
		SecretKey: cfg.Alpaca.SecretKey,
		DataBase:  cfg.Alpaca.DataBase,
		TradeBase: cfg.Alpaca.TradeBase,
		Feed:      cfg.Alpaca.Feed,
	}, httpClient)
	store := cache.NewStore(rdb)
	uc := marketusecase.NewMarketUsecase(client, store, cfg.Alpaca.Feed)
	return markethandler.NewMarketHandler(uc)
}
