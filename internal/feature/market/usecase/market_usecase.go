// Package usecase implements the market-data cache gateway: cache-aside reads
// over an expiring store in front of the upstream provider, with per-data-class
// TTLs and response shaping.
package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jhansali/tradelab/internal/feature/market/domain/entity"
)

const (
	// assetsCacheKey identifies the cached active US-equity asset master list.
	assetsCacheKey = "alpaca:assets:us_equity_active"
	// assetsTTL is the master-list TTL; reference data moves slowly.
	assetsTTL = 6 * time.Hour
	// quotesTTL is the quotes TTL; quotes are the most volatile class.
	quotesTTL = 20 * time.Second
	// chartTTL is the chart TTL.
	chartTTL = 60 * time.Second

	chartTimeframe = "1Hour"
	chartLimit     = 24
	chartLookback  = 48 * time.Hour
)

// MarketData abstracts the upstream provider client.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketData interface {
	// FetchAssets lists all active assets of one asset class.
	FetchAssets(ctx context.Context) ([]entity.Asset, error)
	// FetchLatestQuotes fetches latest quotes for the given symbols.
	FetchLatestQuotes(ctx context.Context, symbols []string) (map[string]entity.ProviderQuote, error)
	// FetchBars fetches bars for one symbol, ascending; zero start is omitted.
	FetchBars(ctx context.Context, symbol, timeframe string, limit int, start time.Time) ([]entity.ProviderBar, error)
}

// Store abstracts the expiring key-value store. Both methods are best effort:
// a failed read is a miss and a failed write is skipped.
type Store interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration)
}

// marketUsecase is the cache-aside gateway over MarketData and Store.
type marketUsecase struct {
	market MarketData
	store  Store
	feed   string
	now    func() time.Time
}

// NewMarketUsecase creates a marketUsecase. feed names the upstream data tier
// and is part of every quote/chart cache key so feeds never mix.
func NewMarketUsecase(market MarketData, store Store, feed string) *marketUsecase {
	return &marketUsecase{
		market: market,
		store:  store,
		feed:   feed,
		now:    time.Now,
	}
}

// Search returns ranked symbol matches for query. The asset master list is
// fetched (cache-aside, 6h TTL) even for an empty query to keep it warm; an
// empty trimmed query then returns no results without ranking.
func (m *marketUsecase) Search(ctx context.Context, query string) ([]entity.SearchHit, error) {
	assets, err := m.activeAssets(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToUpper(strings.TrimSpace(query))
	if query == "" {
		return []entity.SearchHit{}, nil
	}
	return Rank(query, assets), nil
}

// activeAssets returns the active US-equity asset master list, cache-aside.
func (m *marketUsecase) activeAssets(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	if m.store.GetJSON(ctx, assetsCacheKey, &assets) {
		return assets, nil
	}

	assets, err := m.market.FetchAssets(ctx)
	if err != nil {
		return nil, err
	}
	m.store.SetJSON(ctx, assetsCacheKey, assets, assetsTTL)
	return assets, nil
}

// Quotes returns shaped latest quotes for the given symbols, cache-aside with
// a 20s TTL. Symbols are trimmed, uppercased and sorted into the cache key so
// that differently-ordered but identical sets share one entry. Every requested
// symbol appears in the result, with null prices when the provider omitted it.
func (m *marketUsecase) Quotes(ctx context.Context, symbols []string) (entity.QuotesPayload, error) {
	parsed := normalizeSymbols(symbols)
	if len(parsed) == 0 {
		return entity.QuotesPayload{}, ErrNoSymbols
	}

	sorted := append([]string(nil), parsed...)
	sort.Strings(sorted)
	key := "quotes:" + m.feed + ":" + strings.Join(sorted, ",")

	var cached entity.QuotesPayload
	if m.store.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	raw, err := m.market.FetchLatestQuotes(ctx, sorted)
	if err != nil {
		return entity.QuotesPayload{}, err
	}

	quotes := make(map[string]entity.Quote, len(parsed))
	for _, sym := range parsed {
		quotes[sym] = shapeQuote(sym, raw[sym])
	}
	payload := entity.QuotesPayload{
		AsOf:   m.now().UTC().Format(time.RFC3339Nano),
		Quotes: quotes,
	}

	m.store.SetJSON(ctx, key, payload, quotesTTL)
	return payload, nil
}

// Chart returns the shaped hourly bar series for one symbol, cache-aside with
// a 60s TTL. The key encodes timeframe, limit and feed so a future parameter
// change cannot collide with a stale entry. Bars missing a timestamp or close
// are silently dropped. Provider errors propagate to the caller untranslated;
// the transport layer maps them for this path specifically.
func (m *marketUsecase) Chart(ctx context.Context, symbol string) (entity.Chart, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := fmt.Sprintf("chart:%s:%d:%s:%s", chartTimeframe, chartLimit, m.feed, symbol)

	var cached entity.Chart
	if m.store.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	start := m.now().UTC().Add(-chartLookback)
	bars, err := m.market.FetchBars(ctx, symbol, chartTimeframe, chartLimit, start)
	if err != nil {
		return entity.Chart{}, err
	}

	points := make([]entity.ChartPoint, 0, len(bars))
	for _, b := range bars {
		if b.T == nil || b.C == nil {
			continue
		}
		points = append(points, entity.ChartPoint{T: *b.T, C: *b.C})
	}
	chart := entity.Chart{
		Symbol: symbol,
		AsOf:   m.now().UTC().Format(time.RFC3339Nano),
		Points: points,
	}

	m.store.SetJSON(ctx, key, chart, chartTTL)
	return chart, nil
}

// normalizeSymbols trims, uppercases and drops empty entries.
func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// shapeQuote maps a raw provider quote onto the response schema. The midpoint
// rule: last is the bid/ask mean rounded to 4 decimals when both sides exist,
// the present side when only one exists, and null when neither does.
func shapeQuote(symbol string, q entity.ProviderQuote) entity.Quote {
	var last *float64
	switch {
	case q.Bid != nil && q.Ask != nil:
		v := math.Round((*q.Bid+*q.Ask)/2*10000) / 10000
		last = &v
	case q.Ask != nil:
		v := *q.Ask
		last = &v
	case q.Bid != nil:
		v := *q.Bid
		last = &v
	}
	return entity.Quote{
		Symbol:    symbol,
		Last:      last,
		Bid:       q.Bid,
		Ask:       q.Ask,
		UpdatedAt: q.Timestamp,
	}
}
