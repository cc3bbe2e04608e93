package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jhansali/tradelab/internal/feature/market/domain/entity"
	"github.com/jhansali/tradelab/internal/feature/market/usecase"
)

// ErrUpstream is the sentinel shared between the mock and expectations.
var ErrUpstream = errors.New("upstream error")

// mockMarketData is a mock implementation of the MarketData interface.
type mockMarketData struct {
	FetchAssetsFunc       func(ctx context.Context) ([]entity.Asset, error)
	FetchLatestQuotesFunc func(ctx context.Context, symbols []string) (map[string]entity.ProviderQuote, error)
	FetchBarsFunc         func(ctx context.Context, symbol, timeframe string, limit int, start time.Time) ([]entity.ProviderBar, error)
	FetchAssetsCalls      int
	FetchQuotesCalls      int
	FetchBarsCalls        int
}

func (m *mockMarketData) FetchAssets(ctx context.Context) ([]entity.Asset, error) {
	m.FetchAssetsCalls++
	if m.FetchAssetsFunc != nil {
		return m.FetchAssetsFunc(ctx)
	}
	return nil, errors.New("FetchAssetsFunc is not implemented")
}

func (m *mockMarketData) FetchLatestQuotes(ctx context.Context, symbols []string) (map[string]entity.ProviderQuote, error) {
	m.FetchQuotesCalls++
	if m.FetchLatestQuotesFunc != nil {
		return m.FetchLatestQuotesFunc(ctx, symbols)
	}
	return nil, errors.New("FetchLatestQuotesFunc is not implemented")
}

func (m *mockMarketData) FetchBars(ctx context.Context, symbol, timeframe string, limit int, start time.Time) ([]entity.ProviderBar, error) {
	m.FetchBarsCalls++
	if m.FetchBarsFunc != nil {
		return m.FetchBarsFunc(ctx, symbol, timeframe, limit, start)
	}
	return nil, errors.New("FetchBarsFunc is not implemented")
}

// memStore is an in-memory Store fake that records keys and TTLs.
type memStore struct {
	values map[string]any
	ttls   map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{values: map[string]any{}, ttls: map[string]time.Duration{}}
}

func (s *memStore) GetJSON(ctx context.Context, key string, dest any) bool {
	v, ok := s.values[key]
	if !ok {
		return false
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(v))
	return true
}

func (s *memStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	s.values[key] = value
	s.ttls[key] = ttl
}

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

// TestMarketUsecase_Search verifies ranking, the empty-query warm-up and the
// master-list cache interaction.
func TestMarketUsecase_Search(t *testing.T) {
	ctx := context.Background()
	assets := []entity.Asset{
		{Symbol: "AAA", Name: "Alpha"},
		{Symbol: "BAAA", Name: "Beta"},
		{Symbol: "CAA", Name: "Gamma"},
	}

	t.Run("prefix matches rank before contains matches", func(t *testing.T) {
		mockData := &mockMarketData{
			FetchAssetsFunc: func(ctx context.Context) ([]entity.Asset, error) { return assets, nil },
		}
		uc := usecase.NewMarketUsecase(mockData, newMemStore(), "delayed_sip")

		hits, err := uc.Search(ctx, "AA")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []entity.SearchHit{
			{Symbol: "AAA", Name: "Alpha"},
			{Symbol: "BAAA", Name: "Beta"},
			{Symbol: "CAA", Name: "Gamma"},
		}
		if !reflect.DeepEqual(hits, want) {
			t.Errorf("result mismatch: got %v, want %v", hits, want)
		}
	})

	t.Run("empty query returns no results but still warms the master list", func(t *testing.T) {
		mockData := &mockMarketData{
			FetchAssetsFunc: func(ctx context.Context) ([]entity.Asset, error) { return assets, nil },
		}
		store := newMemStore()
		uc := usecase.NewMarketUsecase(mockData, store, "delayed_sip")

		hits, err := uc.Search(ctx, "   ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("expected no hits, got %v", hits)
		}
		if mockData.FetchAssetsCalls != 1 {
			t.Errorf("FetchAssets was called %d times, expected 1", mockData.FetchAssetsCalls)
		}
		if ttl := store.ttls["alpaca:assets:us_equity_active"]; ttl != 6*time.Hour {
			t.Errorf("master list stored with ttl %v, want 6h", ttl)
		}
	})

	t.Run("cached master list skips the provider", func(t *testing.T) {
		mockData := &mockMarketData{}
		store := newMemStore()
		store.values["alpaca:assets:us_equity_active"] = assets
		uc := usecase.NewMarketUsecase(mockData, store, "delayed_sip")

		hits, err := uc.Search(ctx, "baa")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(hits) != 1 || hits[0].Symbol != "BAAA" {
			t.Errorf("unexpected hits: %v", hits)
		}
		if mockData.FetchAssetsCalls != 0 {
			t.Errorf("FetchAssets was called %d times, expected 0", mockData.FetchAssetsCalls)
		}
	})

	t.Run("provider error propagates", func(t *testing.T) {
		mockData := &mockMarketData{
			FetchAssetsFunc: func(ctx context.Context) ([]entity.Asset, error) { return nil, ErrUpstream },
		}
		uc := usecase.NewMarketUsecase(mockData, newMemStore(), "delayed_sip")

		if _, err := uc.Search(ctx, "AA"); !errors.Is(err, ErrUpstream) {
			t.Fatalf("expected %v, got %v", ErrUpstream, err)
		}
	})
}

// TestMarketUsecase_Quotes verifies symbol normalization, order-insensitive
// cache keys, the midpoint rule and absent-symbol shaping.
func TestMarketUsecase_Quotes(t *testing.T) {
	ctx := context.Background()

	t.Run("no usable symbols", func(t *testing.T) {
		uc := usecase.NewMarketUsecase(&mockMarketData{}, newMemStore(), "delayed_sip")
		if _, err := uc.Quotes(ctx, []string{" ", ""}); !errors.Is(err, usecase.ErrNoSymbols) {
			t.Fatalf("expected ErrNoSymbols, got %v", err)
		}
	})

	t.Run("shaping: midpoint, one-sided, absent", func(t *testing.T) {
		mockData := &mockMarketData{
			FetchLatestQuotesFunc: func(ctx context.Context, symbols []string) (map[string]entity.ProviderQuote, error) {
				want := []string{"AAPL", "MSFT", "NONE", "TSLA"}
				if !reflect.DeepEqual(symbols, want) {
					t.Errorf("FetchLatestQuotes called with %v, want %v", symbols, want)
				}
				return map[string]entity.ProviderQuote{
					"AAPL": {Bid: f64(100.1234), Ask: f64(100.1239), Timestamp: str("2026-01-02T15:04:05Z")},
					"MSFT": {Ask: f64(401.5)},
					"TSLA": {Bid: f64(250.25)},
				}, nil
			},
		}
		store := newMemStore()
		uc := usecase.NewMarketUsecase(mockData, store, "delayed_sip")

		payload, err := uc.Quotes(ctx, []string{"msft", " aapl ", "TSLA", "none"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		aapl := payload.Quotes["AAPL"]
		if aapl.Last == nil || *aapl.Last != 100.1237 {
			t.Errorf("AAPL last = %v, want 100.1237 (rounded midpoint)", aapl.Last)
		}
		if aapl.UpdatedAt == nil || *aapl.UpdatedAt != "2026-01-02T15:04:05Z" {
			t.Errorf("AAPL updatedAt = %v", aapl.UpdatedAt)
		}
		if msft := payload.Quotes["MSFT"]; msft.Last == nil || *msft.Last != 401.5 || msft.Bid != nil {
			t.Errorf("MSFT should fall back to ask: %+v", msft)
		}
		if tsla := payload.Quotes["TSLA"]; tsla.Last == nil || *tsla.Last != 250.25 || tsla.Ask != nil {
			t.Errorf("TSLA should fall back to bid: %+v", tsla)
		}
		none := payload.Quotes["NONE"]
		if none.Symbol != "NONE" || none.Last != nil || none.Bid != nil || none.Ask != nil || none.UpdatedAt != nil {
			t.Errorf("absent symbol should have null prices: %+v", none)
		}
		for _, q := range payload.Quotes {
			if q.ChangePct != nil {
				t.Errorf("changePct must always be null, got %v for %s", *q.ChangePct, q.Symbol)
			}
		}
		if ttl := store.ttls["quotes:delayed_sip:AAPL,MSFT,NONE,TSLA"]; ttl != 20*time.Second {
			t.Errorf("quotes stored with ttl %v, want 20s", ttl)
		}
	})

	t.Run("differently ordered symbol sets share one cache entry", func(t *testing.T) {
		mockData := &mockMarketData{
			FetchLatestQuotesFunc: func(ctx context.Context, symbols []string) (map[string]entity.ProviderQuote, error) {
				return map[string]entity.ProviderQuote{}, nil
			},
		}
		store := newMemStore()
		uc := usecase.NewMarketUsecase(mockData, store, "delayed_sip")

		if _, err := uc.Quotes(ctx, []string{"MSFT", "AAPL"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uc.Quotes(ctx, []string{"aapl", " msft "}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mockData.FetchQuotesCalls != 1 {
			t.Errorf("FetchLatestQuotes was called %d times, expected 1 (second call should hit cache)", mockData.FetchQuotesCalls)
		}
	})

	t.Run("provider error propagates without caching", func(t *testing.T) {
		mockData := &mockMarketData{
			FetchLatestQuotesFunc: func(ctx context.Context, symbols []string) (map[string]entity.ProviderQuote, error) {
				return nil, ErrUpstream
			},
		}
		store := newMemStore()
		uc := usecase.NewMarketUsecase(mockData, store, "delayed_sip")

		if _, err := uc.Quotes(ctx, []string{"AAPL"}); !errors.Is(err, ErrUpstream) {
			t.Fatalf("expected %v, got %v", ErrUpstream, err)
		}
		if len(store.values) != 0 {
			t.Errorf("nothing should be cached on error, got %v", store.values)
		}
	})
}

// TestMarketUsecase_Chart verifies bar filtering, the versioned cache key and
// cache hits.
func TestMarketUsecase_Chart(t *testing.T) {
	ctx := context.Background()

	t.Run("bars missing fields are dropped", func(t *testing.T) {
		mockData := &mockMarketData{
			FetchBarsFunc: func(ctx context.Context, symbol, timeframe string, limit int, start time.Time) ([]entity.ProviderBar, error) {
				if symbol != "AAPL" || timeframe != "1Hour" || limit != 24 {
					t.Errorf("FetchBars called with symbol=%s timeframe=%s limit=%d", symbol, timeframe, limit)
				}
				if start.IsZero() {
					t.Error("start should be set to the lookback window")
				}
				return []entity.ProviderBar{
					{T: str("2026-01-02T10:00:00Z"), C: f64(100.5)},
					{T: nil, C: f64(101)},
					{T: str("2026-01-02T11:00:00Z"), C: nil},
					{T: str("2026-01-02T12:00:00Z"), C: f64(102.25)},
				}, nil
			},
		}
		store := newMemStore()
		uc := usecase.NewMarketUsecase(mockData, store, "delayed_sip")

		chart, err := uc.Chart(ctx, " aapl ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []entity.ChartPoint{
			{T: "2026-01-02T10:00:00Z", C: 100.5},
			{T: "2026-01-02T12:00:00Z", C: 102.25},
		}
		if chart.Symbol != "AAPL" {
			t.Errorf("symbol = %s, want AAPL", chart.Symbol)
		}
		if !reflect.DeepEqual(chart.Points, want) {
			t.Errorf("points mismatch: got %v, want %v", chart.Points, want)
		}
		if ttl := store.ttls["chart:1Hour:24:delayed_sip:AAPL"]; ttl != 60*time.Second {
			t.Errorf("chart stored with ttl %v, want 60s", ttl)
		}
	})

	t.Run("cache hit skips the provider", func(t *testing.T) {
		mockData := &mockMarketData{}
		store := newMemStore()
		store.values["chart:1Hour:24:delayed_sip:AAPL"] = entity.Chart{Symbol: "AAPL"}
		uc := usecase.NewMarketUsecase(mockData, store, "delayed_sip")

		chart, err := uc.Chart(ctx, "AAPL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if chart.Symbol != "AAPL" {
			t.Errorf("symbol = %s, want AAPL", chart.Symbol)
		}
		if mockData.FetchBarsCalls != 0 {
			t.Errorf("FetchBars was called %d times, expected 0", mockData.FetchBarsCalls)
		}
	})

	t.Run("provider error propagates", func(t *testing.T) {
		mockData := &mockMarketData{
			FetchBarsFunc: func(ctx context.Context, symbol, timeframe string, limit int, start time.Time) ([]entity.ProviderBar, error) {
				return nil, ErrUpstream
			},
		}
		uc := usecase.NewMarketUsecase(mockData, newMemStore(), "delayed_sip")

		if _, err := uc.Chart(ctx, "AAPL"); !errors.Is(err, ErrUpstream) {
			t.Fatalf("expected %v, got %v", ErrUpstream, err)
		}
	})
}
