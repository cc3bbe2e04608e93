package alpaca

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhansali/tradelab/internal/feature/market/domain"
	"github.com/jhansali/tradelab/internal/feature/market/domain/entity"
	"github.com/jhansali/tradelab/internal/feature/market/usecase"
)

// Client calls the Alpaca APIs over HTTP. It performs exactly one attempt per
// call: no retries, no backoff, no pagination.
type Client struct {
	cfg    Config
	client *http.Client
}

// Client implements usecase.MarketData; verified at compile time.
var _ usecase.MarketData = (*Client)(nil)

// NewClient creates a Client with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// FetchAssets lists all active US-equity assets from the trading/reference API.
// The provider returns the full set in one response.
func (a *Client) FetchAssets(ctx context.Context) ([]entity.Asset, error) {
	q := url.Values{}
	q.Set("status", "active")
	q.Set("asset_class", "us_equity")

	var assets []entity.Asset
	if err := a.getJSON(ctx, fmt.Sprintf("%s/v2/assets?%s", a.cfg.TradeBase, q.Encode()), &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// FetchLatestQuotes fetches the latest quotes for the given symbols, joined as
// one comma-separated parameter. Callers sort symbols before the call so that
// equal sets produce equal requests.
func (a *Client) FetchLatestQuotes(ctx context.Context, symbols []string) (map[string]entity.ProviderQuote, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("feed", a.cfg.Feed)

	var body struct {
		Quotes map[string]entity.ProviderQuote `json:"quotes"`
	}
	if err := a.getJSON(ctx, fmt.Sprintf("%s/v2/stocks/quotes/latest?%s", a.cfg.DataBase, q.Encode()), &body); err != nil {
		return nil, err
	}
	return body.Quotes, nil
}

// FetchBars fetches up to limit bars for one symbol in ascending time order.
// A zero start is omitted from the request.
func (a *Client) FetchBars(ctx context.Context, symbol, timeframe string, limit int, start time.Time) ([]entity.ProviderBar, error) {
	q := url.Values{}
	q.Set("timeframe", timeframe)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("feed", a.cfg.Feed)
	q.Set("sort", "asc")
	if !start.IsZero() {
		q.Set("start", start.UTC().Format(time.RFC3339))
	}

	var body struct {
		Bars []entity.ProviderBar `json:"bars"`
	}
	u := fmt.Sprintf("%s/v2/stocks/%s/bars?%s", a.cfg.DataBase, url.PathEscape(symbol), q.Encode())
	if err := a.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	return body.Bars, nil
}

// getJSON performs one authenticated GET and decodes the JSON response into out.
// Non-2xx statuses become *domain.UpstreamError; network failures propagate as-is.
func (a *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("APCA-API-KEY-ID", a.cfg.KeyID)
	req.Header.Set("APCA-API-SECRET-KEY", a.cfg.SecretKey)

	res, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(res.Body)
		return &domain.UpstreamError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	return json.NewDecoder(res.Body).Decode(out)
}
