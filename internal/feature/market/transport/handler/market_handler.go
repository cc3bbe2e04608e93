// Package handler provides HTTP handlers for the market feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jhansali/tradelab/internal/feature/market/domain"
	"github.com/jhansali/tradelab/internal/feature/market/domain/entity"
	"github.com/jhansali/tradelab/internal/feature/market/transport/http/dto"
	"github.com/jhansali/tradelab/internal/feature/market/usecase"
)

// MarketUsecase defines the market gateway operations used by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MarketUsecase interface {
	Search(ctx context.Context, query string) ([]entity.SearchHit, error)
	Quotes(ctx context.Context, symbols []string) (entity.QuotesPayload, error)
	Chart(ctx context.Context, symbol string) (entity.Chart, error)
}

// MarketHandler handles HTTP requests for market data.
type MarketHandler struct {
	uc MarketUsecase
}

// NewMarketHandler creates a MarketHandler with the given usecase.
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// Search handles GET /api/market/search?q=<query>.
// An empty query returns an empty result list; upstream failures are 502.
func (h *MarketHandler) Search(c *gin.Context) {
	hits, err := h.uc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.SearchItem, 0, len(hits))
	for _, hit := range hits {
		out = append(out, dto.SearchItem{Symbol: hit.Symbol, Name: hit.Name})
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Results: out})
}

// Quotes handles GET /api/market/quotes?symbols=<comma-separated>.
// Returns 400 when no valid symbols remain after normalization, 502 on
// upstream failure.
func (h *MarketHandler) Quotes(c *gin.Context) {
	symbols := strings.Split(c.Query("symbols"), ",")

	payload, err := h.uc.Quotes(c.Request.Context(), symbols)
	if err != nil {
		if errors.Is(err, usecase.ErrNoSymbols) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, payload)
}

// Chart handles GET /api/market/chart?symbol=<symbol>.
// Unlike search and quotes, a provider rejection on this path is surfaced as
// a 400 carrying the upstream body; only network-level failures stay 502.
func (h *MarketHandler) Chart(c *gin.Context) {
	symbol := strings.TrimSpace(c.Query("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	chart, err := h.uc.Chart(c.Request.Context(), symbol)
	if err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Alpaca error: " + upstream.Body})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chart)
}
