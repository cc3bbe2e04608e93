// Package handler provides HTTP handlers for the watchlist feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jhansali/tradelab/internal/feature/watchlist/transport/http/dto"
	"github.com/jhansali/tradelab/internal/feature/watchlist/usecase"
	jwtmw "github.com/jhansali/tradelab/internal/platform/jwt"
)

// WatchlistUsecase defines the watchlist operations used by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	List(ctx context.Context, userID uint) ([]string, error)
	Add(ctx context.Context, userID uint, symbol string) ([]string, error)
	Remove(ctx context.Context, userID uint, symbol string) ([]string, error)
	Clear(ctx context.Context, userID uint) error
}

// WatchlistHandler handles HTTP requests for watchlist operations.
// All routes sit behind the JWT middleware, which stores the user id in the
// request context.
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler creates a new WatchlistHandler instance.
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List handles GET /api/watchlist.
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	symbols, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SymbolsRes{Symbols: symbols})
}

// Add handles POST /api/watchlist and returns the updated list with 201.
func (h *WatchlistHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AddSymbolReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	symbols, err := h.uc.Add(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSymbol) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.SymbolsRes{Symbols: symbols})
}

// Remove handles DELETE /api/watchlist/:symbol and returns the updated list.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	symbols, err := h.uc.Remove(c.Request.Context(), userID, c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SymbolsRes{Symbols: symbols})
}

// Clear handles DELETE /api/watchlist.
func (h *WatchlistHandler) Clear(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.uc.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SymbolsRes{Symbols: []string{}})
}

// currentUserID reads the authenticated user id placed in the context by the
// JWT middleware, aborting with 401 when it is absent.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(jwtmw.ContextUserID)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return 0, false
	}
	return id, true
}
