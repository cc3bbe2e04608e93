// Package router assembles the gin engine and all route groups.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jhansali/tradelab/internal/config"
	authhandler "github.com/jhansali/tradelab/internal/feature/auth/transport/handler"
	markethandler "github.com/jhansali/tradelab/internal/feature/market/transport/handler"
	watchlisthandler "github.com/jhansali/tradelab/internal/feature/watchlist/transport/handler"
	"github.com/jhansali/tradelab/internal/platform/http/handler"
	jwtmw "github.com/jhansali/tradelab/internal/platform/jwt"
)

// NewRouter builds the HTTP router. Market endpoints are deliberately
// unauthenticated; the watchlist group requires a valid JWT.
func NewRouter(cfg config.Config, authH *authhandler.AuthHandler,
	marketH *markethandler.MarketHandler, watchlistH *watchlisthandler.WatchlistHandler) *gin.Engine {
	r := gin.Default()

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Health check
	r.GET("/healthz", handler.Health)

	// Auth
	r.POST("/auth/signup", authH.Signup)
	r.POST("/auth/signin", authH.Login)
	r.POST("/auth/refresh", authH.Refresh)
	r.POST("/auth/logout", authH.Logout)
	r.GET("/auth/me", jwtmw.AuthRequired(cfg.JWTSecret), authH.Me)

	// Market data, served through the cache gateway
	market := r.Group("/api/market")
	{
		market.GET("/search", marketH.Search)
		market.GET("/quotes", marketH.Quotes)
		market.GET("/chart", marketH.Chart)
	}

	// Watchlist, authenticated
	watchlist := r.Group("/api/watchlist")
	watchlist.Use(jwtmw.AuthRequired(cfg.JWTSecret))
	{
		watchlist.GET("", watchlistH.List)
		watchlist.POST("", watchlistH.Add)
		watchlist.DELETE("", watchlistH.Clear)
		watchlist.DELETE("/:symbol", watchlistH.Remove)
	}

	return r
}
