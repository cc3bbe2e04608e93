package main

import (
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/jhansali/tradelab/internal/app/di"
	"github.com/jhansali/tradelab/internal/app/router"
	"github.com/jhansali/tradelab/internal/config"
	authadapters "github.com/jhansali/tradelab/internal/feature/auth/adapters"
	authhandler "github.com/jhansali/tradelab/internal/feature/auth/transport/handler"
	authusecase "github.com/jhansali/tradelab/internal/feature/auth/usecase"
	watchlistadapters "github.com/jhansali/tradelab/internal/feature/watchlist/adapters"
	watchlisthandler "github.com/jhansali/tradelab/internal/feature/watchlist/transport/handler"
	watchlistusecase "github.com/jhansali/tradelab/internal/feature/watchlist/usecase"
	infradb "github.com/jhansali/tradelab/internal/platform/db"
	infraredis "github.com/jhansali/tradelab/internal/platform/redis"
	jwtmw "github.com/jhansali/tradelab/internal/platform/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	db := infradb.OpenDB(cfg.DatabaseURL)

	// Redis; the market cache degrades gracefully without it
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.RedisURL); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	watchlistRepo := watchlistadapters.NewWatchlistPostgres(db)

	// Usecase
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	watchlistH := watchlisthandler.NewWatchlistHandler(watchlistUC)
	marketH := di.NewMarketHandler(cfg, rdb)

	r := router.NewRouter(cfg, authH, marketH, watchlistH)

	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
