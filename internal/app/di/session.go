package di

import (
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "github.com/jhansali/tradelab/internal/feature/auth/adapters"
	authusecase "github.com/jhansali/tradelab/internal/feature/auth/usecase"
	"github.com/jhansali/tradelab/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// With Redis available sessions live there and expire via TTL; otherwise they
// fall back to Postgres alongside the user table.
func NewSessionRepository(rdb *redisv9.Client, db *gorm.DB) authusecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionPostgres(db)
}
