// Package db opens the application's Postgres connection through GORM.
package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "github.com/jhansali/tradelab/internal/feature/auth/adapters"
	authentity "github.com/jhansali/tradelab/internal/feature/auth/domain/entity"
	watchlistentity "github.com/jhansali/tradelab/internal/feature/watchlist/domain/entity"
)

// OpenDB connects to Postgres using the given connection string, retrying for
// up to 60 seconds so the service survives the database starting after it.
// With RUN_MIGRATIONS=true the schema is auto-migrated on startup.
func OpenDB(dsn string) *gorm.DB {
	var (
		gdb *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		// TranslateError maps driver duplicate-key errors onto gorm.ErrDuplicatedKey.
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := gdb.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&watchlistentity.WatchlistItem{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return gdb
}
