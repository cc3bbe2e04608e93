// Package adapters provides repository implementations for the watchlist feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/jhansali/tradelab/internal/feature/watchlist/domain/entity"
	"github.com/jhansali/tradelab/internal/feature/watchlist/usecase"
)

// watchlistPostgres is the Postgres implementation of WatchlistRepository,
// using GORM for database access.
type watchlistPostgres struct {
	db *gorm.DB
}

// watchlistPostgres implements usecase.WatchlistRepository; verified at compile time.
var _ usecase.WatchlistRepository = (*watchlistPostgres)(nil)

// NewWatchlistPostgres creates a new watchlistPostgres with the given gorm.DB connection.
func NewWatchlistPostgres(db *gorm.DB) *watchlistPostgres {
	return &watchlistPostgres{db: db}
}

// ListSymbols returns the user's symbols ordered newest first.
func (r *watchlistPostgres) ListSymbols(ctx context.Context, userID uint) ([]string, error) {
	symbols := []string{}
	err := r.db.WithContext(ctx).
		Model(&entity.WatchlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}

// Add inserts the symbol for the user. A duplicate insert is swallowed so
// re-adding a watched symbol stays idempotent.
func (r *watchlistPostgres) Add(ctx context.Context, userID uint, symbol string) error {
	item := &entity.WatchlistItem{UserID: userID, Symbol: symbol}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

// Remove deletes one symbol from the user's list.
func (r *watchlistPostgres) Remove(ctx context.Context, userID uint, symbol string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.WatchlistItem{}).Error
}

// Clear deletes all of the user's symbols.
func (r *watchlistPostgres) Clear(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.WatchlistItem{}).Error
}

// isUniqueViolation reports whether err is a duplicate-key error, either as
// GORM's translated sentinel or as Postgres SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
