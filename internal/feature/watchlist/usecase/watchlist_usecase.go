// Package usecase implements the business logic for the watchlist feature.
package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidSymbol is returned when a symbol fails format validation.
var ErrInvalidSymbol = errors.New("symbol format invalid")

// symbolRe matches normalized ticker symbols: uppercase letters, digits and
// dots, at most 16 characters.
var symbolRe = regexp.MustCompile(`^[A-Z0-9.]{1,16}$`)

// WatchlistRepository abstracts the persistence layer for watchlist items.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// ListSymbols returns the user's symbols, newest first.
	ListSymbols(ctx context.Context, userID uint) ([]string, error)
	// Add inserts a symbol for the user. Adding a symbol that is already on
	// the list is a no-op, not an error.
	Add(ctx context.Context, userID uint, symbol string) error
	// Remove deletes one symbol from the user's list.
	Remove(ctx context.Context, userID uint, symbol string) error
	// Clear deletes all of the user's symbols.
	Clear(ctx context.Context, userID uint) error
}

// watchlistUsecase implements watchlist operations over a repository.
type watchlistUsecase struct {
	repo WatchlistRepository
}

// NewWatchlistUsecase creates a new watchlistUsecase instance.
func NewWatchlistUsecase(repo WatchlistRepository) *watchlistUsecase {
	return &watchlistUsecase{repo: repo}
}

// List returns the user's watchlist symbols, newest first.
func (u *watchlistUsecase) List(ctx context.Context, userID uint) ([]string, error) {
	return u.repo.ListSymbols(ctx, userID)
}

// Add validates and adds a symbol, then returns the updated list.
// The symbol is trimmed and uppercased before validation.
func (u *watchlistUsecase) Add(ctx context.Context, userID uint, symbol string) ([]string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolRe.MatchString(symbol) {
		return nil, ErrInvalidSymbol
	}
	if err := u.repo.Add(ctx, userID, symbol); err != nil {
		return nil, err
	}
	return u.repo.ListSymbols(ctx, userID)
}

// Remove deletes a symbol and returns the updated list. Removing a symbol
// that is not on the list is a no-op.
func (u *watchlistUsecase) Remove(ctx context.Context, userID uint, symbol string) ([]string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if err := u.repo.Remove(ctx, userID, symbol); err != nil {
		return nil, err
	}
	return u.repo.ListSymbols(ctx, userID)
}

// Clear removes every symbol from the user's watchlist.
func (u *watchlistUsecase) Clear(ctx context.Context, userID uint) error {
	return u.repo.Clear(ctx, userID)
}
