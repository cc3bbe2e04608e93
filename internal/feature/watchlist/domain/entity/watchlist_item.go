// Package entity defines the domain entities for the watchlist feature.
package entity

import "time"

// WatchlistItem is one symbol on a user's watchlist. A user can hold each
// symbol at most once, enforced by a composite unique index.
type WatchlistItem struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:uq_watchlist_user_symbol;not null"`
	Symbol    string `gorm:"uniqueIndex:uq_watchlist_user_symbol;size:16;not null"`
	CreatedAt time.Time
}
