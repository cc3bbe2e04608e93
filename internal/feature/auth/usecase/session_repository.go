package usecase

import (
	"context"

	"github.com/jhansali/tradelab/internal/feature/auth/domain/entity"
)

// SessionRepository abstracts the persistence layer for refresh-token sessions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (refresh token value).
	// Returns ErrSessionNotFound when no such session exists.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke marks a session as revoked by setting RevokedAt.
	// Returns ErrSessionNotFound when no such session exists.
	Revoke(ctx context.Context, id string) error
}
