package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jhansali/tradelab/internal/feature/auth/domain/entity"
	"github.com/jhansali/tradelab/internal/feature/auth/usecase"
)

// sessionPostgres is the Postgres implementation of SessionRepository. It is
// the fallback when Redis is unavailable; unlike Redis there is no TTL, so
// expiry is enforced by the entity check on read.
type sessionPostgres struct {
	db *gorm.DB
}

// sessionPostgres implements usecase.SessionRepository; verified at compile time.
var _ usecase.SessionRepository = (*sessionPostgres)(nil)

// NewSessionPostgres creates a new sessionPostgres with the given gorm.DB connection.
func NewSessionPostgres(db *gorm.DB) *sessionPostgres {
	return &sessionPostgres{db: db}
}

// Create persists a new session.
func (r *sessionPostgres) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(sessionModelFromEntity(session)).Error
}

// FindByID retrieves a session by its refresh token ID.
func (r *sessionPostgres) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Revoke marks a session as revoked by its ID.
func (r *sessionPostgres) Revoke(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&SessionModel{}).
		Where("id = ?", id).
		Update("revoked_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}
