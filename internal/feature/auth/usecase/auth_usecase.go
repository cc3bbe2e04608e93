package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhansali/tradelab/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// refreshTokenTTL is the lifetime of a refresh-token session. Access
	// tokens expire much sooner; the refresh endpoint rotates both.
	refreshTokenTTL = 7 * 24 * time.Hour
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists when a user
	// with the same email already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user matching the given email address.
	// Returns ErrUserNotFound when no such user exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user matching the given ID.
	// Returns ErrUserNotFound when no such user exists.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator defines the interface for JWT token generation.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/jwt).
type JWTGenerator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// TokenPair is an access token plus the refresh token that can renew it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ClientInfo carries request metadata recorded on each session for auditing.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	// bcrypt only hashes the first 72 bytes; reject instead of truncating silently.
	if len(password) > 72 {
		return errors.New("password must be 72 bytes or fewer")
	}
	return nil
}

// Signup registers a new user with a hashed password.
// Emails are normalized (trimmed, lowercased) before lookup and storage.
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Email:    normalizeEmail(email),
		Password: string(hashed),
	}
	return u.users.Create(ctx, user)
}

// Login authenticates a user and issues an access/refresh token pair.
// A bcrypt comparison runs even when the user does not exist, so the timing
// of the response does not reveal which accounts exist.
func (u *authUsecase) Login(ctx context.Context, email, password string, client ClientInfo) (TokenPair, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the not-found path.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// Same generic error whether the user was missing or the password wrong.
	if err != nil || compareErr != nil {
		return TokenPair{}, errors.New("invalid email or password")
	}

	return u.issueTokens(ctx, user, client)
}

// Refresh rotates a refresh token: it validates and revokes the presented
// session, then issues a fresh token pair. A rejected token gets the one
// generic ErrInvalidRefreshToken whatever the reason.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}
	if !session.IsValid() {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return TokenPair{}, ErrInvalidRefreshToken
		}
		return TokenPair{}, err
	}

	// One-time use: the old token dies before its replacement is born.
	if err := u.sessions.Revoke(ctx, session.ID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return TokenPair{}, err
	}

	return u.issueTokens(ctx, user, client)
}

// Logout revokes the presented refresh token. Logging out with an unknown or
// already-revoked token succeeds: the end state is the same.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return nil
}

// Me returns the profile of the authenticated user.
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// issueTokens generates an access JWT and a new refresh-token session.
func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User, client ClientInfo) (TokenPair, error) {
	access, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to generate token: %w", err)
	}

	refresh, err := newSessionID()
	if err != nil {
		return TokenPair{}, err
	}
	now := time.Now()
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return TokenPair{}, fmt.Errorf("failed to create session: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// newSessionID returns a 64-character hex string from 32 random bytes.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// normalizeEmail trims surrounding whitespace and lowercases the address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
