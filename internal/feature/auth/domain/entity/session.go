package entity

import "time"

// Session is one issued refresh token and its lifecycle metadata. The ID is
// the opaque token value handed to the client; access tokens stay stateless
// JWTs while refresh tokens are server-side state so they can be rotated and
// revoked.
type Session struct {
	ID        string     // Refresh token value (64-character hex string)
	UserID    uint       // Owning user
	UserAgent string     // Client's User-Agent header at issue time
	IPAddress string     // Client's IP address at issue time
	CreatedAt time.Time  // Issue time
	ExpiresAt time.Time  // Expiration time
	RevokedAt *time.Time // Revocation time, nil while active
}

// IsExpired reports whether the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsRevoked reports whether the session has been revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid reports whether the session is neither expired nor revoked.
func (s *Session) IsValid() bool {
	return !s.IsExpired() && !s.IsRevoked()
}
