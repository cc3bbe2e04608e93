package dto

// RefreshReq represents the request body for the /auth/refresh and
// /auth/logout endpoints.
type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserRes represents the authenticated user's profile for /auth/me.
type UserRes struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}
