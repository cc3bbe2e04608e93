package dto

// LoginReq represents the request body for the /auth/signin endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRes represents the response for a successful login or refresh.
type TokenRes struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
