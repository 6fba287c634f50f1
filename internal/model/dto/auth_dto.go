package dto

// RegisterRequest signup payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Language string `json:"language" binding:"omitempty,oneof=pt en"`
}

// RegisterResponse signup result
type RegisterResponse struct {
	UserID int64 `json:"user_id"`
}

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse login result
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// VerifyEmailRequest email verification payload
type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required"`
}

// UserInfo user profile returned to the client
type UserInfo struct {
	ID               int64  `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Language         string `json:"language"`
	HasAcceptedTerms bool   `json:"has_accepted_terms"`
	EmailVerified    bool   `json:"email_verified,omitempty"`
	IsPremium        bool   `json:"is_premium"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// UpdateProfileRequest profile edit payload
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Language *string `json:"language,omitempty" binding:"omitempty,oneof=pt en"`
}
