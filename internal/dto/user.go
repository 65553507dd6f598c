package dto

import "time"

type RegisterRequest struct {
	UserName     string `json:"user_name" binding:"required,min=2,max=50"`
	Email        string `json:"email" binding:"required,email"`
	FullName     string `json:"full_name" binding:"required,min=2,max=50"`
	Password     string `json:"password" binding:"required,min=8,max=100"`
	Role         int    `json:"role" binding:"required"`
	MobileNumber string `json:"mobile_number" binding:"required,numeric,min=7,max=15"`
	Province     string `json:"province" binding:"required"`
	District     string `json:"district" binding:"required"`
	Municipality string `json:"municipality" binding:"required"`
	Tole         string `json:"tole" binding:"required"`
	WardNo       int    `json:"ward_no" binding:"required"`
}

type LoginRequest struct {
	// UserName accepts either the handle or the email address.
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=100"`
}

type ActivateRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UserResponse is the sanitized projection: never carries the password hash
// or the stored refresh token.
type UserResponse struct {
	ID           uint      `json:"id"`
	UserName     string    `json:"user_name"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	MobileNumber string    `json:"mobile_number"`
	Role         int       `json:"role"`
	IsActive     bool      `json:"is_active"`
	Province     string    `json:"province"`
	District     string    `json:"district"`
	Municipality string    `json:"municipality"`
	Tole         string    `json:"tole"`
	WardNo       int       `json:"ward_no"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginResponse carries the access token in the body; both tokens are also
// set as cookies by the handler.
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

// LoginResult is the service-level outcome of a credential check. When the
// account is not yet activated, Activated is false and no user or tokens
// are carried: the transport layer turns that into a success-shaped empty
// response.
type LoginResult struct {
	Activated bool
	User      *UserResponse
	Tokens    *TokenPair
}

// TokenPair is what the issuer returns for an active account.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
