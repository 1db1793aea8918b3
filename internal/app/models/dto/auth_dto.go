package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha@x.edu"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// LoginStudent is the student summary returned on login.
type LoginStudent struct {
	ID         int64  `json:"id" example:"1"`
	Name       string `json:"name" example:"Asha Rao"`
	Email      string `json:"email" example:"asha@x.edu"`
	FirstLogin bool   `json:"first_login" example:"true"`
}

// LoginResponse carries the bearer token; the same token is set as the "token" cookie.
type LoginResponse struct {
	Success   bool         `json:"success" example:"true"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type" example:"Bearer"`
	ExpiresIn int64        `json:"expires_in" example:"86400"`
	Student   LoginStudent `json:"student"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
