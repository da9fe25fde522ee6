// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/carterperez-dev/library-api/internal/user"
)

type RegisterRequest struct {
	Email     string `json:"email"     validate:"required,email,max=255"`
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName"  validate:"required,min=1,max=100"`
	Password  string `json:"password"  validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string            `json:"accessToken"`
	TokenType   string            `json:"tokenType"`
	ExpiresIn   int64             `json:"expiresIn"`
	User        user.UserResponse `json:"user"`
}
