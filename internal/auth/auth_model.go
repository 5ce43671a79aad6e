package auth

import (
	"time"

	"github.com/PatelKrunal-11/stride/internal/user"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Jordan Lee"`
	Email    string `json:"email" binding:"required,email" example:"jordan@example.com"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"password123"`
	Phone    string `json:"phone,omitempty" example:"+14155550123"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=coach parent" example:"coach"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jordan@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" example:"Jordan Lee"`
	Phone *string `json:"phone,omitempty" example:"+14155550123"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=NewPassword"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`           // Optional: specific token to invalidate
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"` // If true, invalidate all user's sessions
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=coach parent admin" example:"coach"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
