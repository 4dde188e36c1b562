package http

import (
	"time"

	"github.com/arkasetya/field-booking-backend/internal/pkg/request"
	"github.com/arkasetya/field-booking-backend/internal/user"
)

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Phone    *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ListUsersRequest struct {
	request.ListParams
	Email    string `form:"email"`
	Name     string `form:"name"`
	Role     string `form:"role"`
	IsActive *bool  `form:"is_active"`
}

type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

type StatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	Admins        int64 `json:"admins"`
	Customers     int64 `json:"customers"`
	NewLast30Days int64 `json:"new_last_30_days"`
}

func NewStatsResponse(s *user.Stats) StatsResponse {
	return StatsResponse{
		TotalUsers:    s.TotalUsers,
		ActiveUsers:   s.ActiveUsers,
		Admins:        s.Admins,
		Customers:     s.Customers,
		NewLast30Days: s.NewLast30Days,
	}
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
