package dto

import (
	"time"

	"github.com/spec-kit/isp-support-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	StaffID   string           `json:"staff_id"`
	Name      string           `json:"name"`
	Role      domain.StaffRole `json:"role"`
}
