package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/isp-support-service/internal/api/dto"
	"github.com/spec-kit/isp-support-service/internal/service"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

// StaffHandler manages admin-panel authentication.
type StaffHandler struct {
	auth *service.AuthService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService *service.AuthService) *StaffHandler {
	return &StaffHandler{auth: authService}
}

// Login POST /auth/staff/login.
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		StaffID:   result.Staff.ID,
		Name:      result.Staff.Name,
		Role:      result.Staff.Role,
	}})
}
