package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/isp-support-service/internal/api/dto"
	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/service"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

// CoverageHandler serves the public coverage check.
type CoverageHandler struct {
	service *service.CoverageService
}

// NewCoverageHandler constructs handler.
func NewCoverageHandler(coverageService *service.CoverageService) *CoverageHandler {
	return &CoverageHandler{service: coverageService}
}

// Check GET /api/coverage?postal_code=NNNNN.
func (h *CoverageHandler) Check(c *fiber.Ctx) error {
	postalCode := c.Query("postal_code")
	if postalCode == "" {
		return apperrors.NewValidationError("postal_code required", nil)
	}

	result, err := h.service.Check(c.UserContext(), postalCode)
	if err != nil {
		return err
	}

	return c.JSON(dto.CoverageResponse{
		PostalCode:   result.PostalCode,
		Status:       result.Status,
		Message:      result.Message,
		Municipality: result.Municipality,
		Communities:  result.Communities,
		Packages:     packageResponses(result.Packages),
	})
}

func packageResponses(packages []domain.ServicePackage) []dto.PackageResponse {
	out := make([]dto.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		out = append(out, dto.PackageResponse{
			ID:           pkg.ID,
			Name:         pkg.Name,
			SpeedMbps:    pkg.SpeedMbps,
			PriceMonthly: pkg.PriceMonthly,
			Description:  pkg.Description,
			Features:     pkg.Features,
		})
	}
	return out
}
