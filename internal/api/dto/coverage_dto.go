package dto

import "github.com/spec-kit/isp-support-service/internal/domain"

// PackageResponse is one plan in the catalog.
type PackageResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	SpeedMbps    int      `json:"speed_mbps"`
	PriceMonthly float64  `json:"price_monthly"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
}

// CoverageResponse answers the coverage-check endpoint.
type CoverageResponse struct {
	PostalCode   string                `json:"postal_code"`
	Status       domain.CoverageStatus `json:"status"`
	Message      string                `json:"message"`
	Municipality string                `json:"municipality,omitempty"`
	Communities  []string              `json:"communities"`
	Packages     []PackageResponse     `json:"packages"`
}
