package service

import (
	"context"
	"regexp"

	"github.com/spec-kit/isp-support-service/internal/domain"
	"github.com/spec-kit/isp-support-service/internal/repository"
	apperrors "github.com/spec-kit/isp-support-service/pkg/util"
)

var postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)

// CoverageService resolves a postal code to availability and the eligible
// package list that feeds the contracting funnel.
type CoverageService struct {
	zones    repository.CoverageRepository
	packages repository.PackageRepository
}

// CoverageResult is the funnel-facing answer for one postal code.
type CoverageResult struct {
	PostalCode   string
	Status       domain.CoverageStatus
	Message      string
	Municipality string
	Communities  []string
	Packages     []domain.ServicePackage
}

// NewCoverageService constructs the service.
func NewCoverageService(zones repository.CoverageRepository, packages repository.PackageRepository) *CoverageService {
	return &CoverageService{zones: zones, packages: packages}
}

// Check resolves coverage for a postal code. Packages are returned only
// when at least one community in the code is covered.
func (s *CoverageService) Check(ctx context.Context, postalCode string) (*CoverageResult, error) {
	if !postalCodePattern.MatchString(postalCode) {
		return nil, apperrors.NewValidationError("postal code must be 5 digits", nil)
	}

	zones, err := s.zones.ListByPostalCode(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	result := &CoverageResult{
		PostalCode: postalCode,
		Status:     domain.CoverageNotCovered,
		Message:    "Aún no tenemos cobertura en tu zona.",
	}
	for _, zone := range zones {
		result.Municipality = zone.Municipality
		result.Communities = append(result.Communities, zone.Community)
		switch zone.Status {
		case domain.CoverageCovered:
			result.Status = domain.CoverageCovered
		case domain.CoveragePlanned:
			if result.Status != domain.CoverageCovered {
				result.Status = domain.CoveragePlanned
			}
		}
	}

	switch result.Status {
	case domain.CoverageCovered:
		result.Message = "¡Tenemos cobertura en tu zona! Elige tu paquete."
		packages, err := s.packages.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		result.Packages = packages
	case domain.CoveragePlanned:
		result.Message = "Tu zona está en expansión. Déjanos tus datos y te avisamos."
	}
	return result, nil
}
