package domain

import "time"

// CoverageStatus classifies service availability for a zone.
type CoverageStatus string

const (
	CoverageCovered    CoverageStatus = "COVERED"
	CoveragePlanned    CoverageStatus = "PLANNED"
	CoverageNotCovered CoverageStatus = "NOT_COVERED"
)

// CoverageZone maps a postal code and community to availability.
// A postal code may span several communities with different statuses.
type CoverageZone struct {
	ID           string
	PostalCode   string
	Municipality string
	Community    string
	Status       CoverageStatus
	IsActive     bool
	CreatedAt    time.Time
}
