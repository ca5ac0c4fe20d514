package domain

import "time"

// ServicePackage is an internet/TV plan offered in covered zones.
type ServicePackage struct {
	ID           string
	Name         string
	SpeedMbps    int
	PriceMonthly float64
	Description  string
	Features     []string
	IsActive     bool
	CreatedAt    time.Time
}
