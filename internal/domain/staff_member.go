package domain

import "time"

// StaffRole enumerates admin-panel privilege levels.
type StaffRole string

const (
	StaffRoleAdmin      StaffRole = "ADMIN"
	StaffRoleAgent      StaffRole = "AGENT"
	StaffRoleTechnician StaffRole = "TECHNICIAN"
)

// StaffMember is an internal operator of the admin panel.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
