package domain

import "time"

// User represents a registered account of the sampling platform.
type User struct {
	ID           int64
	Name         string
	LastName     string
	Rut          string
	Email        string
	Rol          string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
