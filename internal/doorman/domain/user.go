package domain

import "time"

type User struct {
	ID           string
	Name         string // unique display name
	Email        string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
