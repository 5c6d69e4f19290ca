package domain

import "time"

type ID string

// User is the persisted account row. Username and Email are each unique
// across all rows; the database constraint is the source of truth for that,
// not the registration pre-check.
type User struct {
	ID           ID
	Username     string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
