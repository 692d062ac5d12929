package domain

import "time"

// User is an account that can list items and book other users' items.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
