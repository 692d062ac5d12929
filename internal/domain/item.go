package domain

import "time"

// Item is something a user offers for temporary loan. Only available
// items can be booked.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
}
