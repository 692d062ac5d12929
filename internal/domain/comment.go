package domain

import "time"

// Comment is free text attached to an item by a user who completed an
// approved booking of it.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}
