package domain

import "time"

type BookingStatus string

const (
	BookingStatusWaiting  BookingStatus = "WAITING"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

// Booking reserves an item for the interval [Start, End]. A booking is
// created WAITING and moves exactly once to APPROVED or REJECTED; both
// are terminal.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	Start       time.Time
	End         time.Time
	Status      BookingStatus
	CreatedAt   time.Time
}

// BookingRef is the short form embedded in owner-facing item views.
type BookingRef struct {
	ID       string
	BookerID string
}
