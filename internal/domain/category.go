package domain

import (
	"fmt"
	"time"
)

// Category names one of the temporal/status partitions used when listing
// bookings. Internal callers work with the closed enum; the string form
// only exists at the external boundary.
type Category int

const (
	CategoryAll Category = iota
	CategoryCurrent
	CategoryPast
	CategoryFuture
	CategoryWaiting
	CategoryRejected
)

var categoryByName = map[string]Category{
	"ALL":      CategoryAll,
	"CURRENT":  CategoryCurrent,
	"PAST":     CategoryPast,
	"FUTURE":   CategoryFuture,
	"WAITING":  CategoryWaiting,
	"REJECTED": CategoryRejected,
}

// ParseCategory maps a wire value to its Category. Values are matched
// case-sensitively; anything else fails with ErrUnknownCategory.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, s)
	}
	return c, nil
}

func (c Category) String() string {
	switch c {
	case CategoryAll:
		return "ALL"
	case CategoryCurrent:
		return "CURRENT"
	case CategoryPast:
		return "PAST"
	case CategoryFuture:
		return "FUTURE"
	case CategoryWaiting:
		return "WAITING"
	case CategoryRejected:
		return "REJECTED"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Matches reports whether a booking falls into the category at instant
// now. CURRENT owns both boundary instants, so CURRENT, PAST and FUTURE
// are disjoint at any fixed now.
func (c Category) Matches(b Booking, now time.Time) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case CategoryPast:
		return b.End.Before(now)
	case CategoryFuture:
		return b.Start.After(now)
	case CategoryWaiting:
		return b.Status == BookingStatusWaiting
	case CategoryRejected:
		return b.Status == BookingStatusRejected
	}
	return false
}
