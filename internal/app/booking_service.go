package app

import (
	"context"
	"time"

	"github.com/abhis0101/ShareIT/internal/clock"
	"github.com/abhis0101/ShareIT/internal/domain"
)

// BookingRepository is the write-side access the lifecycle service needs.
type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetBooking(ctx context.Context, bookingID string) (domain.Booking, error)
	GetBookingForUpdate(ctx context.Context, bookingID string) (domain.Booking, error)
	CreateBooking(ctx context.Context, booking domain.Booking) error
	UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error
}

// UserDirectory resolves user identifiers; implemented by the user store.
type UserDirectory interface {
	GetUser(ctx context.Context, userID string) (domain.User, error)
}

// ItemDirectory resolves item identifiers; implemented by the item store.
type ItemDirectory interface {
	GetItem(ctx context.Context, itemID string) (domain.Item, error)
}

// BookingService owns the booking lifecycle: it is the only writer of a
// booking's status after creation.
type BookingService struct {
	bookings BookingRepository
	users    UserDirectory
	items    ItemDirectory
	clock    clock.Clock
}

func NewBookingService(bookings BookingRepository, users UserDirectory, items ItemDirectory, clk clock.Clock) *BookingService {
	return &BookingService{
		bookings: bookings,
		users:    users,
		items:    items,
		clock:    clk,
	}
}

type CreateBookingInput struct {
	BookerID string
	ItemID   string
	Start    time.Time
	End      time.Time
}

// CreateBooking validates the booker and item and persists a new WAITING
// booking. The interval is assumed ordered; the transport layer rejects
// start >= end before it gets here.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	if _, err := s.users.GetUser(ctx, in.BookerID); err != nil {
		return domain.Booking{}, err
	}
	item, err := s.items.GetItem(ctx, in.ItemID)
	if err != nil {
		return domain.Booking{}, err
	}
	if item.OwnerID == in.BookerID {
		// Owners never see their own items as bookable.
		return domain.Booking{}, domain.ErrItemNotFound
	}
	if !item.Available {
		return domain.Booking{}, domain.ErrItemUnavailable
	}

	booking := domain.Booking{
		ID:          newUUID(),
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    in.BookerID,
		Start:       in.Start,
		End:         in.End,
		Status:      domain.BookingStatusWaiting,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return domain.Booking{}, err
	}
	return booking, nil
}

type DecideBookingInput struct {
	BookingID    string
	ActingUserID string
	Approved     bool
}

// DecideBooking moves a WAITING booking to APPROVED or REJECTED. The row
// is locked for the read-modify-write so a concurrent second decision
// observes the post-transition status and fails with ErrBookingDecided.
func (s *BookingService) DecideBooking(ctx context.Context, in DecideBookingInput) (domain.Booking, error) {
	var result domain.Booking

	err := s.bookings.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.bookings.GetBookingForUpdate(txCtx, in.BookingID)
		if err != nil {
			return err
		}
		if booking.ItemOwnerID != in.ActingUserID {
			// Ownership mismatch reads the same as a missing booking.
			return domain.ErrBookingNotFound
		}
		if booking.Status != domain.BookingStatusWaiting {
			return domain.ErrBookingDecided
		}

		status := domain.BookingStatusRejected
		if in.Approved {
			status = domain.BookingStatusApproved
		}
		if err := s.bookings.UpdateBookingStatus(txCtx, in.BookingID, status); err != nil {
			return err
		}

		booking.Status = status
		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// GetBooking returns the booking when the viewer is its booker or the
// item's owner; anyone else gets ErrBookingNotFound rather than a
// distinct forbidden error, so unrelated viewers cannot probe existence.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, viewerID string) (domain.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if booking.BookerID != viewerID && booking.ItemOwnerID != viewerID {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return booking, nil
}
