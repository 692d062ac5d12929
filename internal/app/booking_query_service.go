package app

import (
	"context"
	"time"

	"github.com/abhis0101/ShareIT/internal/clock"
	"github.com/abhis0101/ShareIT/internal/domain"
)

// BookingQueryRepository lists bookings for one category, scoped to a
// booker or an item owner, ordered by start descending (id descending on
// ties) with a limit/offset window.
type BookingQueryRepository interface {
	ListByBooker(ctx context.Context, bookerID string, category domain.Category, now time.Time, limit, offset int) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID string, category domain.Category, now time.Time, limit, offset int) ([]domain.Booking, error)
}

// BookingQueryService classifies stored bookings into the six categories
// and serves paginated, ordered pages per viewer role.
type BookingQueryService struct {
	bookings BookingQueryRepository
	users    UserDirectory
	clock    clock.Clock
}

func NewBookingQueryService(bookings BookingQueryRepository, users UserDirectory, clk clock.Clock) *BookingQueryService {
	return &BookingQueryService{
		bookings: bookings,
		users:    users,
		clock:    clk,
	}
}

type ListBookingsInput struct {
	UserID   string
	Category domain.Category
	From     int
	Size     int
}

// ListForBooker returns the page of bookings requested by the user who
// made them.
func (s *BookingQueryService) ListForBooker(ctx context.Context, in ListBookingsInput) ([]domain.Booking, error) {
	limit, offset, err := pageWindow(in.From, in.Size)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, in.UserID, in.Category, s.clock.Now(), limit, offset)
}

// ListForOwner returns the page of bookings made against the user's
// items.
func (s *BookingQueryService) ListForOwner(ctx context.Context, in ListBookingsInput) ([]domain.Booking, error) {
	limit, offset, err := pageWindow(in.From, in.Size)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	return s.bookings.ListByOwner(ctx, in.UserID, in.Category, s.clock.Now(), limit, offset)
}

// pageWindow turns a raw offset into the fixed page the store serves.
// The page index is from/size, so an offset that is not a multiple of
// size snaps back to the start of its page. Callers wanting predictable
// slices must keep from aligned to size.
func pageWindow(from, size int) (limit, offset int, err error) {
	if from < 0 || size < 1 {
		return 0, 0, domain.ErrInvalidPaging
	}
	return size, (from / size) * size, nil
}
