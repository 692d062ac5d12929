package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhis0101/ShareIT/internal/clock"
	"github.com/abhis0101/ShareIT/internal/domain"
)

func TestBookingQueryService_Categories(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	booker := domain.User{ID: "user-booker", Name: "Boris", Email: "boris@example.com"}
	owner := domain.User{ID: "user-owner", Name: "Anna", Email: "anna@example.com"}

	// One booking per temporal bucket, all on the owner's items.
	past := domain.Booking{
		ID: "booking-past", ItemID: "item-1", ItemOwnerID: owner.ID, BookerID: booker.ID,
		Start: now.Add(-3 * time.Hour), End: now.Add(-2 * time.Hour), Status: domain.BookingStatusApproved,
	}
	current := domain.Booking{
		ID: "booking-current", ItemID: "item-1", ItemOwnerID: owner.ID, BookerID: booker.ID,
		Start: now.Add(-30 * time.Minute), End: now.Add(30 * time.Minute), Status: domain.BookingStatusApproved,
	}
	future := domain.Booking{
		ID: "booking-future", ItemID: "item-2", ItemOwnerID: owner.ID, BookerID: booker.ID,
		Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: domain.BookingStatusWaiting,
	}
	rejected := domain.Booking{
		ID: "booking-rejected", ItemID: "item-2", ItemOwnerID: owner.ID, BookerID: booker.ID,
		Start: now.Add(3 * time.Hour), End: now.Add(4 * time.Hour), Status: domain.BookingStatusRejected,
	}

	repo := newFakeBookingRepo(past, current, future, rejected)
	svc := NewBookingQueryService(repo, newFakeUserRepo(booker, owner), clock.NewFixed(now))

	list := func(t *testing.T, userID string, category domain.Category, asOwner bool) []string {
		t.Helper()
		in := ListBookingsInput{UserID: userID, Category: category, From: 0, Size: 10}
		var (
			bookings []domain.Booking
			err      error
		)
		if asOwner {
			bookings, err = svc.ListForOwner(context.Background(), in)
		} else {
			bookings, err = svc.ListForBooker(context.Background(), in)
		}
		require.NoError(t, err)
		ids := make([]string, 0, len(bookings))
		for _, b := range bookings {
			ids = append(ids, b.ID)
		}
		return ids
	}

	t.Run("ALL is ordered by start descending", func(t *testing.T) {
		assert.Equal(t,
			[]string{"booking-rejected", "booking-future", "booking-current", "booking-past"},
			list(t, booker.ID, domain.CategoryAll, false))
	})

	t.Run("temporal categories partition the timeline", func(t *testing.T) {
		assert.Equal(t, []string{"booking-current"}, list(t, booker.ID, domain.CategoryCurrent, false))
		assert.Equal(t, []string{"booking-past"}, list(t, booker.ID, domain.CategoryPast, false))
		assert.Equal(t,
			[]string{"booking-rejected", "booking-future"},
			list(t, booker.ID, domain.CategoryFuture, false))
	})

	t.Run("status categories", func(t *testing.T) {
		assert.Equal(t, []string{"booking-future"}, list(t, booker.ID, domain.CategoryWaiting, false))
		assert.Equal(t, []string{"booking-rejected"}, list(t, booker.ID, domain.CategoryRejected, false))
	})

	t.Run("owner view returns the same records", func(t *testing.T) {
		assert.Equal(t, list(t, booker.ID, domain.CategoryAll, false), list(t, owner.ID, domain.CategoryAll, true))
	})

	t.Run("owner with no items sees nothing as booker", func(t *testing.T) {
		assert.Empty(t, list(t, owner.ID, domain.CategoryAll, false))
	})

	t.Run("unknown user fails", func(t *testing.T) {
		_, err := svc.ListForBooker(context.Background(), ListBookingsInput{
			UserID: "user-ghost", Category: domain.CategoryAll, From: 0, Size: 10,
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = svc.ListForOwner(context.Background(), ListBookingsInput{
			UserID: "user-ghost", Category: domain.CategoryAll, From: 0, Size: 10,
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("invalid paging fails", func(t *testing.T) {
		for _, in := range []ListBookingsInput{
			{UserID: booker.ID, Category: domain.CategoryAll, From: -1, Size: 10},
			{UserID: booker.ID, Category: domain.CategoryAll, From: 0, Size: 0},
		} {
			_, err := svc.ListForBooker(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidPaging)
		}
	})
}

func TestBookingQueryService_Pagination(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	booker := domain.User{ID: "user-booker", Name: "Boris", Email: "boris@example.com"}

	bookings := make([]domain.Booking, 0, 5)
	for i := 0; i < 5; i++ {
		bookings = append(bookings, domain.Booking{
			ID:          string(rune('a' + i)),
			ItemID:      "item-1",
			ItemOwnerID: "user-owner",
			BookerID:    booker.ID,
			Start:       now.Add(time.Duration(i) * time.Hour),
			End:         now.Add(time.Duration(i)*time.Hour + 30*time.Minute),
			Status:      domain.BookingStatusWaiting,
		})
	}

	repo := newFakeBookingRepo(bookings...)
	svc := NewBookingQueryService(repo, newFakeUserRepo(booker), clock.NewFixed(now))

	page := func(t *testing.T, from, size int) []string {
		t.Helper()
		got, err := svc.ListForBooker(context.Background(), ListBookingsInput{
			UserID: booker.ID, Category: domain.CategoryAll, From: from, Size: size,
		})
		require.NoError(t, err)
		ids := make([]string, 0, len(got))
		for _, b := range got {
			ids = append(ids, b.ID)
		}
		return ids
	}

	t.Run("aligned pages are disjoint and contiguous", func(t *testing.T) {
		first := page(t, 0, 2)
		second := page(t, 2, 2)
		both := page(t, 0, 4)

		assert.Equal(t, []string{"e", "d"}, first)
		assert.Equal(t, []string{"c", "b"}, second)
		assert.Equal(t, append(first, second...), both)
	})

	t.Run("misaligned offset snaps to its page", func(t *testing.T) {
		// from=3, size=2 serves page 3/2 = 1, same as from=2.
		assert.Equal(t, page(t, 2, 2), page(t, 3, 2))
	})

	t.Run("offset beyond the data is empty", func(t *testing.T) {
		assert.Empty(t, page(t, 10, 5))
	})
}

func TestBookingQueryService_TimeAdvancesCategories(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	booker := domain.User{ID: "user-booker", Name: "Boris", Email: "boris@example.com"}
	booking := domain.Booking{
		ID: "booking-1", ItemID: "item-1", ItemOwnerID: "user-owner", BookerID: booker.ID,
		Start: start.Add(time.Hour), End: start.Add(2 * time.Hour), Status: domain.BookingStatusApproved,
	}

	clk := clock.NewManual(start)
	repo := newFakeBookingRepo(booking)
	svc := NewBookingQueryService(repo, newFakeUserRepo(booker), clk)

	category := func(t *testing.T, c domain.Category) int {
		t.Helper()
		got, err := svc.ListForBooker(context.Background(), ListBookingsInput{
			UserID: booker.ID, Category: c, From: 0, Size: 10,
		})
		require.NoError(t, err)
		return len(got)
	}

	assert.Equal(t, 1, category(t, domain.CategoryFuture))
	assert.Equal(t, 0, category(t, domain.CategoryCurrent))

	clk.Advance(time.Hour) // exactly at Start: boundary belongs to CURRENT
	assert.Equal(t, 1, category(t, domain.CategoryCurrent))
	assert.Equal(t, 0, category(t, domain.CategoryFuture))
	assert.Equal(t, 0, category(t, domain.CategoryPast))

	clk.Advance(time.Hour) // exactly at End: still CURRENT
	assert.Equal(t, 1, category(t, domain.CategoryCurrent))
	assert.Equal(t, 0, category(t, domain.CategoryPast))

	clk.Advance(time.Second)
	assert.Equal(t, 1, category(t, domain.CategoryPast))
	assert.Equal(t, 0, category(t, domain.CategoryCurrent))
}
