package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/abhis0101/ShareIT/internal/domain"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	m := make(map[string]domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range f.users {
		if id != user.ID && u.Email == user.Email {
			return domain.ErrEmailExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, userID string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[userID]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string]domain.Item
}

func newFakeItemRepo(items ...domain.Item) *fakeItemRepo {
	m := make(map[string]domain.Item, len(items))
	for _, i := range items {
		m[i.ID] = i
	}
	return &fakeItemRepo{items: m}
}

func (f *fakeItemRepo) CreateItem(_ context.Context, item domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) UpdateItem(_ context.Context, item domain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetItem(_ context.Context, itemID string) (domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.items[itemID]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return i, nil
}

func (f *fakeItemRepo) ListItemsByOwner(_ context.Context, ownerID string) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Item, 0)
	for _, i := range f.items {
		if i.OwnerID == ownerID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeItemRepo) SearchItems(_ context.Context, text string) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	needle := strings.ToLower(text)
	out := make([]domain.Item, 0)
	for _, i := range f.items {
		if !i.Available {
			continue
		}
		if strings.Contains(strings.ToLower(i.Name), needle) ||
			strings.Contains(strings.ToLower(i.Description), needle) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
}

func newFakeBookingRepo(bookings ...domain.Booking) *fakeBookingRepo {
	m := make(map[string]domain.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeBookingRepo) GetBooking(_ context.Context, bookingID string) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.get(bookingID)
}

func (f *fakeBookingRepo) GetBookingForUpdate(_ context.Context, bookingID string) (domain.Booking, error) {
	// WithTx already holds the lock; mirror the row lock by reading the
	// current state directly.
	return f.get(bookingID)
}

func (f *fakeBookingRepo) get(bookingID string) (domain.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) CreateBooking(_ context.Context, booking domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(_ context.Context, bookingID string, status domain.BookingStatus) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.Status = status
	f.bookings[bookingID] = b
	return nil
}

func (f *fakeBookingRepo) ListByBooker(_ context.Context, bookerID string, category domain.Category, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return f.list(func(b domain.Booking) bool { return b.BookerID == bookerID }, category, now, limit, offset)
}

func (f *fakeBookingRepo) ListByOwner(_ context.Context, ownerID string, category domain.Category, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return f.list(func(b domain.Booking) bool { return b.ItemOwnerID == ownerID }, category, now, limit, offset)
}

func (f *fakeBookingRepo) list(scope func(domain.Booking) bool, category domain.Category, now time.Time, limit, offset int) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]domain.Booking, 0)
	for _, b := range f.bookings {
		if scope(b) && category.Matches(b, now) {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Start.Equal(matched[j].Start) {
			return matched[i].Start.After(matched[j].Start)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return []domain.Booking{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeBookingRepo) LastApprovedBooking(_ context.Context, itemID string, now time.Time) (*domain.BookingRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.Booking
	for _, b := range f.bookings {
		b := b
		if b.ItemID != itemID || b.Status != domain.BookingStatusApproved || !b.Start.Before(now) {
			continue
		}
		if best == nil || b.End.After(best.End) {
			best = &b
		}
	}
	if best == nil {
		return nil, nil
	}
	return &domain.BookingRef{ID: best.ID, BookerID: best.BookerID}, nil
}

func (f *fakeBookingRepo) NextApprovedBooking(_ context.Context, itemID string, now time.Time) (*domain.BookingRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.Booking
	for _, b := range f.bookings {
		b := b
		if b.ItemID != itemID || b.Status != domain.BookingStatusApproved || !b.Start.After(now) {
			continue
		}
		if best == nil || b.Start.Before(best.Start) {
			best = &b
		}
	}
	if best == nil {
		return nil, nil
	}
	return &domain.BookingRef{ID: best.ID, BookerID: best.BookerID}, nil
}

func (f *fakeBookingRepo) HasFinishedApprovedBooking(_ context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID &&
			b.Status == domain.BookingStatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []domain.Comment
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeCommentRepo) ListCommentsByItem(_ context.Context, itemID string) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Comment, 0)
	for _, c := range f.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}
