package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/abhis0101/ShareIT/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository is all access to the bookings table: the lifecycle
// write path, the category listings and the read-only index the item
// views need.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const bookingColumns = `b.id, b.item_id, i.name, i.owner_id, b.booker_id, b.start_at, b.end_at, b.status, b.created_at`

func (r *BookingRepository) GetBooking(ctx context.Context, bookingID string) (domain.Booking, error) {
	query := `
SELECT ` + bookingColumns + `
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE b.id = $1`

	return r.scanBooking(r.queryRow(ctx, query, bookingID))
}

// GetBookingForUpdate locks the booking row; the joined item row stays
// unlocked so item reads are not blocked by a pending decision.
func (r *BookingRepository) GetBookingForUpdate(ctx context.Context, bookingID string) (domain.Booking, error) {
	query := `
SELECT ` + bookingColumns + `
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE b.id = $1
FOR UPDATE OF b`

	return r.scanBooking(r.queryRow(ctx, query, bookingID))
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		booking.ID,
		booking.ItemID,
		booking.BookerID,
		booking.Start,
		booking.End,
		string(booking.Status),
		booking.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error {
	const stmt = `UPDATE bookings SET status = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, bookingID, string(status))
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID string, category domain.Category, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, "b.booker_id", bookerID, category, now, limit, offset)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string, category domain.Category, now time.Time, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, "i.owner_id", ownerID, category, now, limit, offset)
}

func (r *BookingRepository) list(ctx context.Context, scopeColumn, scopeID string, category domain.Category, now time.Time, limit, offset int) ([]domain.Booking, error) {
	args := []any{scopeID}
	clause, args := categoryClause(category, now, args)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT `+bookingColumns+`
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE %s = $1%s
ORDER BY b.start_at DESC, b.id DESC
LIMIT $%d OFFSET $%d`, scopeColumn, clause, len(args)-1, len(args))

	rows, err := r.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		var status string
		if err := rows.Scan(&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.Start, &b.End, &status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Status = domain.BookingStatus(status)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// categoryClause appends the category's predicate to the argument list
// and returns the SQL fragment referencing it. CategoryAll adds nothing.
func categoryClause(category domain.Category, now time.Time, args []any) (string, []any) {
	switch category {
	case domain.CategoryCurrent:
		args = append(args, now)
		n := len(args)
		return fmt.Sprintf(" AND b.start_at <= $%d AND b.end_at >= $%d", n, n), args
	case domain.CategoryPast:
		args = append(args, now)
		return fmt.Sprintf(" AND b.end_at < $%d", len(args)), args
	case domain.CategoryFuture:
		args = append(args, now)
		return fmt.Sprintf(" AND b.start_at > $%d", len(args)), args
	case domain.CategoryWaiting:
		args = append(args, string(domain.BookingStatusWaiting))
		return fmt.Sprintf(" AND b.status = $%d", len(args)), args
	case domain.CategoryRejected:
		args = append(args, string(domain.BookingStatusRejected))
		return fmt.Sprintf(" AND b.status = $%d", len(args)), args
	}
	return "", args
}

// LastApprovedBooking returns the approved booking that started most
// recently before now, or nil when the item has none.
func (r *BookingRepository) LastApprovedBooking(ctx context.Context, itemID string, now time.Time) (*domain.BookingRef, error) {
	const query = `
SELECT b.id, b.booker_id
FROM bookings b
WHERE b.item_id = $1 AND b.status = $2 AND b.start_at < $3
ORDER BY b.end_at DESC
LIMIT 1`

	return r.scanBookingRef(r.queryRow(ctx, query, itemID, string(domain.BookingStatusApproved), now))
}

// NextApprovedBooking returns the next approved booking starting after
// now, or nil when there is none.
func (r *BookingRepository) NextApprovedBooking(ctx context.Context, itemID string, now time.Time) (*domain.BookingRef, error) {
	const query = `
SELECT b.id, b.booker_id
FROM bookings b
WHERE b.item_id = $1 AND b.status = $2 AND b.start_at > $3
ORDER BY b.start_at
LIMIT 1`

	return r.scanBookingRef(r.queryRow(ctx, query, itemID, string(domain.BookingStatusApproved), now))
}

func (r *BookingRepository) HasFinishedApprovedBooking(ctx context.Context, itemID, bookerID string, now time.Time) (bool, error) {
	const query = `
SELECT EXISTS (
	SELECT 1 FROM bookings
	WHERE item_id = $1 AND booker_id = $2 AND status = $3 AND end_at < $4
)`

	var exists bool
	err := r.queryRow(ctx, query, itemID, bookerID, string(domain.BookingStatusApproved), now).Scan(&exists)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("check finished booking: %w", err)
	}
	return exists, nil
}

func (r *BookingRepository) scanBooking(row pgx.Row) (domain.Booking, error) {
	var b domain.Booking
	var status string
	err := row.Scan(&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID, &b.BookerID, &b.Start, &b.End, &status, &b.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func (r *BookingRepository) scanBookingRef(row pgx.Row) (*domain.BookingRef, error) {
	var ref domain.BookingRef
	err := row.Scan(&ref.ID, &ref.BookerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking ref: %w", err)
	}
	return &ref, nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
