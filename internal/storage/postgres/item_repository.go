package postgres

import (
	"context"
	"fmt"

	"github.com/abhis0101/ShareIT/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = `id, owner_id, name, description, available, created_at`

func (r *ItemRepository) CreateItem(ctx context.Context, item domain.Item) error {
	const stmt = `
INSERT INTO items (id, owner_id, name, description, available, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt,
		item.ID,
		item.OwnerID,
		item.Name,
		item.Description,
		item.Available,
		item.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	const stmt = `UPDATE items SET name = $2, description = $3, available = $4 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, item.ID, item.Name, item.Description, item.Available)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) GetItem(ctx context.Context, itemID string) (domain.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	var i domain.Item
	err := r.queryRow(ctx, query, itemID).
		Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available, &i.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Item{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Item{}, domain.ErrItemNotFound
		}
		return domain.Item{}, fmt.Errorf("get item: %w", err)
	}
	return i, nil
}

func (r *ItemRepository) ListItemsByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 ORDER BY id`

	rows, err := r.query(ctx, query, ownerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list items: %w", err)
	}
	return r.collect(rows)
}

// SearchItems matches the text case-insensitively against name and
// description; only available items are returned.
func (r *ItemRepository) SearchItems(ctx context.Context, text string) ([]domain.Item, error) {
	const query = `
SELECT ` + itemColumns + `
FROM items
WHERE available AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
ORDER BY id`

	rows, err := r.query(ctx, query, text)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return r.collect(rows)
}

func (r *ItemRepository) collect(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var i domain.Item
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ItemRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *ItemRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
