package location

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ambulance/ambulance/internal/platform/db"
)

type locationRepoPG struct {
	pool *pgxpool.Pool
}

func NewLocationRepo(pool *pgxpool.Pool) Repository {
	return &locationRepoPG{pool: pool}
}

func (r *locationRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const locationColumns = `id, user_id, name, address, type, notes, is_default, coordinates, created_at, updated_at`

func (r *locationRepoPG) Create(ctx context.Context, l *Location) error {
	l.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO locations (id, user_id, name, address, type, notes, is_default, coordinates)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		l.ID, l.UserID, l.Name, l.Address, l.Type, l.Notes, l.IsDefault, l.Coordinates,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return writeErr("insert location", err)
	}
	return nil
}

func (r *locationRepoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Location, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+locationColumns+` FROM locations
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := []*Location{}
	for rows.Next() {
		l, err := r.scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *locationRepoPG) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*Location, error) {
	return r.scanLocation(r.conn(ctx).QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1 AND user_id = $2`, id, ownerID))
}

func (r *locationRepoPG) Update(ctx context.Context, l *Location) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE locations SET
			name = $3, address = $4, type = $5, notes = $6, is_default = $7,
			coordinates = $8, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`,
		l.ID, l.UserID, l.Name, l.Address, l.Type, l.Notes, l.IsDefault, l.Coordinates,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFoundOrForbidden
		}
		return writeErr("update location", err)
	}
	return nil
}

func (r *locationRepoPG) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM locations WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (r *locationRepoPG) ClearDefault(ctx context.Context, ownerID, keep uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE locations SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND id <> $2 AND is_default`, ownerID, keep)
	if err != nil {
		return fmt.Errorf("clear default location: %w", err)
	}
	return nil
}

func (r *locationRepoPG) MarkDefault(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE locations SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return writeErr("mark default location", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

// writeErr maps a violation of the one-default-per-owner index to
// ErrDefaultConflict.
func writeErr(op string, err error) error {
	if db.IsUniqueViolation(err) {
		return ErrDefaultConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *locationRepoPG) scanLocation(row pgx.Row) (*Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Address, &l.Type, &l.Notes, &l.IsDefault,
		&l.Coordinates, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("scan location: %w", err)
	}
	return &l, nil
}
