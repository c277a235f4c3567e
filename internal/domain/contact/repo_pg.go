package contact

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ambulance/ambulance/internal/platform/db"
)

type contactRepoPG struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) Repository {
	return &contactRepoPG{pool: pool}
}

func (r *contactRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const contactColumns = `id, user_id, name, phone, relationship, notes, is_primary, created_at, updated_at`

func (r *contactRepoPG) Create(ctx context.Context, c *Contact) error {
	c.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO emergency_contacts (id, user_id, name, phone, relationship, notes, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		c.ID, c.UserID, c.Name, c.Phone, c.Relationship, c.Notes, c.IsPrimary,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return writeErr("insert emergency contact", err)
	}
	return nil
}

func (r *contactRepoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Contact, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+contactColumns+` FROM emergency_contacts
		WHERE user_id = $1
		ORDER BY is_primary DESC, created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list emergency contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*Contact{}
	for rows.Next() {
		c, err := r.scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *contactRepoPG) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM emergency_contacts WHERE user_id = $1`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count emergency contacts: %w", err)
	}
	return n, nil
}

func (r *contactRepoPG) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error) {
	return r.scanContact(r.conn(ctx).QueryRow(ctx,
		`SELECT `+contactColumns+` FROM emergency_contacts WHERE id = $1 AND user_id = $2`, id, ownerID))
}

func (r *contactRepoPG) Update(ctx context.Context, c *Contact) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE emergency_contacts SET
			name = $3, phone = $4, relationship = $5, notes = $6, is_primary = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`,
		c.ID, c.UserID, c.Name, c.Phone, c.Relationship, c.Notes, c.IsPrimary,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotFoundOrForbidden
		}
		return writeErr("update emergency contact", err)
	}
	return nil
}

func (r *contactRepoPG) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM emergency_contacts WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete emergency contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (r *contactRepoPG) ClearPrimary(ctx context.Context, ownerID, keep uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE emergency_contacts SET is_primary = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND id <> $2 AND is_primary`, ownerID, keep)
	if err != nil {
		return fmt.Errorf("clear primary contact: %w", err)
	}
	return nil
}

func (r *contactRepoPG) MarkPrimary(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE emergency_contacts SET is_primary = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return writeErr("mark primary contact", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (r *contactRepoPG) PromoteOldest(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE emergency_contacts SET is_primary = TRUE, updated_at = NOW()
		WHERE id = (
			SELECT id FROM emergency_contacts
			WHERE user_id = $1
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		)`, ownerID)
	if err != nil {
		return writeErr("promote oldest contact", err)
	}
	return nil
}

// writeErr maps a violation of the one-primary-per-owner index to
// ErrPrimaryConflict.
func writeErr(op string, err error) error {
	if db.IsUniqueViolation(err) {
		return ErrPrimaryConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *contactRepoPG) scanContact(row pgx.Row) (*Contact, error) {
	var c Contact
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Relationship, &c.Notes, &c.IsPrimary,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("scan emergency contact: %w", err)
	}
	return &c, nil
}
