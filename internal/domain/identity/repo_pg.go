package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ambulance/ambulance/internal/platform/db"
	"github.com/ambulance/ambulance/pkg/pagination"
)

type userRepoPG struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) Repository {
	return &userRepoPG{pool: pool}
}

func (r *userRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const userColumns = `id, email, name, password_hash, role, disabled, email_verified,
	profile_picture, social_login, created_at, updated_at`

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO users (id, email, name, password_hash, role, disabled, email_verified, profile_picture, social_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.Disabled, u.EmailVerified, u.ProfilePicture, u.SocialLogin,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *userRepoPG) List(ctx context.Context, p pagination.Params) ([]*User, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`+p.SQL())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepoPG) Update(ctx context.Context, u *User) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE users SET
			email = $2, name = $3, password_hash = $4, email_verified = $5,
			profile_picture = $6, social_login = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.EmailVerified, u.ProfilePicture, u.SocialLogin,
	).Scan(&u.UpdatedAt)
	switch {
	case err == nil:
		return nil
	case db.IsNoRows(err):
		return ErrUserNotFound
	case db.IsUniqueViolation(err):
		return ErrDuplicateEmail
	}
	return fmt.Errorf("update user: %w", err)
}

func (r *userRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepoPG) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ToggleDisabled flips the flag in one statement so concurrent toggles do
// not lose an update.
func (r *userRepoPG) ToggleDisabled(ctx context.Context, id uuid.UUID) (bool, error) {
	var disabled bool
	err := r.conn(ctx).QueryRow(ctx,
		`UPDATE users SET disabled = NOT disabled, updated_at = NOW() WHERE id = $1 RETURNING disabled`,
		id).Scan(&disabled)
	if err != nil {
		if db.IsNoRows(err) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("toggle disabled: %w", err)
	}
	return disabled, nil
}

func (r *userRepoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Disabled, &u.EmailVerified,
		&u.ProfilePicture, &u.SocialLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
