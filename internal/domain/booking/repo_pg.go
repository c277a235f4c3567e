package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ambulance/ambulance/internal/platform/db"
	"github.com/ambulance/ambulance/pkg/pagination"
)

type bookingRepoPG struct {
	pool *pgxpool.Pool
}

func NewBookingRepo(pool *pgxpool.Pool) Repository {
	return &bookingRepoPG{pool: pool}
}

func (r *bookingRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const bookingColumns = `id, booking_id, user_id, booking_type, patient, ambulance_type,
	urgency, schedule, address, status, created_at, updated_at`

func (r *bookingRepoPG) Create(ctx context.Context, b *Booking) error {
	b.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO bookings (id, booking_id, user_id, booking_type, patient, ambulance_type,
			urgency, schedule, address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		b.ID, b.BookingID, b.UserID, b.BookingType, b.Patient, b.AmbulanceType,
		b.Urgency, b.Schedule, b.Address, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *bookingRepoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, p pagination.Params) ([]*Booking, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`+p.SQL(),
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*Booking{}
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepoPG) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*Booking, error) {
	return r.scanBooking(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 AND user_id = $2`, id, ownerID))
}

func (r *bookingRepoPG) SetStatus(ctx context.Context, ownerID, id uuid.UUID, status string) (*Booking, error) {
	return r.scanBooking(r.conn(ctx).QueryRow(ctx, `
		UPDATE bookings SET status = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+bookingColumns, id, ownerID, status))
}

func (r *bookingRepoPG) scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.BookingID, &b.UserID, &b.BookingType, &b.Patient, &b.AmbulanceType,
		&b.Urgency, &b.Schedule, &b.Address, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}
	return &b, nil
}
