package hospital

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ambulance/ambulance/internal/platform/db"
	"github.com/ambulance/ambulance/pkg/pagination"
)

type hospitalRepoPG struct {
	pool *pgxpool.Pool
}

func NewHospitalRepo(pool *pgxpool.Pool) Repository {
	return &hospitalRepoPG{pool: pool}
}

func (r *hospitalRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const hospitalColumns = `id, name, distance, travel_time, type, address, phone, rating, reviews,
	emergency, beds, ambulance_ready, specialties, image, website, created_at, updated_at`

func (r *hospitalRepoPG) Create(ctx context.Context, h *Hospital) error {
	h.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO hospitals (id, name, distance, travel_time, type, address, phone, rating, reviews,
			emergency, beds, ambulance_ready, specialties, image, website)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`,
		h.ID, h.Name, h.Distance, h.TravelTime, h.Type, h.Address, h.Phone, h.Rating, h.Reviews,
		h.Emergency, h.Beds, h.AmbulanceReady, h.Specialties, h.Image, h.Website,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return r.scanHospital(r.conn(ctx).QueryRow(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE id = $1`, id))
}

func (r *hospitalRepoPG) Update(ctx context.Context, h *Hospital) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE hospitals SET
			name = $2, distance = $3, travel_time = $4, type = $5, address = $6, phone = $7,
			rating = $8, reviews = $9, emergency = $10, beds = $11, ambulance_ready = $12,
			specialties = $13, image = $14, website = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		h.ID, h.Name, h.Distance, h.TravelTime, h.Type, h.Address, h.Phone,
		h.Rating, h.Reviews, h.Emergency, h.Beds, h.AmbulanceReady,
		h.Specialties, h.Image, h.Website,
	).Scan(&h.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrHospitalNotFound
		}
		return fmt.Errorf("update hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM hospitals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hospital: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrHospitalNotFound
	}
	return nil
}

func (r *hospitalRepoPG) Search(ctx context.Context, f Filter, p pagination.Params) ([]*Hospital, error) {
	q := db.NewQuery("hospitals", hospitalColumns)
	f.Apply(q)
	q.OrderBy("distance ASC, name ASC")

	rows, err := r.conn(ctx).Query(ctx, q.SQL(p), q.Args()...)
	if err != nil {
		return nil, fmt.Errorf("search hospitals: %w", err)
	}
	defer rows.Close()

	hospitals := []*Hospital{}
	for rows.Next() {
		h, err := r.scanHospital(rows)
		if err != nil {
			return nil, err
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, rows.Err()
}

func (r *hospitalRepoPG) scanHospital(row pgx.Row) (*Hospital, error) {
	var h Hospital
	err := row.Scan(&h.ID, &h.Name, &h.Distance, &h.TravelTime, &h.Type, &h.Address, &h.Phone,
		&h.Rating, &h.Reviews, &h.Emergency, &h.Beds, &h.AmbulanceReady, &h.Specialties,
		&h.Image, &h.Website, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrHospitalNotFound
		}
		return nil, fmt.Errorf("scan hospital: %w", err)
	}
	return &h, nil
}
