package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Booking outcomes and store failures. ErrAlreadyBooked and ErrNotFound are
// normal outcomes; ErrUnavailable means the storage layer itself failed and
// must never be reported as "slot occupied".
var (
	ErrNotFound      = errors.New("slots: slot not found")
	ErrAlreadyBooked = errors.New("slots: slot already booked")
	ErrUnavailable   = errors.New("slots: storage unavailable")
)

// PgxPool is the subset of pgxpool.Pool the store needs. pgxmock satisfies it
// in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store provides slot persistence on Postgres.
type Store struct {
	pool PgxPool
}

// NewStore creates a store backed by a pgx pool.
func NewStore(pool PgxPool) *Store {
	if pool == nil {
		panic("slots: pgx pool required")
	}
	return &Store{pool: pool}
}

// slotDuration pads each slot with an end time for response compatibility;
// the schema only stores the start.
const slotDuration = 30 * time.Minute

// FindFree returns every free slot starting inside the inclusive window,
// joined with the doctor's name and the owning clinic's identity, address and
// coordinates. Ordering is unspecified; callers re-order.
func (s *Store) FindFree(ctx context.Context, windowStart, windowEnd time.Time) ([]Slot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT s.id, s.date_start, s.status,
		       d.name AS doctor_name,
		       c.id AS id_clinic, c.name AS clinic_name, c.address, c.city, c.lat, c.lng
		FROM slots s
		JOIN doctors d ON s.doctor_id = d.id
		JOIN clinics c ON d.clinic_id = c.id
		WHERE s.status = 'free'
		  AND s.date_start >= $1
		  AND s.date_start <= $2`, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("slots: query free slots: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var sl Slot
		if err := rows.Scan(&sl.ID, &sl.DateStart, &sl.Status, &sl.DoctorName,
			&sl.ClinicID, &sl.ClinicName, &sl.Address, &sl.City, &sl.Latitude, &sl.Longitude); err != nil {
			return nil, fmt.Errorf("slots: scan slot row: %w: %w", ErrUnavailable, err)
		}
		sl.DateEnd = sl.DateStart.Add(slotDuration)
		out = append(out, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("slots: read free slots: %w: %w", ErrUnavailable, err)
	}
	if out == nil {
		out = []Slot{}
	}
	return out, nil
}

// Book transitions a slot from free to booked as a single conditional update.
// Two concurrent calls on the same free slot produce exactly one nil return;
// the loser sees ErrAlreadyBooked. The status probe after a zero-row update
// only classifies the failure, it plays no part in the transition itself.
func (s *Store) Book(ctx context.Context, slotID int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE slots SET status = 'booked' WHERE id = $1 AND status = 'free'`, slotID)
	if err != nil {
		return fmt.Errorf("slots: book slot %d: %w: %w", slotID, ErrUnavailable, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var status string
	err = s.pool.QueryRow(ctx, `SELECT status FROM slots WHERE id = $1`, slotID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("slots: check slot %d status: %w: %w", slotID, ErrUnavailable, err)
	}
	return ErrAlreadyBooked
}

// GetDetails returns the denormalized slot, doctor and clinic fields used in
// confirmation notifications.
func (s *Store) GetDetails(ctx context.Context, slotID int64) (*SlotDetail, error) {
	var d SlotDetail
	err := s.pool.QueryRow(ctx, `
		SELECT s.date_start, c.name AS clinic, c.address, c.city, d.name AS doctor
		FROM slots s
		JOIN doctors d ON s.doctor_id = d.id
		JOIN clinics c ON d.clinic_id = c.id
		WHERE s.id = $1`, slotID).Scan(&d.DateStart, &d.Clinic, &d.Address, &d.City, &d.Doctor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("slots: load slot %d details: %w: %w", slotID, ErrUnavailable, err)
	}
	return &d, nil
}
