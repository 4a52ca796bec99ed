package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewStore(mock)
}

func f(v float64) *float64 { return &v }

func TestFindFree(t *testing.T) {
	mock, store := newMockStore(t)

	start := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT s.id, s.date_start, s.status").
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "date_start", "status", "doctor_name",
			"id_clinic", "clinic_name", "address", "city", "lat", "lng",
		}).
			AddRow(int64(1), start.Add(time.Hour), "free", "Rossi",
				int64(3), "Poliambulatorio Centro", "Via Verdi 10", "Trento", f(46.07), f(11.12)).
			AddRow(int64(2), start.Add(2*time.Hour), "free", "Bianchi",
				int64(4), "Ambulatorio Nord", "Via Roma 1", "Bolzano", nil, nil))

	got, err := store.FindFree(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, got[0].DateStart.Add(30*time.Minute), got[0].DateEnd)
	assert.Nil(t, got[1].Latitude, "missing coordinates must stay nil")
	assert.Nil(t, got[1].Longitude, "missing coordinates must stay nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFreeEmptyWindow(t *testing.T) {
	mock, store := newMockStore(t)

	start := time.Now()
	mock.ExpectQuery("SELECT s.id").
		WithArgs(start, start).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "date_start", "status", "doctor_name",
			"id_clinic", "clinic_name", "address", "city", "lat", "lng",
		}))

	got, err := store.FindFree(context.Background(), start, start)
	require.NoError(t, err)
	require.NotNil(t, got, "an empty window yields an empty slice, not nil")
	assert.Empty(t, got)
}

func TestFindFreeStorageFault(t *testing.T) {
	mock, store := newMockStore(t)

	start := time.Now()
	mock.ExpectQuery("SELECT s.id").
		WithArgs(start, start).
		WillReturnError(errors.New("connection refused"))

	_, err := store.FindFree(context.Background(), start, start)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestBookSuccess(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("UPDATE slots SET status = 'booked'").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, store.Book(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookAlreadyBooked(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("UPDATE slots SET status = 'booked'").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT status FROM slots").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("booked"))

	err := store.Book(context.Background(), 7)
	require.ErrorIs(t, err, ErrAlreadyBooked)
}

// Models the losing side of two concurrent bookings: the conditional update
// matches zero rows because the winner already flipped the status. The store
// must report a conflict, not a success and not a storage fault.
func TestBookLosesRace(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("UPDATE slots SET status = 'booked'").
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE slots SET status = 'booked'").
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT status FROM slots").
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("booked"))

	require.NoError(t, store.Book(context.Background(), 9), "first booking should win")
	err := store.Book(context.Background(), 9)
	require.ErrorIs(t, err, ErrAlreadyBooked, "second booking should conflict")
}

func TestBookNotFound(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("UPDATE slots SET status = 'booked'").
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("SELECT status FROM slots").
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}))

	err := store.Book(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBookStorageFault(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectExec("UPDATE slots SET status = 'booked'").
		WithArgs(int64(7)).
		WillReturnError(errors.New("broken pipe"))

	err := store.Book(context.Background(), 7)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrAlreadyBooked, "storage fault must not look like a conflict")
}

func TestGetDetails(t *testing.T) {
	mock, store := newMockStore(t)

	when := time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT s.date_start, c.name AS clinic").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"date_start", "clinic", "address", "city", "doctor"}).
			AddRow(when, "Poliambulatorio Centro", "Via Verdi 10", "Trento", "Rossi"))

	d, err := store.GetDetails(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Poliambulatorio Centro", d.Clinic)
	assert.Equal(t, "Rossi", d.Doctor)
	assert.True(t, d.DateStart.Equal(when))
}

func TestGetDetailsNotFound(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("SELECT s.date_start, c.name AS clinic").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"date_start", "clinic", "address", "city", "doctor"}))

	_, err := store.GetDetails(context.Background(), 5)
	require.ErrorIs(t, err, ErrNotFound)
}
