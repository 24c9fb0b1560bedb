package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

var testDate = time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func bookingRows(mock sqlmock.Sqlmock) *sqlmock.Rows {
	now := time.Now()
	return mock.NewRows(columns).
		AddRow(int64(1), int64(10), testDate, "07:00:00", 18, 4, "confirmed", false, nil, nil, nil, now, now).
		AddRow(int64(2), int64(11), testDate, "07:10:00", 9, 2, "checked_in", true, int64(7), nil, now, now, now)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(int64(10), testDate, "07:00", 18, 4, "confirmed", false, nil).
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(99), now, now))

	b, err := repo.Create(context.Background(), &domain.Booking{
		UserID:      10,
		BookingDate: testDate,
		StartTime:   types.MustTimeString("07:00"),
		Holes:       domain.Holes18,
		PlayerCount: 4,
		Status:      domain.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
		want error
	}{
		{"unique violation", "23505", ErrSlotTaken},
		{"serialization failure", "40001", ErrSlotTaken},
		{"other", "23503", ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			mock.ExpectQuery("INSERT INTO bookings").
				WillReturnError(&pq.Error{Code: tt.code})

			_, err := repo.Create(context.Background(), &domain.Booking{
				BookingDate: testDate,
				StartTime:   types.MustTimeString("07:00"),
				Holes:       domain.Holes9,
				PlayerCount: 1,
				Status:      domain.StatusConfirmed,
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsSlotConflict(t *testing.T) {
	assert.True(t, IsSlotConflict(&pq.Error{Code: "23505"}))
	assert.True(t, IsSlotConflict(errors.Join(errors.New("commit"), &pq.Error{Code: "40001"})))
	assert.False(t, IsSlotConflict(errors.New("boom")))
	assert.False(t, IsSlotConflict(nil))
}

func TestRepository_List_ByDateInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE booking_date = \\$1 AND status <> \\$2 ORDER BY start_time ASC, id ASC FOR UPDATE").
		WithArgs(testDate, "cancelled").
		WillReturnRows(bookingRows(mock))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	date := testDate
	bookings, err := repo.List(dbmetrics.WithTx(context.Background(), tx), domain.BookingsFilter{Date: &date})
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, domain.Holes18, bookings[0].Holes)
	assert.Equal(t, types.TimeString("07:00"), bookings[0].StartTime)
	assert.Nil(t, bookings[0].WaitlistEntryID)

	assert.Equal(t, domain.StatusCheckedIn, bookings[1].Status)
	assert.True(t, bookings[1].Privileged)
	require.NotNil(t, bookings[1].WaitlistEntryID)
	assert.Equal(t, int64(7), *bookings[1].WaitlistEntryID)
	assert.NotNil(t, bookings[1].CheckedInAt)
}

func TestRepository_List_ByUserNoLock(t *testing.T) {
	repo, mock := newMock(t)
	userID := int64(10)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, booking_date, start_time, holes, player_count, status, privileged, waitlist_entry_id, cancelled_at, checked_in_at, created_at, updated_at FROM bookings WHERE user_id = $1 ORDER BY booking_date DESC, start_time DESC")).
		WithArgs(userID).
		WillReturnRows(bookingRows(mock))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{UserID: &userID, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(mock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_UpdateStatus(t *testing.T) {
	at := time.Date(2026, 5, 14, 6, 30, 0, 0, time.UTC)

	t.Run("cancel sets cancelled_at", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = $2, cancelled_at = $3 WHERE id = $4 AND status = $5")).
			WithArgs("cancelled", at, at, int64(3), "confirmed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(context.Background(), 3, domain.StatusConfirmed, domain.StatusCancelled, at))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost race", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectExec("UPDATE bookings").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), 3, domain.StatusConfirmed, domain.StatusCheckedIn, at)
		assert.ErrorIs(t, err, ErrStatusConflict)
	})
}
