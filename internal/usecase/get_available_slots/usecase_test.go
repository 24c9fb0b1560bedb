package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

var testDate = time.Date(2026, 5, 19, 0, 0, 0, 0, time.UTC)

type stubBookings struct{ bookings []*domain.Booking }

func (s stubBookings) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, nil
}

type stubWaitlist struct{ entries []*domain.WaitlistEntry }

func (s stubWaitlist) ListByDate(context.Context, time.Time, ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	return s.entries, nil
}

type stubTemplate struct{ day domain.DaySchedule }

func (s stubTemplate) GetOperatingTemplate(context.Context, time.Time) (*domain.DaySchedule, error) {
	day := s.day
	return &day, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func smallDay() domain.DaySchedule {
	return domain.DaySchedule{
		Date:   testDate,
		Status: domain.DayNormal,
		OperatingTemplate: domain.OperatingTemplate{
			StartTime:           types.MustTimeString("06:00"),
			EndTime:             types.MustTimeString("08:00"),
			IntervalMinutes:     15,
			TurnDurationMinutes: 60,
			PeakWindows: []domain.PeakWindow{
				{ID: "dawn", Name: "Dawn", Start: types.MustTimeString("06:00"), End: types.MustTimeString("06:30"), MaxGroups: 1, Reserved: 1},
			},
		},
	}
}

func newUseCase(day domain.DaySchedule, bookings []*domain.Booking, entries []*domain.WaitlistEntry, now time.Time) *UseCase {
	uc := NewUseCase(stubBookings{bookings}, stubWaitlist{entries}, stubTemplate{day}, logger.Nop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func statesByStart(slots []Slot) map[string]domain.SlotState {
	out := make(map[string]domain.SlotState, len(slots))
	for _, s := range slots {
		out[s.StartTime.String()] = s.State
	}
	return out
}

func TestExecute_TeeSheet(t *testing.T) {
	lockExpiry := testDate.Add(-time.Hour).Add(3 * time.Hour)
	held := types.MustTimeString("07:30")
	heldHoles := domain.Holes9

	bookings := []*domain.Booking{
		{ID: 1, BookingDate: testDate, StartTime: types.MustTimeString("06:00"), Holes: domain.Holes18, Status: domain.StatusConfirmed},
	}
	entries := []*domain.WaitlistEntry{
		{ID: 9, Date: testDate, Status: domain.WaitlistNotified, LockExpiry: &lockExpiry, OfferedStart: &held, OfferedHoles: &heldHoles},
	}
	now := testDate.Add(-time.Hour)

	resp, err := newUseCase(smallDay(), bookings, entries, now).Execute(context.Background(), &Request{Date: testDate, Holes: domain.Holes9})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 9)
	states := statesByStart(resp.Slots)
	assert.Equal(t, domain.SlotBooked, states["06:00"])
	assert.Equal(t, domain.SlotPeakFull, states["06:15"])
	assert.Equal(t, domain.SlotTurnReserved, states["07:00"])
	assert.Equal(t, domain.SlotHeld, states["07:30"])
	assert.Equal(t, domain.SlotAvailable, states["06:45"])

	for _, s := range resp.Slots {
		if s.StartTime == "06:15" {
			assert.True(t, s.SuggestWaitlist)
			assert.Equal(t, "dawn", s.PeakWindowID)
		}
	}

	require.Len(t, resp.PeakWindows, 1)
	assert.Equal(t, 1, resp.PeakWindows[0].Booked)
	assert.True(t, resp.PeakWindows[0].Full)
	assert.False(t, resp.PeakWindows[0].PrivilegedFull)
}

func TestExecute_TodayHidesPastStarts(t *testing.T) {
	now := testDate.Add(7*time.Hour + 10*time.Minute)

	resp, err := newUseCase(smallDay(), nil, nil, now).Execute(context.Background(), &Request{Date: testDate, Holes: domain.Holes9})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("07:15"), resp.Slots[0].StartTime)
}

func TestExecute_ClosedDay(t *testing.T) {
	day := smallDay()
	day.Status = domain.DayClosed

	resp, err := newUseCase(day, nil, nil, testDate.Add(-time.Hour)).Execute(context.Background(), &Request{Date: testDate, Holes: domain.Holes9})
	require.NoError(t, err)
	assert.Equal(t, domain.DayClosed, resp.Status)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(smallDay(), nil, nil, testDate.AddDate(0, 0, 1))

	_, err := uc.Execute(context.Background(), &Request{Date: testDate, Holes: domain.Holes9})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{Date: testDate, Holes: 27})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
