package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/schedule"
	"github.com/m04kA/SMC-TeeTimeService/pkg/logger"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

var (
	// вторник
	testDate = time.Date(2026, 5, 19, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 5, 18, 10, 0, 0, 0, time.UTC)
)

type memBookings struct {
	bookings  []*domain.Booking
	createErr error
}

func (r *memBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	b.ID = int64(len(r.bookings) + 1)
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *memBookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Date != nil && !b.BookingDate.Equal(*filter.Date) {
			continue
		}
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

type memWaitlist struct {
	entries []*domain.WaitlistEntry
}

func (r *memWaitlist) ListByDate(_ context.Context, _ time.Time, _ ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	return r.entries, nil
}

type staticTemplate struct {
	day *domain.DaySchedule
}

func (s staticTemplate) GetOperatingTemplate(_ context.Context, date time.Time) (*domain.DaySchedule, error) {
	day := *s.day
	day.Date = date
	return &day, nil
}

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingMetrics struct {
	created  map[string]int
	rejected map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{created: map[string]int{}, rejected: map[string]int{}}
}

func (m *countingMetrics) BookingCreated(_ int, source string) { m.created[source]++ }
func (m *countingMetrics) BookingRejected(reason string)       { m.rejected[reason]++ }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func testDay() *domain.DaySchedule {
	return &domain.DaySchedule{
		Status: domain.DayNormal,
		OperatingTemplate: domain.OperatingTemplate{
			StartTime:           types.MustTimeString("06:00"),
			EndTime:             types.MustTimeString("17:00"),
			IntervalMinutes:     10,
			TurnDurationMinutes: 150,
			PeakWindows: []domain.PeakWindow{
				{ID: "morning", Name: "Morning", Start: types.MustTimeString("06:00"), End: types.MustTimeString("09:20"), MaxGroups: 20, Reserved: 1},
			},
		},
	}
}

type fixture struct {
	uc       *UseCase
	bookings *memBookings
	waitlist *memWaitlist
	metrics  *countingMetrics
}

func newFixture(day *domain.DaySchedule) *fixture {
	f := &fixture{
		bookings: &memBookings{},
		waitlist: &memWaitlist{},
		metrics:  newCountingMetrics(),
	}
	f.uc = NewUseCase(f.bookings, f.waitlist, staticTemplate{day: day}, passTx{}, f.metrics, logger.Nop())
	f.uc.timeProvider = fixedTime{now: testNow}
	return f
}

func request(start string, holes domain.Holes) *Request {
	return &Request{
		UserID:      42,
		Date:        testDate,
		StartTime:   types.MustTimeString(start),
		Holes:       holes,
		PlayerCount: 4,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(testDay())

	resp, err := f.uc.Execute(context.Background(), request("10:00", domain.Holes18))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 1, f.metrics.created["public"])
}

func TestExecute_RepeatBookingIsSlotTaken(t *testing.T) {
	f := newFixture(testDay())
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("10:00", domain.Holes9))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("10:00", domain.Holes9))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 1, f.metrics.rejected["slot_taken"])
	assert.Len(t, f.bookings.bookings, 1)
}

func TestExecute_EighteenHolesBlockTurn(t *testing.T) {
	f := newFixture(testDay())
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("10:00", domain.Holes18))
	require.NoError(t, err)

	// 10:00 + 150 минут
	_, err = f.uc.Execute(ctx, request("12:30", domain.Holes9))
	require.ErrorIs(t, err, ErrSlotTaken)

	var conflict *schedule.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, schedule.RuleIncomingTurn, conflict.Rule)

	_, err = f.uc.Execute(ctx, request("12:40", domain.Holes9))
	assert.NoError(t, err)
}

func TestExecute_PeakWindowFull(t *testing.T) {
	f := newFixture(testDay())
	ctx := context.Background()

	// 20 групп на 06:00..09:10
	for m := 6 * 60; m < 9*60+20; m += 10 {
		start, err := types.NewTimeStringFromMinutes(m)
		require.NoError(t, err)
		_, err = f.uc.Execute(ctx, request(start.String(), domain.Holes9))
		require.NoError(t, err, "start %s", start)
	}
	require.Len(t, f.bookings.bookings, 20)

	_, err := f.uc.Execute(ctx, request("09:20", domain.Holes9))
	require.ErrorIs(t, err, ErrPeakWindowFull)

	var full *schedule.PeakFullError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, "morning", full.WindowID)
	assert.Equal(t, 20, full.Count)
	assert.Equal(t, 1, f.metrics.rejected["peak_full"])

	privileged := request("09:20", domain.Holes9)
	privileged.Privileged = true
	_, err = f.uc.Execute(ctx, privileged)
	require.NoError(t, err)
	assert.Equal(t, 1, f.metrics.created["privileged"])
}

func TestExecute_HeldSlotIsTaken(t *testing.T) {
	f := newFixture(testDay())
	lockExpiry := testNow.Add(time.Hour)
	offered := types.MustTimeString("11:00")
	holes := domain.Holes9
	f.waitlist.entries = []*domain.WaitlistEntry{{
		ID:           5,
		Date:         testDate,
		Status:       domain.WaitlistNotified,
		LockExpiry:   &lockExpiry,
		OfferedStart: &offered,
		OfferedHoles: &holes,
	}}

	_, err := f.uc.Execute(context.Background(), request("11:00", domain.Holes9))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// истекшее удержание не мешает
	expired := testNow.Add(-time.Minute)
	f.waitlist.entries[0].LockExpiry = &expired
	_, err = f.uc.Execute(context.Background(), request("11:00", domain.Holes9))
	assert.NoError(t, err)
}

func TestExecute_StoreConflictIsSlotTaken(t *testing.T) {
	f := newFixture(testDay())
	f.bookings.createErr = fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})

	_, err := f.uc.Execute(context.Background(), request("10:00", domain.Holes9))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 1, f.metrics.rejected["slot_taken"])
}

func TestExecute_InternalStoreError(t *testing.T) {
	f := newFixture(testDay())
	f.bookings.createErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), request("10:00", domain.Holes9))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Rejections(t *testing.T) {
	closed := testDay()
	closed.Status = domain.DayEmergencyClosed

	tests := []struct {
		name    string
		day     *domain.DaySchedule
		req     *Request
		wantErr error
	}{
		{name: "closed day", day: closed, req: request("10:00", domain.Holes9), wantErr: ErrCourseClosed},
		{name: "off grid", day: testDay(), req: request("10:05", domain.Holes9), wantErr: ErrInvalidTimeSlot},
		{name: "too late for 18", day: testDay(), req: request("14:40", domain.Holes18), wantErr: ErrTooLateForDuration},
		{name: "five players", day: testDay(), req: func() *Request { r := request("10:00", domain.Holes9); r.PlayerCount = 5; return r }(), wantErr: ErrInvalidInput},
		{name: "ten holes", day: testDay(), req: request("10:00", domain.Holes(10)), wantErr: ErrInvalidInput},
		{name: "past date", day: testDay(), req: func() *Request { r := request("10:00", domain.Holes9); r.Date = testNow.AddDate(0, 0, -2); return r }(), wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.day)
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.bookings)
		})
	}
}
