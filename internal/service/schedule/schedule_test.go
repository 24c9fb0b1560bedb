package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/ptr"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newDay(mutators ...func(*domain.DaySchedule)) domain.DaySchedule {
	day := domain.MergeTemplate(domain.OperatingTemplate{
		StartTime:           "06:00",
		EndTime:             "17:00",
		IntervalMinutes:     5,
		TurnDurationMinutes: 150,
		PeakWindows: []domain.PeakWindow{
			{ID: "A", Start: "06:00", End: "08:00", MaxGroups: 20, Reserved: 2},
		},
		Overflow: &domain.OverflowWindow{Start: "08:05", End: "09:00", AfterWindowID: "A", WeekdaysOnly: true},
	}, nil, monday)
	for _, m := range mutators {
		m(&day)
	}
	return day
}

func booking(id int64, start string, holes domain.Holes) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		BookingDate: monday,
		StartTime:   types.MustTimeString(start),
		Holes:       holes,
		PlayerCount: 4,
		Status:      domain.StatusConfirmed,
	}
}

func TestGenerate_GridProperties(t *testing.T) {
	tests := []struct {
		start, end string
		interval   int
	}{
		{"06:00", "17:00", 3},
		{"06:00", "17:00", 5},
		{"06:00", "17:01", 6},
		{"05:30", "18:47", 10},
		{"07:00", "07:14", 15},
		{"07:00", "07:15", 15},
		{"00:00", "23:59", 15},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			day := newDay(func(d *domain.DaySchedule) {
				d.StartTime = types.MustTimeString(tt.start)
				d.EndTime = types.MustTimeString(tt.end)
				d.IntervalMinutes = tt.interval
				d.PeakWindows = nil
				d.Overflow = nil
			})

			grid, err := Generate(day)
			require.NoError(t, err)

			span := day.EndTime.Minutes() - day.StartTime.Minutes()
			assert.Len(t, grid, span/tt.interval+1)
			assert.Equal(t, day.StartTime, grid[0])
			assert.False(t, grid[len(grid)-1].IsAfter(day.EndTime))
			for i := 1; i < len(grid); i++ {
				assert.True(t, grid[i].IsAfter(grid[i-1]))
			}

			again, err := Generate(day)
			require.NoError(t, err)
			assert.Equal(t, grid, again)
		})
	}
}

func TestGenerate_InvalidTemplate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.DaySchedule)
	}{
		{"end equals start", func(d *domain.DaySchedule) { d.EndTime = d.StartTime }},
		{"end before start", func(d *domain.DaySchedule) { d.EndTime = "05:00" }},
		{"interval 7", func(d *domain.DaySchedule) { d.IntervalMinutes = 7 }},
		{"interval 0", func(d *domain.DaySchedule) { d.IntervalMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(newDay(tt.mutate))
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

func TestGenerate_ClosedDayIsEmpty(t *testing.T) {
	grid, err := Generate(newDay(func(d *domain.DaySchedule) { d.Status = domain.DayClosed }))
	require.NoError(t, err)
	assert.Empty(t, grid)
}

func TestCheckAvailability_SameStartTwice(t *testing.T) {
	day := newDay()
	require.NoError(t, CheckAvailability(day, "10:00", domain.Holes9, nil, nil))

	existing := []*domain.Booking{booking(1, "10:00", domain.Holes9)}
	err := CheckAvailability(day, "10:00", domain.Holes9, existing, nil)

	assert.ErrorIs(t, err, ErrSlotTaken)
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, RuleDirect, conflict.Rule)
}

func TestCheckAvailability_CancelledBookingFreesSlot(t *testing.T) {
	cancelled := booking(1, "10:00", domain.Holes18)
	cancelled.Status = domain.StatusCancelled

	assert.NoError(t, CheckAvailability(newDay(), "10:00", domain.Holes9, []*domain.Booking{cancelled}, nil))
	assert.NoError(t, CheckAvailability(newDay(), "12:30", domain.Holes9, []*domain.Booking{cancelled}, nil))
}

func TestCheckAvailability_TurnExclusion(t *testing.T) {
	day := newDay()

	tests := []struct {
		name     string
		existing *domain.Booking
		start    string
		holes    domain.Holes
		rule     ConflictRule
	}{
		{"18 at T blocks 9 at T+turn", booking(1, "10:00", domain.Holes18), "12:30", domain.Holes9, RuleIncomingTurn},
		{"18 at T blocks 18 at T+turn", booking(1, "10:00", domain.Holes18), "12:30", domain.Holes18, RuleIncomingTurn},
		{"9 at T+turn blocks 18 at T", booking(1, "12:30", domain.Holes9), "10:00", domain.Holes18, RuleTurnCollision},
		{"18 at T+turn blocks 18 at T", booking(1, "12:30", domain.Holes18), "10:00", domain.Holes18, RuleTurnCollision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAvailability(day, types.MustTimeString(tt.start), tt.holes, []*domain.Booking{tt.existing}, nil)
			require.ErrorIs(t, err, ErrSlotTaken)

			var conflict *ConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, tt.rule, conflict.Rule)
		})
	}

	t.Run("9 holes never reserve a turn", func(t *testing.T) {
		existing := []*domain.Booking{booking(1, "10:00", domain.Holes9)}
		assert.NoError(t, CheckAvailability(day, "12:30", domain.Holes9, existing, nil))
	})

	t.Run("neighbouring slot is free", func(t *testing.T) {
		existing := []*domain.Booking{booking(1, "10:00", domain.Holes18)}
		assert.NoError(t, CheckAvailability(day, "12:35", domain.Holes18, existing, nil))
	})
}

func TestCheckAvailability_Validation(t *testing.T) {
	day := newDay()

	assert.NoError(t, CheckAvailability(day, "14:30", domain.Holes18, nil, nil))
	assert.ErrorIs(t, CheckAvailability(day, "14:35", domain.Holes18, nil, nil), ErrTooLateForDuration)
	assert.NoError(t, CheckAvailability(day, "16:55", domain.Holes9, nil, nil))
	assert.ErrorIs(t, CheckAvailability(day, "10:02", domain.Holes9, nil, nil), ErrInvalidTimeSlot)
	assert.ErrorIs(t, CheckAvailability(day, "17:05", domain.Holes9, nil, nil), ErrInvalidTimeSlot)
	assert.ErrorIs(t, CheckAvailability(day, "10:00", domain.Holes(27), nil, nil), ErrInvalidHoles)

	closed := newDay(func(d *domain.DaySchedule) { d.Status = domain.DayEmergencyClosed })
	assert.ErrorIs(t, CheckAvailability(closed, "10:00", domain.Holes9, nil, nil), ErrCourseClosed)
}

func TestCheckAvailability_Holds(t *testing.T) {
	now := monday.Add(8 * time.Hour)
	entries := []*domain.WaitlistEntry{
		{
			ID:           7,
			Status:       domain.WaitlistNotified,
			LockExpiry:   ptr.Ptr(now.Add(time.Hour)),
			OfferedStart: ptr.Ptr(types.TimeString("10:00")),
			OfferedHoles: ptr.Ptr(domain.Holes18),
		},
		{
			ID:           8,
			Status:       domain.WaitlistNotified,
			LockExpiry:   ptr.Ptr(now.Add(-time.Minute)),
			OfferedStart: ptr.Ptr(types.TimeString("11:00")),
		},
	}

	holds := HoldsFromEntries(entries, now, 0)
	require.Len(t, holds, 1)

	day := newDay()
	assert.ErrorIs(t, CheckAvailability(day, "10:00", domain.Holes9, nil, holds), ErrSlotTaken)
	assert.ErrorIs(t, CheckAvailability(day, "12:30", domain.Holes9, nil, holds), ErrSlotTaken)
	assert.NoError(t, CheckAvailability(day, "11:00", domain.Holes9, nil, holds), "expired hold is free")

	own := HoldsFromEntries(entries, now, 7)
	assert.NoError(t, CheckAvailability(day, "10:00", domain.Holes18, nil, own))
}

// fillWindow бронирует n стартов подряд с начала окна A
func fillWindow(n int) []*domain.Booking {
	bookings := make([]*domain.Booking, 0, n)
	start := types.MustTimeString("06:00")
	for i := 0; i < n; i++ {
		at, _ := start.AddMinutes(i * 5)
		bookings = append(bookings, booking(int64(i+1), at.String(), domain.Holes9))
	}
	return bookings
}

func TestTracker_PeakWindowFull(t *testing.T) {
	day := newDay()
	window, _ := day.PeakWindow("A")

	nineteen := fillWindow(19)
	tracker := NewTracker(day, nineteen, nil)
	assert.False(t, tracker.IsFull(window))
	assert.NoError(t, Evaluate(day, "07:40", domain.Holes9, false, nineteen, nil))

	twenty := fillWindow(20)
	tracker = NewTracker(day, twenty, nil)
	assert.Equal(t, 20, tracker.Count("A"))
	assert.True(t, tracker.IsFull(window))

	err := Evaluate(day, "07:40", domain.Holes9, false, twenty, nil)
	assert.ErrorIs(t, err, ErrPeakWindowFull)
	assert.False(t, errors.Is(err, ErrSlotTaken))

	var full *PeakFullError
	require.True(t, errors.As(err, &full))
	assert.Equal(t, "A", full.WindowID)

	assert.NoError(t, Evaluate(day, "07:40", domain.Holes9, true, twenty, nil), "reserved capacity for privileged path")
	assert.ErrorIs(t, Evaluate(day, "07:00", domain.Holes9, false, twenty, nil), ErrSlotTaken, "taken slot stays SlotTaken")
}

func TestTracker_WindowBoundaryIsInclusive(t *testing.T) {
	day := newDay()
	tracker := NewTracker(day, []*domain.Booking{booking(1, "08:00", domain.Holes9), booking(2, "08:05", domain.Holes9)}, nil)
	assert.Equal(t, 1, tracker.Count("A"))
}

func TestTracker_HoldsCountTowardCapacity(t *testing.T) {
	day := newDay()
	holds := []Hold{{EntryID: 1, StartTime: "07:55", Holes: domain.Holes9}}
	tracker := NewTracker(day, fillWindow(19), holds)
	assert.Equal(t, 20, tracker.Count("A"))
}

func TestTracker_Overflow(t *testing.T) {
	t.Run("locked until preceding window is full", func(t *testing.T) {
		day := newDay()
		assert.ErrorIs(t, Evaluate(day, "08:30", domain.Holes9, false, fillWindow(19), nil), ErrOverflowLocked)
		assert.NoError(t, Evaluate(day, "08:30", domain.Holes9, false, fillWindow(20), nil))
	})

	t.Run("weekdays only", func(t *testing.T) {
		holiday := newDay(func(d *domain.DaySchedule) { d.IsHoliday = true })
		assert.ErrorIs(t, Evaluate(holiday, "08:30", domain.Holes9, false, fillWindow(20), nil), ErrOverflowLocked)
	})

	t.Run("slots outside windows are unaffected", func(t *testing.T) {
		assert.NoError(t, Evaluate(newDay(), "10:00", domain.Holes9, false, nil, nil))
	})
}

func TestTeeSheet(t *testing.T) {
	day := newDay()
	bookings := append(fillWindow(20), booking(100, "10:00", domain.Holes18))

	sheet, err := TeeSheet(day, domain.Holes9, bookings, nil)
	require.NoError(t, err)

	byStart := make(map[types.TimeString]domain.TeeSlot, len(sheet))
	for _, s := range sheet {
		byStart[s.StartTime] = s
	}

	assert.Equal(t, domain.SlotBooked, byStart["06:00"].State)
	assert.Equal(t, "A", byStart["06:00"].PeakWindowID)
	assert.Equal(t, domain.SlotPeakFull, byStart["07:45"].State)
	peakFull := byStart["07:45"]
	assert.True(t, peakFull.SuggestsWaitlist())
	assert.Equal(t, domain.SlotAvailable, byStart["08:30"].State)
	assert.Equal(t, domain.SlotBooked, byStart["10:00"].State)
	assert.Equal(t, domain.SlotTurnReserved, byStart["12:30"].State)
	assert.Equal(t, domain.SlotAvailable, byStart["12:35"].State)
}
