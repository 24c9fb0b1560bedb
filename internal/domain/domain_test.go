package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeeTimeService/pkg/ptr"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

func globalTemplate() OperatingTemplate {
	return OperatingTemplate{
		StartTime:           types.MustTimeString("06:00"),
		EndTime:             types.MustTimeString("17:00"),
		IntervalMinutes:     10,
		TurnDurationMinutes: 150,
		PeakWindows: []PeakWindow{
			{ID: "A", Start: "06:00", End: "08:00", MaxGroups: 12, Reserved: 2},
			{ID: "B", Start: "11:00", End: "13:00", MaxGroups: 12},
		},
		Overflow: &OverflowWindow{Start: "08:10", End: "09:00", AfterWindowID: "A", WeekdaysOnly: true},
	}
}

func TestMergeTemplate(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	t.Run("no override keeps global values", func(t *testing.T) {
		got := MergeTemplate(globalTemplate(), nil, monday)
		assert.Equal(t, DayNormal, got.Status)
		assert.False(t, got.IsHoliday)
		assert.Equal(t, types.TimeString("06:00"), got.StartTime)
		assert.Len(t, got.PeakWindows, 2)
	})

	t.Run("weekend is a holiday", func(t *testing.T) {
		got := MergeTemplate(globalTemplate(), nil, saturday)
		assert.True(t, got.IsHoliday)
	})

	t.Run("override wins field by field", func(t *testing.T) {
		override := &CalendarOverride{
			Date:            monday,
			Status:          DayNormal,
			IsHoliday:       ptr.Ptr(true),
			EndTime:         ptr.Ptr(types.TimeString("12:00")),
			IntervalMinutes: ptr.Ptr(15),
		}
		got := MergeTemplate(globalTemplate(), override, monday)

		assert.True(t, got.IsHoliday)
		assert.Equal(t, types.TimeString("06:00"), got.StartTime)
		assert.Equal(t, types.TimeString("12:00"), got.EndTime)
		assert.Equal(t, 15, got.IntervalMinutes)
		assert.Equal(t, 150, got.TurnDurationMinutes)
		assert.Len(t, got.PeakWindows, 2)
	})

	t.Run("override can turn a weekend into a working day", func(t *testing.T) {
		override := &CalendarOverride{Date: saturday, IsHoliday: ptr.Ptr(false)}
		got := MergeTemplate(globalTemplate(), override, saturday)
		assert.False(t, got.IsHoliday)
	})

	t.Run("unset holiday flag keeps the weekend rule", func(t *testing.T) {
		override := &CalendarOverride{Date: saturday, Status: DayNormal}
		got := MergeTemplate(globalTemplate(), override, saturday)
		assert.True(t, got.IsHoliday)
	})

	t.Run("empty peak windows override clears windows", func(t *testing.T) {
		override := &CalendarOverride{Date: monday, PeakWindows: []PeakWindow{}}
		got := MergeTemplate(globalTemplate(), override, monday)
		assert.Empty(t, got.PeakWindows)
	})

	t.Run("closed status", func(t *testing.T) {
		override := &CalendarOverride{Date: monday, Status: DayEmergencyClosed}
		got := MergeTemplate(globalTemplate(), override, monday)
		assert.False(t, got.IsOpen())
	})

	t.Run("merge does not alias global windows", func(t *testing.T) {
		global := globalTemplate()
		got := MergeTemplate(global, nil, monday)
		got.PeakWindows[0].MaxGroups = 99
		assert.Equal(t, 12, global.PeakWindows[0].MaxGroups)
	})
}

func TestOperatingTemplate_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OperatingTemplate)
		ok     bool
	}{
		{name: "valid", mutate: func(*OperatingTemplate) {}, ok: true},
		{name: "end before start", mutate: func(t *OperatingTemplate) { t.EndTime = "05:00" }},
		{name: "end equals start", mutate: func(t *OperatingTemplate) { t.EndTime = "06:00" }},
		{name: "interval not allowed", mutate: func(t *OperatingTemplate) { t.IntervalMinutes = 7 }},
		{name: "duplicate window", mutate: func(t *OperatingTemplate) { t.PeakWindows[1].ID = "A" }},
		{name: "zero capacity", mutate: func(t *OperatingTemplate) { t.PeakWindows[0].MaxGroups = 0 }},
		{name: "overflow after unknown window", mutate: func(t *OperatingTemplate) { t.Overflow.AfterWindowID = "Z" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := globalTemplate()
			tt.mutate(&tpl)
			err := tpl.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

func TestOccupiedInstants(t *testing.T) {
	assert.Equal(t, []types.TimeString{"07:00"}, OccupiedInstants("07:00", Holes9, 150))
	assert.Equal(t, []types.TimeString{"07:00", "09:30"}, OccupiedInstants("07:00", Holes18, 150))
	assert.Equal(t, []types.TimeString{"23:00"}, OccupiedInstants("23:00", Holes18, 150))
}

func TestWaitlistEntry_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	live := &WaitlistEntry{Status: WaitlistNotified, LockExpiry: ptr.Ptr(now.Add(time.Minute))}
	assert.True(t, live.IsHolding(now))
	assert.Equal(t, WaitlistNotified, live.EffectiveStatus(now))

	overdue := &WaitlistEntry{Status: WaitlistNotified, LockExpiry: ptr.Ptr(now)}
	assert.False(t, overdue.IsHolding(now))
	assert.True(t, overdue.IsOverdue(now))
	assert.Equal(t, WaitlistExpired, overdue.EffectiveStatus(now))
	assert.False(t, overdue.IsActive(now))

	queued := &WaitlistEntry{Status: WaitlistQueued, DesiredStart: "07:00", DesiredEnd: "08:00"}
	assert.True(t, queued.IsActive(now))
	assert.True(t, queued.Covers("08:00"))
	assert.False(t, queued.Covers("08:10"))
}

func TestRateConfig_Lifecycle(t *testing.T) {
	legal := [][2]RateConfigStatus{
		{RateDraft, RatePendingApproval},
		{RatePendingApproval, RateApproved},
		{RatePendingApproval, RateDraft},
		{RateApproved, RateActive},
		{RateActive, RateArchived},
	}
	for _, tr := range legal {
		cfg := &RateConfig{Status: tr[0]}
		assert.True(t, cfg.CanTransition(tr[1]), "%s -> %s", tr[0], tr[1])
	}

	illegal := [][2]RateConfigStatus{
		{RateDraft, RateActive},
		{RateApproved, RateDraft},
		{RateActive, RateDraft},
		{RateArchived, RateActive},
		{RateDraft, RateApproved},
	}
	for _, tr := range illegal {
		cfg := &RateConfig{Status: tr[0]}
		assert.False(t, cfg.CanTransition(tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestRateConfig_ValidatePlatinum(t *testing.T) {
	cfg := &RateConfig{
		GreenFees: GreenFees{
			PlatinumTier: {Holes18: {Weekday: 1500, Holiday: 1500}},
			"visitor":    {Holes18: {Weekday: 1800, Holiday: 2500}},
		},
		TaxConfig: TaxConfig{EntertainmentTax: 0.05},
	}
	require.NoError(t, cfg.Validate())

	cfg.GreenFees[PlatinumTier][Holes18][Holiday] = 1600
	assert.ErrorIs(t, cfg.Validate(), ErrPlatinumRateMismatch)

	cfg.GreenFees[PlatinumTier][Holes18] = map[DayType]int64{Weekday: 1500}
	assert.ErrorIs(t, cfg.Validate(), ErrPlatinumRateMismatch)
}

func TestRateConfig_ValidateAmounts(t *testing.T) {
	cfg := &RateConfig{TaxConfig: TaxConfig{EntertainmentTax: 1.5}}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidRateConfig)

	cfg = &RateConfig{BaseFees: BaseFees{Cleaning: map[Holes]int64{Holes9: -1}}}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidRateConfig)
}
