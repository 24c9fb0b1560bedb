package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// PeakWindow именованное окно с собственным лимитом групп
type PeakWindow struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Start     types.TimeString `json:"start"`
	End       types.TimeString `json:"end"`
	MaxGroups int              `json:"maxGroups"`
	Reserved  int              `json:"reserved"` // места для привилегированного канала
}

// Contains returns true if t is inside [Start, End]
func (w PeakWindow) Contains(t types.TimeString) bool {
	return t.Between(w.Start, w.End)
}

// OverflowWindow дополнительные слоты, открывающиеся после заполнения окна AfterWindowID
type OverflowWindow struct {
	Start         types.TimeString `json:"start"`
	End           types.TimeString `json:"end"`
	AfterWindowID string           `json:"afterWindowId"`
	WeekdaysOnly  bool             `json:"weekdaysOnly"`
}

// Contains returns true if t is inside [Start, End]
func (w OverflowWindow) Contains(t types.TimeString) bool {
	return t.Between(w.Start, w.End)
}

// OperatingTemplate глобальный шаблон работы поля
type OperatingTemplate struct {
	StartTime           types.TimeString
	EndTime             types.TimeString
	IntervalMinutes     int
	TurnDurationMinutes int
	PeakWindows         []PeakWindow
	Overflow            *OverflowWindow
	UpdatedAt           time.Time
}

// Validate проверяет интервал, границы и окна шаблона
func (t *OperatingTemplate) Validate() error {
	if err := t.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidTemplate, err)
	}
	if err := t.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidTemplate, err)
	}
	if !t.EndTime.IsAfter(t.StartTime) {
		return fmt.Errorf("%w: end time %s must be after start time %s", ErrInvalidTemplate, t.EndTime, t.StartTime)
	}
	if !IsAllowedInterval(t.IntervalMinutes) {
		return fmt.Errorf("%w: interval %d is not one of %v", ErrInvalidTemplate, t.IntervalMinutes, AllowedIntervals)
	}
	if t.TurnDurationMinutes <= 0 {
		return fmt.Errorf("%w: turn duration must be positive", ErrInvalidTemplate)
	}

	seen := make(map[string]struct{}, len(t.PeakWindows))
	for _, w := range t.PeakWindows {
		if w.ID == "" {
			return fmt.Errorf("%w: peak window id is required", ErrInvalidTemplate)
		}
		if _, ok := seen[w.ID]; ok {
			return fmt.Errorf("%w: duplicate peak window %q", ErrInvalidTemplate, w.ID)
		}
		seen[w.ID] = struct{}{}
		if w.Start.Validate() != nil || w.End.Validate() != nil || w.End.IsBefore(w.Start) {
			return fmt.Errorf("%w: peak window %q has invalid bounds", ErrInvalidTemplate, w.ID)
		}
		if w.MaxGroups <= 0 || w.Reserved < 0 {
			return fmt.Errorf("%w: peak window %q capacity must be positive", ErrInvalidTemplate, w.ID)
		}
	}

	if o := t.Overflow; o != nil {
		if o.Start.Validate() != nil || o.End.Validate() != nil || o.End.IsBefore(o.Start) {
			return fmt.Errorf("%w: overflow window has invalid bounds", ErrInvalidTemplate)
		}
		if _, ok := seen[o.AfterWindowID]; !ok {
			return fmt.Errorf("%w: overflow window follows unknown peak window %q", ErrInvalidTemplate, o.AfterWindowID)
		}
	}

	return nil
}

// PeakWindow возвращает окно по ID
func (t *OperatingTemplate) PeakWindow(id string) (PeakWindow, bool) {
	for _, w := range t.PeakWindows {
		if w.ID == id {
			return w, true
		}
	}
	return PeakWindow{}, false
}

// PeakWindowAt возвращает первое окно, содержащее t
func (t *OperatingTemplate) PeakWindowAt(at types.TimeString) (PeakWindow, bool) {
	for _, w := range t.PeakWindows {
		if w.Contains(at) {
			return w, true
		}
	}
	return PeakWindow{}, false
}

// DayStatus режим работы поля в конкретную дату
type DayStatus string

const (
	DayNormal          DayStatus = "normal"
	DayClosed          DayStatus = "closed"
	DayEmergencyClosed DayStatus = "emergency_closed"
)

// IsValid returns true for known statuses
func (s DayStatus) IsValid() bool {
	return s == DayNormal || s == DayClosed || s == DayEmergencyClosed
}

// CalendarOverride переопределение шаблона на дату. nil-поля наследуются от глобального шаблона.
type CalendarOverride struct {
	Date                time.Time
	Status              DayStatus
	IsHoliday           *bool // nil - суббота и воскресенье, иначе будни
	StartTime           *types.TimeString
	EndTime             *types.TimeString
	IntervalMinutes     *int
	TurnDurationMinutes *int
	PeakWindows         []PeakWindow // nil - наследовать, пустой слайс - без пиковых окон
	Overflow            *OverflowWindow
	Note                *string
	UpdatedAt           time.Time
}

// DaySchedule шаблон, разрешенный для конкретной даты
type DaySchedule struct {
	Date      time.Time
	Status    DayStatus
	IsHoliday bool
	OperatingTemplate
}

// IsOpen returns true if tee times are offered on this date
func (d *DaySchedule) IsOpen() bool {
	return d.Status == DayNormal
}

// MergeTemplate накладывает переопределение даты на глобальный шаблон поле за полем.
// Поле переопределения побеждает, если задано; иначе берется глобальное значение.
func MergeTemplate(global OperatingTemplate, override *CalendarOverride, date time.Time) DaySchedule {
	schedule := DaySchedule{
		Date:              date,
		Status:            DayNormal,
		IsHoliday:         IsWeekend(date),
		OperatingTemplate: global,
	}
	schedule.PeakWindows = append([]PeakWindow(nil), global.PeakWindows...)

	if override == nil {
		return schedule
	}

	if override.Status != "" {
		schedule.Status = override.Status
	}
	if override.IsHoliday != nil {
		schedule.IsHoliday = *override.IsHoliday
	}
	if override.StartTime != nil {
		schedule.StartTime = *override.StartTime
	}
	if override.EndTime != nil {
		schedule.EndTime = *override.EndTime
	}
	if override.IntervalMinutes != nil {
		schedule.IntervalMinutes = *override.IntervalMinutes
	}
	if override.TurnDurationMinutes != nil {
		schedule.TurnDurationMinutes = *override.TurnDurationMinutes
	}
	if override.PeakWindows != nil {
		schedule.PeakWindows = append([]PeakWindow{}, override.PeakWindows...)
	}
	if override.Overflow != nil {
		overflow := *override.Overflow
		schedule.Overflow = &overflow
	}

	return schedule
}

// IsWeekend returns true for Saturday and Sunday
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsAllowedInterval returns true if minutes is one of AllowedIntervals
func IsAllowedInterval(minutes int) bool {
	for _, allowed := range AllowedIntervals {
		if minutes == allowed {
			return true
		}
	}
	return false
}
