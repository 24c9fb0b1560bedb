package schedule

import (
	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// WindowStatus заполненность пикового окна
type WindowStatus struct {
	Window         domain.PeakWindow
	Count          int
	Full           bool // публичный лимит MaxGroups исчерпан
	PrivilegedFull bool // исчерпан и резерв
}

// Tracker считает заполненность пиковых окон даты.
// Счетчики строятся заново при каждом создании, кэшированных флагов нет.
type Tracker struct {
	day    domain.DaySchedule
	counts map[string]int
}

// NewTracker раскладывает активные бронирования и живые удержания по окнам.
// Старт на границе окна (start == window.End) относится к окну.
func NewTracker(day domain.DaySchedule, bookings []*domain.Booking, holds []Hold) *Tracker {
	counts := make(map[string]int, len(day.PeakWindows))
	for _, w := range day.PeakWindows {
		counts[w.ID] = 0
		for _, b := range bookings {
			if b.IsActive() && w.Contains(b.StartTime) {
				counts[w.ID]++
			}
		}
		for _, h := range holds {
			if w.Contains(h.StartTime) {
				counts[w.ID]++
			}
		}
	}
	return &Tracker{day: day, counts: counts}
}

// Count количество групп в окне
func (t *Tracker) Count(windowID string) int {
	return t.counts[windowID]
}

// IsFull returns true when the public limit of the window is reached
func (t *Tracker) IsFull(w domain.PeakWindow) bool {
	return t.counts[w.ID] >= w.MaxGroups
}

// IsFullFor учитывает резерв для привилегированного канала
func (t *Tracker) IsFullFor(w domain.PeakWindow, privileged bool) bool {
	limit := w.MaxGroups
	if privileged {
		limit += w.Reserved
	}
	return t.counts[w.ID] >= limit
}

// OverflowUnlocked returns true when the overflow window may be booked:
// the preceding window is full and the date is eligible.
func (t *Tracker) OverflowUnlocked() bool {
	o := t.day.Overflow
	if o == nil {
		return false
	}
	if o.WeekdaysOnly && t.day.IsHoliday {
		return false
	}
	w, ok := t.day.PeakWindow(o.AfterWindowID)
	if !ok {
		return false
	}
	return t.IsFull(w)
}

// Admit проверяет лимиты окон для старта start
func (t *Tracker) Admit(start types.TimeString, privileged bool) error {
	if w, ok := t.day.PeakWindowAt(start); ok {
		if t.IsFullFor(w, privileged) {
			limit := w.MaxGroups
			if privileged {
				limit += w.Reserved
			}
			return &PeakFullError{WindowID: w.ID, Count: t.counts[w.ID], Limit: limit}
		}
		return nil
	}

	if o := t.day.Overflow; o != nil && o.Contains(start) && !t.OverflowUnlocked() {
		return ErrOverflowLocked
	}

	return nil
}

// Snapshot заполненность всех окон даты в порядке шаблона
func (t *Tracker) Snapshot() []WindowStatus {
	statuses := make([]WindowStatus, 0, len(t.day.PeakWindows))
	for _, w := range t.day.PeakWindows {
		statuses = append(statuses, WindowStatus{
			Window:         w,
			Count:          t.counts[w.ID],
			Full:           t.IsFullFor(w, false),
			PrivilegedFull: t.IsFullFor(w, true),
		})
	}
	return statuses
}
