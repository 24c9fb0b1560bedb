package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/schedule"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// buildSlots переводит стартовый лист в модель ответа.
// Для сегодняшней даты уже прошедшие старты не показываются.
func buildSlots(sheet []domain.TeeSlot, requestDate time.Time, now time.Time) []Slot {
	var minAllowed types.TimeString
	today := isSameDay(requestDate, now)
	if today {
		minAllowed = types.NewTimeString(now)
	}

	slots := make([]Slot, 0, len(sheet))
	for _, s := range sheet {
		if today && s.StartTime.IsBefore(minAllowed) {
			continue
		}
		slots = append(slots, Slot{
			StartTime:       s.StartTime,
			State:           s.State,
			PeakWindowID:    s.PeakWindowID,
			Available:       s.IsAvailable(),
			SuggestWaitlist: s.SuggestsWaitlist(),
		})
	}

	return slots
}

// buildWindows переводит снимок заполненности окон в модель ответа
func buildWindows(snapshot []schedule.WindowStatus) []PeakWindowStatus {
	windows := make([]PeakWindowStatus, 0, len(snapshot))
	for _, ws := range snapshot {
		windows = append(windows, PeakWindowStatus{
			ID:             ws.Window.ID,
			Name:           ws.Window.Name,
			Start:          ws.Window.Start,
			End:            ws.Window.End,
			Booked:         ws.Count,
			MaxGroups:      ws.Window.MaxGroups,
			Reserved:       ws.Window.Reserved,
			Full:           ws.Full,
			PrivilegedFull: ws.PrivilegedFull,
		})
	}
	return windows
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
