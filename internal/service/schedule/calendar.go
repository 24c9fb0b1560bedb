package schedule

import (
	"fmt"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// Generate разворачивает шаблон даты в упорядоченную сетку стартов
// от StartTime до EndTime включительно с шагом IntervalMinutes.
// Для закрытых дат возвращает пустую сетку.
func Generate(day domain.DaySchedule) ([]types.TimeString, error) {
	if err := day.OperatingTemplate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: Generate - %v", ErrInvalidTemplate, err)
	}
	if !day.IsOpen() {
		return []types.TimeString{}, nil
	}

	start := day.StartTime.Minutes()
	end := day.EndTime.Minutes()

	slots := make([]types.TimeString, 0, (end-start)/day.IntervalMinutes+1)
	for m := start; m <= end; m += day.IntervalMinutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: Generate - %v", ErrInvalidTemplate, err)
		}
		slots = append(slots, ts)
	}

	return slots, nil
}

// IsOnGrid returns true if t is one of the generated start times
func IsOnGrid(day domain.DaySchedule, t types.TimeString) bool {
	m := t.Minutes()
	start := day.StartTime.Minutes()
	if m < 0 || m < start || m > day.EndTime.Minutes() || day.IntervalMinutes <= 0 {
		return false
	}
	return (m-start)%day.IntervalMinutes == 0
}

// LatestStart последний старт, с которого успевает пройти раунд holes
func LatestStart(day domain.DaySchedule, holes domain.Holes) types.TimeString {
	if holes != domain.Holes18 {
		return day.EndTime
	}
	latest, err := types.NewTimeStringFromMinutes(day.EndTime.Minutes() - day.TurnDurationMinutes)
	if err != nil {
		return ""
	}
	return latest
}
