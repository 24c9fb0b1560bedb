package schedule

import (
	"errors"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// Evaluate проверяет старт целиком: занятость, затем лимиты окон.
// Занятый слот всегда SlotTaken, даже если окно заполнено.
func Evaluate(day domain.DaySchedule, start types.TimeString, holes domain.Holes, privileged bool, bookings []*domain.Booking, holds []Hold) error {
	if err := CheckAvailability(day, start, holes, bookings, holds); err != nil {
		return err
	}
	return NewTracker(day, bookings, holds).Admit(start, privileged)
}

// TeeSheet состояние каждого старта сетки для публичного канала
func TeeSheet(day domain.DaySchedule, holes domain.Holes, bookings []*domain.Booking, holds []Hold) ([]domain.TeeSlot, error) {
	grid, err := Generate(day)
	if err != nil {
		return nil, err
	}

	tracker := NewTracker(day, bookings, holds)
	sheet := make([]domain.TeeSlot, 0, len(grid))
	for _, start := range grid {
		slot := domain.TeeSlot{StartTime: start, State: domain.SlotAvailable}
		if w, ok := day.PeakWindowAt(start); ok {
			slot.PeakWindowID = w.ID
		}

		err := CheckAvailability(day, start, holes, bookings, holds)
		if err == nil {
			err = tracker.Admit(start, false)
		}
		slot.State = StateOf(err)

		sheet = append(sheet, slot)
	}

	return sheet, nil
}

// StateOf переводит ошибку проверки в состояние слота
func StateOf(err error) domain.SlotState {
	var conflict *ConflictError
	switch {
	case err == nil:
		return domain.SlotAvailable
	case errors.As(err, &conflict):
		switch conflict.Rule {
		case RuleHeld:
			return domain.SlotHeld
		case RuleDirect:
			return domain.SlotBooked
		default:
			return domain.SlotTurnReserved
		}
	case errors.Is(err, ErrTooLateForDuration):
		return domain.SlotTooLate
	case errors.Is(err, ErrPeakWindowFull):
		return domain.SlotPeakFull
	case errors.Is(err, ErrOverflowLocked):
		return domain.SlotOverflowLocked
	default:
		return domain.SlotBooked
	}
}
