package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/schedule"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !req.Holes.IsValid() {
		return fmt.Errorf("%w: holes must be 9 or 18", ErrInvalidInput)
	}

	if req.PlayerCount < domain.MinPlayers || req.PlayerCount > domain.MaxPlayers {
		return fmt.Errorf("%w: playerCount must be between %d and %d", ErrInvalidInput, domain.MinPlayers, domain.MaxPlayers)
	}

	return nil
}

// validateBookingTime проверяет, что дата не в прошлом, а сегодняшний старт еще не прошел
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	if startTime.IsBefore(types.NewTimeString(now)) {
		return fmt.Errorf("%w: start %s has already passed", ErrTooLateToBook, startTime)
	}

	return nil
}

// translateScheduleError переводит отказ проверки слота в ошибку usecase и причину для метрик.
// Исходная ошибка остается в цепочке: обработчик достает из нее заполненное окно.
func translateScheduleError(err error) (string, error) {
	switch {
	case errors.Is(err, schedule.ErrSlotTaken):
		return "slot_taken", fmt.Errorf("%w: %w", ErrSlotTaken, err)
	case errors.Is(err, schedule.ErrPeakWindowFull):
		return "peak_full", fmt.Errorf("%w: %w", ErrPeakWindowFull, err)
	case errors.Is(err, schedule.ErrOverflowLocked):
		return "overflow_locked", fmt.Errorf("%w: %w", ErrOverflowLocked, err)
	case errors.Is(err, schedule.ErrTooLateForDuration):
		return "too_late", fmt.Errorf("%w: %w", ErrTooLateForDuration, err)
	case errors.Is(err, schedule.ErrCourseClosed):
		return "closed", ErrCourseClosed
	case errors.Is(err, schedule.ErrInvalidTimeSlot):
		return "invalid_slot", ErrInvalidTimeSlot
	case errors.Is(err, schedule.ErrInvalidHoles):
		return "invalid_input", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return "internal", fmt.Errorf("%w: evaluate slot: %v", ErrInternal, err)
	}
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
