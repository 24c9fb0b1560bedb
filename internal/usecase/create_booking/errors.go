package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается, когда время старта сегодня уже прошло
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrCourseClosed возвращается, когда поле закрыто в указанную дату
	ErrCourseClosed = errors.New("create_booking: course is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке стартов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotTaken возвращается, когда старт или возврат после turn уже заняты
	ErrSlotTaken = errors.New("create_booking: slot taken")

	// ErrTooLateForDuration возвращается, когда 18 лунок не успевают завершиться до закрытия
	ErrTooLateForDuration = errors.New("create_booking: too late for an 18-hole round")

	// ErrPeakWindowFull возвращается, когда пиковое окно заполнено; клиенту предлагается лист ожидания
	ErrPeakWindowFull = errors.New("create_booking: peak window is full")

	// ErrOverflowLocked возвращается для overflow-слота, пока предыдущее окно не заполнено
	ErrOverflowLocked = errors.New("create_booking: overflow window is locked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
