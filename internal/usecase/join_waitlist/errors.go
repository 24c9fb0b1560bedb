package join_waitlist

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("join_waitlist: invalid input data")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("join_waitlist: invalid date")

	// ErrInvalidRange возвращается, если желаемое начало не раньше желаемого конца
	ErrInvalidRange = errors.New("join_waitlist: desired start must be before desired end")

	// ErrCourseClosed возвращается, когда поле закрыто в указанную дату
	ErrCourseClosed = errors.New("join_waitlist: course is closed on this date")

	// ErrUnknownPeakWindow возвращается, если в шаблоне даты нет такого окна
	ErrUnknownPeakWindow = errors.New("join_waitlist: unknown peak window")

	// ErrRangeOutsideWindow возвращается, если желаемый диапазон выходит за пиковое окно
	ErrRangeOutsideWindow = errors.New("join_waitlist: desired range is outside the peak window")

	// ErrAlreadyQueued возвращается, если игрок уже стоит в очереди этого окна
	ErrAlreadyQueued = errors.New("join_waitlist: already queued for this window")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("join_waitlist: internal error")
)
