package waitlist

import "errors"

var (
	// ErrInvalidRange возвращается, если желаемый старт не раньше желаемого конца
	ErrInvalidRange = errors.New("waitlist: desired start must be before desired end")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("waitlist: invalid input data")

	// ErrAlreadyQueued возвращается, если пользователь уже стоит в очереди на это окно
	ErrAlreadyQueued = errors.New("waitlist: user already queued for this window")

	// ErrOfferExpired возвращается при подтверждении просроченного или отсутствующего предложения
	ErrOfferExpired = errors.New("waitlist: offer expired")

	// ErrEntryNotFound возвращается, когда запись не найдена
	ErrEntryNotFound = errors.New("waitlist: entry not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому пользователю
	ErrAccessDenied = errors.New("waitlist: access denied")

	// ErrInvalidTransition возвращается, если запись нельзя перевести в запрошенный статус
	ErrInvalidTransition = errors.New("waitlist: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("waitlist: internal error")
)
