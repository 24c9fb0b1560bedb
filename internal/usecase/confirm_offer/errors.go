package confirm_offer

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_offer: invalid input data")

	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("confirm_offer: waitlist entry not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому пользователю
	ErrAccessDenied = errors.New("confirm_offer: access denied")

	// ErrOfferExpired возвращается, если предложения нет или удержание истекло
	ErrOfferExpired = errors.New("confirm_offer: offer expired")

	// ErrSlotUnavailable возвращается, если удерживаемый слот больше нельзя занять
	ErrSlotUnavailable = errors.New("confirm_offer: offered slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("confirm_offer: internal error")
)
