package notifier

import "errors"

var (
	// ErrConnection возвращается, если не удалось подключиться к брокеру
	ErrConnection = errors.New("notifier: broker connection failed")

	// ErrPublish возвращается, если публикация не принята брокером
	ErrPublish = errors.New("notifier: publish failed")

	// ErrUnroutable возвращается, если для ключа нет ни одной очереди
	ErrUnroutable = errors.New("notifier: message unroutable")

	// ErrInvalidOffer возвращается для записи без предложения
	ErrInvalidOffer = errors.New("notifier: entry has no offer")
)
