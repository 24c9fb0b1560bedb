package templates

import "errors"

var (
	// ErrTemplateNotConfigured возвращается, если глобальный шаблон еще не задан
	ErrTemplateNotConfigured = errors.New("templates: operating template is not configured")

	// ErrInvalidTemplate возвращается, если шаблон (или результат слияния) некорректен
	ErrInvalidTemplate = errors.New("templates: invalid operating template")

	// ErrInvalidOverride возвращается при некорректном переопределении даты
	ErrInvalidOverride = errors.New("templates: invalid calendar override")

	// ErrOverrideNotFound возвращается, когда для даты нет переопределения
	ErrOverrideNotFound = errors.New("templates: calendar override not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("templates: internal error")
)
