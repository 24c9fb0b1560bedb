package template

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда глобальный шаблон еще не сохранен
	ErrTemplateNotFound = errors.New("template.repository: operating template not found")

	// ErrOverrideNotFound возвращается, когда для даты нет переопределения
	ErrOverrideNotFound = errors.New("template.repository: calendar override not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("template.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("template.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("template.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации JSONB полей
	ErrEncode = errors.New("template.repository: failed to encode windows")
)
