package rateconfig

import "errors"

var (
	// ErrRateConfigNotFound возвращается, когда тарифная сетка не найдена
	ErrRateConfigNotFound = errors.New("rateconfig.repository: rate config not found")

	// ErrStatusConflict возвращается, если статус изменился между чтением и обновлением
	ErrStatusConflict = errors.New("rateconfig.repository: status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rateconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rateconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rateconfig.repository: failed to scan row")

	// ErrEncode возвращается при ошибке (де)сериализации JSONB полей
	ErrEncode = errors.New("rateconfig.repository: failed to encode fees")
)
