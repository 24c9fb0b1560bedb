package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	// ErrNoCandidate возвращается, когда в очереди нет подходящей записи
	ErrNoCandidate = errors.New("waitlist.repository: no queued candidate")

	// ErrActiveEntryExists возвращается, если у пользователя уже есть активная запись на окно даты
	ErrActiveEntryExists = errors.New("waitlist.repository: active entry already exists")

	// ErrStatusConflict возвращается, если статус изменился между чтением и обновлением
	ErrStatusConflict = errors.New("waitlist.repository: status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
