package rates

import "errors"

var (
	// ErrUnknownTier в тарифной сетке нет уровня игрока
	ErrUnknownTier = errors.New("rates: unknown tier")

	// ErrUnknownRatio в тарифной сетке нет соотношения кэдди
	ErrUnknownRatio = errors.New("rates: unknown caddy ratio")

	// ErrMissingHoleBucket в тарифной сетке нет цены для класса раунда или типа дня
	ErrMissingHoleBucket = errors.New("rates: missing hole bucket")

	// ErrInvalidInput некорректные параметры расчета
	ErrInvalidInput = errors.New("rates: invalid input")

	// ErrIncompleteRateConfig сетка не покрывает обязательные уровни и соотношения
	ErrIncompleteRateConfig = errors.New("rates: rate config is incomplete")

	// ErrInvalidRateConfig суммы сетки некорректны
	ErrInvalidRateConfig = errors.New("rates: invalid rate config")

	// ErrPlatinumRateMismatch цена platinum в будни отличается от выходных
	ErrPlatinumRateMismatch = errors.New("rates: platinum weekday and holiday fees must match")

	// ErrNoActiveRateConfig нет активной сетки
	ErrNoActiveRateConfig = errors.New("rates: no active rate config")

	// ErrRateConfigNotFound сетка не найдена
	ErrRateConfigNotFound = errors.New("rates: rate config not found")

	// ErrInvalidTransition переход жизненного цикла недопустим
	ErrInvalidTransition = errors.New("rates: invalid status transition")

	// ErrNotEditable сетку можно менять только в статусе draft
	ErrNotEditable = errors.New("rates: only draft rate configs can be edited")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("rates: internal error")
)
