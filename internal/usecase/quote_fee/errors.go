package quote_fee

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_fee: invalid input data")

	// ErrNoActiveRateConfig возвращается, если активной тарифной сетки нет
	ErrNoActiveRateConfig = errors.New("quote_fee: no active rate config")

	// ErrUnknownTier возвращается для уровня, которого нет в сетке
	ErrUnknownTier = errors.New("quote_fee: unknown tier")

	// ErrUnknownRatio возвращается для соотношения кэдди, которого нет в сетке
	ErrUnknownRatio = errors.New("quote_fee: unknown caddy ratio")

	// ErrMissingHoleBucket возвращается, если в сетке нет цены для класса раунда
	ErrMissingHoleBucket = errors.New("quote_fee: missing hole bucket")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("quote_fee: internal error")
)
