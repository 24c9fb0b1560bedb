package domain

import "errors"

var (
	// ErrInvalidTemplate шаблон работы поля некорректен
	ErrInvalidTemplate = errors.New("domain: invalid operating template")

	// ErrInvalidRateConfig тарифная сетка содержит некорректные суммы
	ErrInvalidRateConfig = errors.New("domain: invalid rate config")

	// ErrPlatinumRateMismatch цена platinum в будни отличается от цены в выходные
	ErrPlatinumRateMismatch = errors.New("domain: platinum weekday and holiday fees must match")
)
