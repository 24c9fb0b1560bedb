package quote_fee

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// RateProvider активная тарифная сетка
type RateProvider interface {
	GetActive(ctx context.Context) (*domain.RateConfig, error)
}

// TemplateProvider шаблон работы поля на дату (признак праздника)
type TemplateProvider interface {
	GetOperatingTemplate(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
}

// Metrics бизнес-метрики расчета стоимости
type Metrics interface {
	FeeQuoted(tier string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
