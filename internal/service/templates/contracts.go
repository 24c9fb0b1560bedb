package templates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// TemplateRepository интерфейс хранилища шаблона и переопределений
type TemplateRepository interface {
	GetGlobal(ctx context.Context) (*domain.OperatingTemplate, error)
	SaveGlobal(ctx context.Context, tpl *domain.OperatingTemplate) error
	GetOverride(ctx context.Context, date time.Time) (*domain.CalendarOverride, error)
	ListOverrides(ctx context.Context, from, to time.Time) ([]*domain.CalendarOverride, error)
	UpsertOverride(ctx context.Context, o *domain.CalendarOverride) error
	DeleteOverride(ctx context.Context, date time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
