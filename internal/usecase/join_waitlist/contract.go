package join_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// WaitlistEngine движок листа ожидания
type WaitlistEngine interface {
	Enqueue(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
}

// TemplateProvider шаблон работы поля на дату
type TemplateProvider interface {
	GetOperatingTemplate(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
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
