package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// WaitlistRepository источник удержаний листа ожидания
type WaitlistRepository interface {
	ListByDate(ctx context.Context, date time.Time, statuses ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error)
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
