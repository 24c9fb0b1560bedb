package confirm_offer

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// BookingRepository интерфейс для работы с бронированиями
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// WaitlistRepository чтение записей листа ожидания внутри транзакции
type WaitlistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	ListByDate(ctx context.Context, date time.Time, statuses ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error)
}

// WaitlistEngine переходы записи листа ожидания
type WaitlistEngine interface {
	Confirm(ctx context.Context, entry *domain.WaitlistEntry) error
	ExpireOverdue(ctx context.Context, path string) (int, error)
	Requeue(ctx context.Context, entryID int64) error
}

// TemplateProvider шаблон работы поля на дату
type TemplateProvider interface {
	GetOperatingTemplate(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	BookingCreated(holes int, source string)
	BookingRejected(reason string)
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
