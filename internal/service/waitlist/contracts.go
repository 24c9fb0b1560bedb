package waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// WaitlistRepository интерфейс хранилища листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	ListByDate(ctx context.Context, date time.Time, statuses ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error)
	ExistsActive(ctx context.Context, userID int64, date time.Time, peakWindowID string, now time.Time) (bool, error)
	NextCandidate(ctx context.Context, date time.Time, start types.TimeString, skipIDs []int64) (*domain.WaitlistEntry, error)
	MarkNotified(ctx context.Context, id int64, offer domain.WaitlistOffer, now time.Time) error
	MarkConfirmed(ctx context.Context, id int64, now time.Time) error
	Requeue(ctx context.Context, id int64, now time.Time) error
	Cancel(ctx context.Context, id int64, now time.Time) error
	ExpireOverdue(ctx context.Context, now time.Time) ([]*domain.WaitlistEntry, error)
	RecordDelivery(ctx context.Context, id int64, sent bool, now time.Time) error
}

// BookingReader активные бронирования даты
type BookingReader interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TemplateProvider шаблон работы поля на дату
type TemplateProvider interface {
	GetOperatingTemplate(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
}

// Notifier шлюз доставки предложений освободившегося слота
type Notifier interface {
	EmitPromotionOffer(ctx context.Context, entry *domain.WaitlistEntry, freed *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики листа ожидания
type Metrics interface {
	WaitlistPromoted(peakWindowID string)
	OffersExpired(path string, n int)
	NotificationFailed(stage string)
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
