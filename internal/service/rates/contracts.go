package rates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// RateConfigRepository интерфейс хранилища тарифных сеток
type RateConfigRepository interface {
	Create(ctx context.Context, cfg *domain.RateConfig) (*domain.RateConfig, error)
	UpdateFees(ctx context.Context, cfg *domain.RateConfig) error
	GetByID(ctx context.Context, id int64) (*domain.RateConfig, error)
	GetActive(ctx context.Context) (*domain.RateConfig, error)
	List(ctx context.Context) ([]*domain.RateConfig, error)
	NextVersion(ctx context.Context) (int, error)
	Transition(ctx context.Context, id int64, from, to domain.RateConfigStatus, actor *int64, at time.Time) error
}

// ActiveConfigCache кэш активной сетки. Может отсутствовать.
type ActiveConfigCache interface {
	Get(ctx context.Context) (*domain.RateConfig, error)
	Set(ctx context.Context, cfg *domain.RateConfig) error
	Invalidate(ctx context.Context) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
