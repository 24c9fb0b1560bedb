package rate_configs

import (
	"context"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

type RateService interface {
	GetActive(ctx context.Context) (*domain.RateConfig, error)
	GetByID(ctx context.Context, id int64) (*domain.RateConfig, error)
	List(ctx context.Context) ([]*domain.RateConfig, error)
	CreateDraft(ctx context.Context, cfg *domain.RateConfig, actor int64) (*domain.RateConfig, error)
	UpdateDraft(ctx context.Context, id int64, fees *domain.RateConfig) (*domain.RateConfig, error)
	Submit(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error)
	Approve(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error)
	Reject(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error)
	Activate(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
