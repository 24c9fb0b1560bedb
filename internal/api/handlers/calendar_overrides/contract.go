package calendar_overrides

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

type TemplateService interface {
	UpsertOverride(ctx context.Context, o *domain.CalendarOverride) (*domain.DaySchedule, error)
	DeleteOverride(ctx context.Context, date time.Time) error
	ListOverrides(ctx context.Context, from, to time.Time) ([]*domain.CalendarOverride, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
