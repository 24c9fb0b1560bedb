package get_operating_template

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

type TemplateService interface {
	GetGlobal(ctx context.Context) (*domain.OperatingTemplate, error)
	GetOperatingTemplate(ctx context.Context, date time.Time) (*domain.DaySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
