package update_operating_template

import (
	"context"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

type TemplateService interface {
	UpdateGlobal(ctx context.Context, tpl *domain.OperatingTemplate) (*domain.OperatingTemplate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
