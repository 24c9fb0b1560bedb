package list_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

type WaitlistService interface {
	ListActive(ctx context.Context, date time.Time) ([]*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
