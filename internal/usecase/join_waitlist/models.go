package join_waitlist

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// Request запрос постановки в лист ожидания пикового окна
type Request struct {
	UserID       int64
	Date         time.Time
	PeakWindowID string
	DesiredStart types.TimeString
	DesiredEnd   types.TimeString
	PlayerCount  int
}

// Response созданная запись листа ожидания
type Response struct {
	ID           int64
	UserID       int64
	Date         time.Time
	PeakWindowID string
	DesiredStart types.TimeString
	DesiredEnd   types.TimeString
	PlayerCount  int
	Status       string
	CreatedAt    time.Time
}
