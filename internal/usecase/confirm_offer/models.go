package confirm_offer

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// Request подтверждение предложения листа ожидания
type Request struct {
	EntryID int64
	UserID  int64
}

// Response бронирование, созданное из предложения
type Response struct {
	BookingID       int64
	WaitlistEntryID int64
	UserID          int64
	BookingDate     time.Time
	StartTime       types.TimeString
	Holes           domain.Holes
	PlayerCount     int
	Status          string
	CreatedAt       time.Time
}
