package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	createBooking "github.com/m04kA/SMC-TeeTimeService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookingDate string `json:"bookingDate" validate:"required,isodate"` // "2026-05-16"
	StartTime   string `json:"startTime" validate:"required,hhmm"`      // "07:10"
	Holes       int    `json:"holes" validate:"oneof=9 18"`
	PlayerCount int    `json:"playerCount" validate:"min=1,max=4"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	Holes       int    `json:"holes"`
	PlayerCount int    `json:"playerCount"`
	Status      string `json:"status"`
	Privileged  bool   `json:"privileged"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64, privileged bool) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		Date:        bookingDate,
		StartTime:   startTime,
		Holes:       domain.Holes(r.Holes),
		PlayerCount: r.PlayerCount,
		Privileged:  privileged,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Holes:       int(resp.Holes),
		PlayerCount: resp.PlayerCount,
		Status:      resp.Status,
		Privileged:  resp.Privileged,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
