package confirm_offer

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	confirmOffer "github.com/m04kA/SMC-TeeTimeService/internal/usecase/confirm_offer"
)

// ConfirmOfferResponse бронирование, созданное из предложения
type ConfirmOfferResponse struct {
	BookingID       int64  `json:"bookingId"`
	WaitlistEntryID int64  `json:"waitlistEntryId"`
	UserID          int64  `json:"userId"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	Holes           int    `json:"holes"`
	PlayerCount     int    `json:"playerCount"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmOffer.Response) *ConfirmOfferResponse {
	return &ConfirmOfferResponse{
		BookingID:       resp.BookingID,
		WaitlistEntryID: resp.WaitlistEntryID,
		UserID:          resp.UserID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		Holes:           int(resp.Holes),
		PlayerCount:     resp.PlayerCount,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
