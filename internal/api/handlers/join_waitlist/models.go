package join_waitlist

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	joinWaitlist "github.com/m04kA/SMC-TeeTimeService/internal/usecase/join_waitlist"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	Date         string `json:"date" validate:"required,isodate"`
	PeakWindowID string `json:"peakWindowId" validate:"required"`
	DesiredStart string `json:"desiredStart" validate:"required,hhmm"`
	DesiredEnd   string `json:"desiredEnd" validate:"required,hhmm"`
	PlayerCount  int    `json:"playerCount" validate:"min=1,max=4"`
}

// WaitlistEntryResponse HTTP response model
type WaitlistEntryResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	Date         string `json:"date"`
	PeakWindowID string `json:"peakWindowId"`
	DesiredStart string `json:"desiredStart"`
	DesiredEnd   string `json:"desiredEnd"`
	PlayerCount  int    `json:"playerCount"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *JoinWaitlistRequest) ToUseCaseRequest(userID int64) (*joinWaitlist.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(r.DesiredStart)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.DesiredEnd)
	if err != nil {
		return nil, err
	}

	return &joinWaitlist.Request{
		UserID:       userID,
		Date:         date,
		PeakWindowID: r.PeakWindowID,
		DesiredStart: start,
		DesiredEnd:   end,
		PlayerCount:  r.PlayerCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *joinWaitlist.Response) *WaitlistEntryResponse {
	return &WaitlistEntryResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		Date:         resp.Date.Format(domain.DateFormat),
		PeakWindowID: resp.PeakWindowID,
		DesiredStart: resp.DesiredStart.String(),
		DesiredEnd:   resp.DesiredEnd.String(),
		PlayerCount:  resp.PlayerCount,
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
