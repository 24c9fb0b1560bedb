package list_waitlist

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// WaitlistEntryResponse запись листа ожидания для персонала
type WaitlistEntryResponse struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"userId"`
	Date             string  `json:"date"`
	PeakWindowID     string  `json:"peakWindowId"`
	DesiredStart     string  `json:"desiredStart"`
	DesiredEnd       string  `json:"desiredEnd"`
	PlayerCount      int     `json:"playerCount"`
	Status           string  `json:"status"`
	OfferedStart     *string `json:"offeredStart,omitempty"`
	LockExpiry       *string `json:"lockExpiry,omitempty"`
	NotificationSent bool    `json:"notificationSent"`
	NeedsFollowUp    bool    `json:"needsFollowUp"`
	CreatedAt        string  `json:"createdAt"`
}

// FromDomainEntries конвертирует записи в DTO
func FromDomainEntries(entries []*domain.WaitlistEntry) []WaitlistEntryResponse {
	out := make([]WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := WaitlistEntryResponse{
			ID:               e.ID,
			UserID:           e.UserID,
			Date:             e.Date.Format(domain.DateFormat),
			PeakWindowID:     e.PeakWindowID,
			DesiredStart:     e.DesiredStart.String(),
			DesiredEnd:       e.DesiredEnd.String(),
			PlayerCount:      e.PlayerCount,
			Status:           string(e.Status),
			NotificationSent: e.NotificationSent,
			NeedsFollowUp:    e.NeedsFollowUp,
			CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		}
		if e.OfferedStart != nil {
			offered := e.OfferedStart.String()
			resp.OfferedStart = &offered
		}
		if e.LockExpiry != nil {
			expiry := e.LockExpiry.Format(time.RFC3339)
			resp.LockExpiry = &expiry
		}
		out = append(out, resp)
	}
	return out
}
