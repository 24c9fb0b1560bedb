package notifier

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

const promotionOfferType = "waitlist.promotion_offer"

// PromotionOffer сообщение шлюзу уведомлений о предложенном слоте
type PromotionOffer struct {
	Type           string    `json:"type"`
	EntryID        int64     `json:"entryId"`
	UserID         int64     `json:"userId"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	Holes          int       `json:"holes"`
	PlayerCount    int       `json:"playerCount"`
	PeakWindowID   string    `json:"peakWindowId"`
	FreedBookingID int64     `json:"freedBookingId"`
	LockExpiry     time.Time `json:"lockExpiry"`
}

// newPromotionOffer собирает сообщение по захваченной записи
func newPromotionOffer(entry *domain.WaitlistEntry, freed *domain.Booking) (*PromotionOffer, error) {
	if entry.LockExpiry == nil || entry.OfferedStart == nil {
		return nil, ErrInvalidOffer
	}

	holes := freed.Holes
	if entry.OfferedHoles != nil {
		holes = *entry.OfferedHoles
	}

	return &PromotionOffer{
		Type:           promotionOfferType,
		EntryID:        entry.ID,
		UserID:         entry.UserID,
		Date:           entry.Date.Format(domain.DateFormat),
		StartTime:      entry.OfferedStart.String(),
		Holes:          int(holes),
		PlayerCount:    entry.PlayerCount,
		PeakWindowID:   entry.PeakWindowID,
		FreedBookingID: freed.ID,
		LockExpiry:     entry.LockExpiry.UTC(),
	}, nil
}
