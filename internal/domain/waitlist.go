package domain

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// WaitlistStatus статус записи листа ожидания
type WaitlistStatus string

const (
	WaitlistQueued    WaitlistStatus = "queued"
	WaitlistNotified  WaitlistStatus = "notified"
	WaitlistConfirmed WaitlistStatus = "confirmed"
	WaitlistExpired   WaitlistStatus = "expired"
	WaitlistCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry запись листа ожидания на пиковое окно даты.
// Очередь обслуживается строго по (CreatedAt, ID).
type WaitlistEntry struct {
	ID           int64
	UserID       int64
	Date         time.Time
	DesiredStart types.TimeString
	DesiredEnd   types.TimeString
	PlayerCount  int
	PeakWindowID string
	Status       WaitlistStatus

	// Заполняются при переходе в notified
	LockExpiry     *time.Time
	OfferedStart   *types.TimeString
	OfferedHoles   *Holes
	FreedBookingID *int64

	NotificationSent bool
	NeedsFollowUp    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers returns true if t falls inside [DesiredStart, DesiredEnd]
func (e *WaitlistEntry) Covers(t types.TimeString) bool {
	return t.Between(e.DesiredStart, e.DesiredEnd)
}

// IsHolding returns true while the offer is live. lock_expiry decides, not the stored status.
func (e *WaitlistEntry) IsHolding(now time.Time) bool {
	return e.Status == WaitlistNotified && e.LockExpiry != nil && e.LockExpiry.After(now)
}

// IsOverdue returns true for a notified entry whose hold has run out
func (e *WaitlistEntry) IsOverdue(now time.Time) bool {
	return e.Status == WaitlistNotified && (e.LockExpiry == nil || !e.LockExpiry.After(now))
}

// EffectiveStatus статус с учетом lock_expiry на момент now
func (e *WaitlistEntry) EffectiveStatus(now time.Time) WaitlistStatus {
	if e.IsOverdue(now) {
		return WaitlistExpired
	}
	return e.Status
}

// IsActive returns true for queued entries and live offers
func (e *WaitlistEntry) IsActive(now time.Time) bool {
	return e.Status == WaitlistQueued || e.IsHolding(now)
}

// CanBeCancelled returns true if the entry may still be withdrawn
func (e *WaitlistEntry) CanBeCancelled() bool {
	return e.Status == WaitlistQueued || e.Status == WaitlistNotified
}

// ActiveWaitlistStatuses статусы, в которых запись участвует в очереди или держит слот
var ActiveWaitlistStatuses = []WaitlistStatus{
	WaitlistQueued,
	WaitlistNotified,
}

// WaitlistOffer предложение освободившегося слота записи листа ожидания
type WaitlistOffer struct {
	OfferedStart   types.TimeString
	OfferedHoles   Holes
	FreedBookingID int64
	LockExpiry     time.Time
}
