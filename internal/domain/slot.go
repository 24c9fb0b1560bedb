package domain

import "github.com/m04kA/SMC-TeeTimeService/pkg/types"

// SlotState почему слот доступен или нет
type SlotState string

const (
	SlotAvailable      SlotState = "available"
	SlotBooked         SlotState = "booked"
	SlotTurnReserved   SlotState = "turn_reserved"
	SlotHeld           SlotState = "held"
	SlotTooLate        SlotState = "too_late"
	SlotPeakFull       SlotState = "peak_full"
	SlotOverflowLocked SlotState = "overflow_locked"
)

// TeeSlot represents a start time on the grid of a date
type TeeSlot struct {
	StartTime    types.TimeString
	State        SlotState
	PeakWindowID string // пусто, если слот вне пиковых окон
}

// IsAvailable returns true if the slot may be booked directly
func (s *TeeSlot) IsAvailable() bool {
	return s.State == SlotAvailable
}

// SuggestsWaitlist returns true if a full peak window should redirect to the waitlist
func (s *TeeSlot) SuggestsWaitlist() bool {
	return s.State == SlotPeakFull
}
