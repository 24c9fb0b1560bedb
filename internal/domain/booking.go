package domain

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// Holes класс длительности раунда
type Holes int

const (
	Holes9  Holes = 9
	Holes18 Holes = 18
)

// IsValid returns true for 9 or 18 holes
func (h Holes) IsValid() bool {
	return h == Holes9 || h == Holes18
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCheckedIn BookingStatus = "checked_in"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a tee-time booking
type Booking struct {
	ID          int64
	UserID      int64
	BookingDate time.Time
	StartTime   types.TimeString
	Holes       Holes
	PlayerCount int
	Status      BookingStatus

	// Бронирование через привилегированный канал (резерв пикового окна)
	Privileged bool
	// Запись листа ожидания, из которой создано бронирование
	WaitlistEntryID *int64

	CancelledAt *time.Time
	CheckedInAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies the tee
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanCheckIn returns true if the party can be checked in
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusConfirmed
}

// OccupiedInstants моменты, когда бронирование занимает стартовую площадку:
// старт для 9 лунок, старт и возврат после turn для 18 лунок.
func (b *Booking) OccupiedInstants(turnMinutes int) []types.TimeString {
	return OccupiedInstants(b.StartTime, b.Holes, turnMinutes)
}

// OccupiedInstants считает занятые моменты для старта start и класса holes.
// Если возврат выходит за полночь, учитывается только старт.
func OccupiedInstants(start types.TimeString, holes Holes, turnMinutes int) []types.TimeString {
	instants := []types.TimeString{start}
	if holes != Holes18 {
		return instants
	}
	turn, err := start.AddMinutes(turnMinutes)
	if err != nil {
		return instants
	}
	return append(instants, turn)
}

// BookingsFilter фильтр выборки бронирований
type BookingsFilter struct {
	Date            *time.Time
	UserID          *int64
	Status          *BookingStatus
	IncludeInactive bool // Включать ли отмененные бронирования
}
