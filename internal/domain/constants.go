package domain

// Default configuration values
const (
	DefaultTurnDurationMinutes = 150
	DefaultHoldDurationMinutes = 120 // 2 hours
)

// Business validation constants
const (
	MinPlayers = 1
	MaxPlayers = 4
)

// AllowedIntervals допустимые шаги сетки стартов в минутах
var AllowedIntervals = []int{3, 5, 6, 10, 15}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих стартовую площадку
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCheckedIn,
}
