package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// Request модель запроса стартового листа даты
type Request struct {
	UserID int64        // ID пользователя (для логирования, не влияет на результат)
	Date   time.Time    // Дата (без времени)
	Holes  domain.Holes // Класс раунда, под который считается доступность
}

// Response модель ответа со стартовым листом
type Response struct {
	Date        time.Time
	Status      domain.DayStatus
	IsHoliday   bool
	Slots       []Slot
	PeakWindows []PeakWindowStatus
}

// Slot старт сетки и его состояние
type Slot struct {
	StartTime       types.TimeString
	State           domain.SlotState
	PeakWindowID    string
	Available       bool
	SuggestWaitlist bool // окно заполнено: вместо бронирования предлагается лист ожидания
}

// PeakWindowStatus заполненность пикового окна
type PeakWindowStatus struct {
	ID             string
	Name           string
	Start          types.TimeString
	End            types.TimeString
	Booked         int
	MaxGroups      int
	Reserved       int
	Full           bool
	PrivilegedFull bool
}
