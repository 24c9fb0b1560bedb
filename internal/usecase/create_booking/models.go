package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      int64            // ID игрока
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время старта (например, "07:30")
	Holes       domain.Holes     // 9 или 18
	PlayerCount int              // 1..4
	Privileged  bool             // Привилегированный канал: доступен резерв пикового окна
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	UserID      int64
	BookingDate time.Time
	StartTime   types.TimeString
	Holes       domain.Holes
	PlayerCount int
	Status      string
	Privileged  bool
	CreatedAt   time.Time
}
