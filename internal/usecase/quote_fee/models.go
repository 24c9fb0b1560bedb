package quote_fee

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// Request запрос расчета стоимости раунда
type Request struct {
	Date        time.Time
	Tier        string
	Holes       domain.Holes
	CaddyRatio  string
	PlayerCount int
}

// PerPlayer строки на одного игрока
type PerPlayer struct {
	GreenFee       int64
	CleaningFee    int64
	CartFee        int64
	SharedCaddyFee int64
}

// Response детализированная стоимость
type Response struct {
	RateConfigID     int64
	VersionNumber    int
	Date             time.Time
	DayType          domain.DayType
	Tier             string
	Holes            domain.Holes
	PlayerCount      int
	GreenFee         int64
	CleaningFee      int64
	CartFee          int64
	CaddyFee         int64
	Subtotal         int64
	EntertainmentTax int64
	Total            int64
	PerPlayer        PerPlayer
}
