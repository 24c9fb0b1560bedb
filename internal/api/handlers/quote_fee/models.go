package quote_fee

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	quoteFee "github.com/m04kA/SMC-TeeTimeService/internal/usecase/quote_fee"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	Date        string `json:"date" validate:"required,isodate"`
	Tier        string `json:"tier" validate:"required"`
	Holes       int    `json:"holes" validate:"oneof=9 18"`
	CaddyRatio  string `json:"caddyRatio" validate:"required"` // "1:4"
	PlayerCount int    `json:"playerCount" validate:"min=1,max=4"`
}

// PerPlayerResponse строки на одного игрока
type PerPlayerResponse struct {
	GreenFee       int64 `json:"greenFee"`
	CleaningFee    int64 `json:"cleaningFee"`
	CartFee        int64 `json:"cartFee"`
	SharedCaddyFee int64 `json:"sharedCaddyFee"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	RateConfigID     int64             `json:"rateConfigId"`
	VersionNumber    int               `json:"versionNumber"`
	Date             string            `json:"date"`
	DayType          string            `json:"dayType"`
	Tier             string            `json:"tier"`
	Holes            int               `json:"holes"`
	PlayerCount      int               `json:"playerCount"`
	GreenFee         int64             `json:"greenFee"`
	CleaningFee      int64             `json:"cleaningFee"`
	CartFee          int64             `json:"cartFee"`
	CaddyFee         int64             `json:"caddyFee"`
	Subtotal         int64             `json:"subtotal"`
	EntertainmentTax int64             `json:"entertainmentTax"`
	Total            int64             `json:"total"`
	PerPlayer        PerPlayerResponse `json:"perPlayer"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest() (*quoteFee.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &quoteFee.Request{
		Date:        date,
		Tier:        r.Tier,
		Holes:       domain.Holes(r.Holes),
		CaddyRatio:  r.CaddyRatio,
		PlayerCount: r.PlayerCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteFee.Response) *QuoteResponse {
	return &QuoteResponse{
		RateConfigID:     resp.RateConfigID,
		VersionNumber:    resp.VersionNumber,
		Date:             resp.Date.Format(domain.DateFormat),
		DayType:          string(resp.DayType),
		Tier:             resp.Tier,
		Holes:            int(resp.Holes),
		PlayerCount:      resp.PlayerCount,
		GreenFee:         resp.GreenFee,
		CleaningFee:      resp.CleaningFee,
		CartFee:          resp.CartFee,
		CaddyFee:         resp.CaddyFee,
		Subtotal:         resp.Subtotal,
		EntertainmentTax: resp.EntertainmentTax,
		Total:            resp.Total,
		PerPlayer: PerPlayerResponse{
			GreenFee:       resp.PerPlayer.GreenFee,
			CleaningFee:    resp.PerPlayer.CleaningFee,
			CartFee:        resp.PerPlayer.CartFee,
			SharedCaddyFee: resp.PerPlayer.SharedCaddyFee,
		},
	}
}
