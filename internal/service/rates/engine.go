package rates

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// Input параметры расчета стоимости для группы
type Input struct {
	Tier        string
	Holes       domain.Holes
	IsHoliday   bool
	CaddyRatio  string // пусто - без кэдди
	PlayerCount int
}

// PerPlayer строки чека на одного игрока. Кэдди - общая строка группы.
type PerPlayer struct {
	GreenFee       int64
	CleaningFee    int64
	CartFee        int64
	SharedCaddyFee int64
}

// Breakdown детализированная стоимость
type Breakdown struct {
	GreenFee         int64
	CleaningFee      int64
	CartFee          int64
	CaddyFee         int64
	Subtotal         int64
	EntertainmentTax int64
	Total            int64
	PerPlayer        PerPlayer
}

// Calculate считает стоимость раунда по тарифной сетке. Чистая функция.
//
// greenFee, cleaningFee и cartFee умножаются на число игроков, caddyFee берется один раз на группу,
// налог округляется до целых.
func Calculate(in Input, cfg *domain.RateConfig) (*Breakdown, error) {
	if cfg == nil {
		return nil, ErrNoActiveRateConfig
	}
	if in.PlayerCount < domain.MinPlayers || in.PlayerCount > domain.MaxPlayers {
		return nil, fmt.Errorf("%w: player count %d out of [%d, %d]", ErrInvalidInput, in.PlayerCount, domain.MinPlayers, domain.MaxPlayers)
	}
	if !in.Holes.IsValid() {
		return nil, fmt.Errorf("%w: holes %d", ErrInvalidInput, in.Holes)
	}

	green, err := greenFee(cfg, in.Tier, in.Holes, domain.DayTypeFor(in.IsHoliday))
	if err != nil {
		return nil, err
	}
	cleaning, err := holeBucket(cfg.BaseFees.Cleaning, "cleaning", in.Holes)
	if err != nil {
		return nil, err
	}
	cart, err := holeBucket(cfg.BaseFees.CartPerPerson, "cart", in.Holes)
	if err != nil {
		return nil, err
	}
	caddy, err := caddyFee(cfg, in.CaddyRatio, in.Holes)
	if err != nil {
		return nil, err
	}

	players := int64(in.PlayerCount)
	b := &Breakdown{
		GreenFee:    green * players,
		CleaningFee: cleaning * players,
		CartFee:     cart * players,
		CaddyFee:    caddy,
		PerPlayer: PerPlayer{
			GreenFee:       green,
			CleaningFee:    cleaning,
			CartFee:        cart,
			SharedCaddyFee: caddy,
		},
	}
	b.Subtotal = b.GreenFee + b.CleaningFee + b.CartFee + b.CaddyFee
	b.EntertainmentTax = int64(math.Round(float64(b.Subtotal) * cfg.TaxConfig.EntertainmentTax))
	b.Total = b.Subtotal + b.EntertainmentTax

	return b, nil
}

func greenFee(cfg *domain.RateConfig, tier string, holes domain.Holes, day domain.DayType) (int64, error) {
	byHoles, ok := cfg.GreenFees[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	byDay, ok := byHoles[holes]
	if !ok {
		return 0, fmt.Errorf("%w: green fee %s/%d", ErrMissingHoleBucket, tier, holes)
	}
	amount, ok := byDay[day]
	if !ok {
		return 0, fmt.Errorf("%w: green fee %s/%d/%s", ErrMissingHoleBucket, tier, holes, day)
	}
	return amount, nil
}

func caddyFee(cfg *domain.RateConfig, ratio string, holes domain.Holes) (int64, error) {
	if ratio == "" {
		return 0, nil
	}
	byHoles, ok := cfg.CaddyFees[ratio]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRatio, ratio)
	}
	amount, ok := byHoles[holes]
	if !ok {
		return 0, fmt.Errorf("%w: caddy fee %s/%d", ErrMissingHoleBucket, ratio, holes)
	}
	return amount, nil
}

func holeBucket(fees map[domain.Holes]int64, name string, holes domain.Holes) (int64, error) {
	amount, ok := fees[holes]
	if !ok {
		return 0, fmt.Errorf("%w: %s fee %d", ErrMissingHoleBucket, name, holes)
	}
	return amount, nil
}
