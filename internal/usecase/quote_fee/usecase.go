package quote_fee

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/rates"
)

// UseCase расчет стоимости раунда по активной тарифной сетке
type UseCase struct {
	rateProvider     RateProvider
	templateProvider TemplateProvider
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rateProvider RateProvider, templateProvider TemplateProvider, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		rateProvider:     rateProvider,
		templateProvider: templateProvider,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute считает стоимость. Тип дня берется из шаблона даты: выходные или праздник из переопределения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteFee: date=%s, tier=%s, holes=%d, caddy=%q, players=%d",
		req.Date.Format(domain.DateFormat), req.Tier, req.Holes, req.CaddyRatio, req.PlayerCount)

	if req.Date.IsZero() || req.Tier == "" {
		return nil, fmt.Errorf("%w: date and tier are required", ErrInvalidInput)
	}

	cfg, err := uc.rateProvider.GetActive(ctx)
	if err != nil {
		if errors.Is(err, rates.ErrNoActiveRateConfig) {
			return nil, ErrNoActiveRateConfig
		}
		uc.logger.Error("QuoteFee: failed to get active rate config: %v", err)
		return nil, fmt.Errorf("%w: failed to get active rate config: %v", ErrInternal, err)
	}

	day, err := uc.templateProvider.GetOperatingTemplate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("QuoteFee: failed to get operating template: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating template: %v", ErrInternal, err)
	}

	b, err := rates.Calculate(rates.Input{
		Tier:        req.Tier,
		Holes:       req.Holes,
		IsHoliday:   day.IsHoliday,
		CaddyRatio:  req.CaddyRatio,
		PlayerCount: req.PlayerCount,
	}, cfg)
	if err != nil {
		uc.logger.Warn("QuoteFee: calculation failed for config id=%d: %v", cfg.ID, err)
		return nil, translateRatesError(err)
	}

	uc.metrics.FeeQuoted(req.Tier)

	return &Response{
		RateConfigID:     cfg.ID,
		VersionNumber:    cfg.VersionNumber,
		Date:             req.Date,
		DayType:          domain.DayTypeFor(day.IsHoliday),
		Tier:             req.Tier,
		Holes:            req.Holes,
		PlayerCount:      req.PlayerCount,
		GreenFee:         b.GreenFee,
		CleaningFee:      b.CleaningFee,
		CartFee:          b.CartFee,
		CaddyFee:         b.CaddyFee,
		Subtotal:         b.Subtotal,
		EntertainmentTax: b.EntertainmentTax,
		Total:            b.Total,
		PerPlayer: PerPlayer{
			GreenFee:       b.PerPlayer.GreenFee,
			CleaningFee:    b.PerPlayer.CleaningFee,
			CartFee:        b.PerPlayer.CartFee,
			SharedCaddyFee: b.PerPlayer.SharedCaddyFee,
		},
	}, nil
}

func translateRatesError(err error) error {
	switch {
	case errors.Is(err, rates.ErrUnknownTier):
		return fmt.Errorf("%w: %v", ErrUnknownTier, err)
	case errors.Is(err, rates.ErrUnknownRatio):
		return fmt.Errorf("%w: %v", ErrUnknownRatio, err)
	case errors.Is(err, rates.ErrMissingHoleBucket):
		return fmt.Errorf("%w: %v", ErrMissingHoleBucket, err)
	case errors.Is(err, rates.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, rates.ErrNoActiveRateConfig):
		return ErrNoActiveRateConfig
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
