package rates

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

var (
	allHoles    = []domain.Holes{domain.Holes9, domain.Holes18}
	allDayTypes = []domain.DayType{domain.Weekday, domain.Holiday}
)

// ValidateCompleteness проверяет, что каждый расчет по обязательным уровням и соотношениям
// найдет цену. Вызывается перед активацией, чтобы пропуски не всплыли в живом расчете.
func ValidateCompleteness(cfg *domain.RateConfig, requiredTiers, requiredRatios []string) error {
	var problems []error

	for _, tier := range requiredTiers {
		for _, holes := range allHoles {
			for _, day := range allDayTypes {
				if _, err := greenFee(cfg, tier, holes, day); err != nil {
					problems = append(problems, err)
				}
			}
		}
	}
	for _, ratio := range requiredRatios {
		for _, holes := range allHoles {
			if _, err := caddyFee(cfg, ratio, holes); err != nil {
				problems = append(problems, err)
			}
		}
	}
	for _, holes := range allHoles {
		if _, err := holeBucket(cfg.BaseFees.Cleaning, "cleaning", holes); err != nil {
			problems = append(problems, err)
		}
		if _, err := holeBucket(cfg.BaseFees.CartPerPerson, "cart", holes); err != nil {
			problems = append(problems, err)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrIncompleteRateConfig, errors.Join(problems...))
}

// validateRules переводит доменные ошибки сетки в ошибки сервиса
func validateRules(cfg *domain.RateConfig) error {
	err := cfg.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrPlatinumRateMismatch):
		return fmt.Errorf("%w: %v", ErrPlatinumRateMismatch, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidRateConfig, err)
	}
}
