package domain

import (
	"fmt"
	"time"
)

// RateConfigStatus статус версии тарифной сетки
type RateConfigStatus string

const (
	RateDraft           RateConfigStatus = "draft"
	RatePendingApproval RateConfigStatus = "pending_approval"
	RateApproved        RateConfigStatus = "approved"
	RateActive          RateConfigStatus = "active"
	RateArchived        RateConfigStatus = "archived"
)

// DayType тип дня для грин-фи
type DayType string

const (
	Weekday DayType = "weekday"
	Holiday DayType = "holiday"
)

// DayTypeFor returns Holiday for holidays, Weekday otherwise
func DayTypeFor(isHoliday bool) DayType {
	if isHoliday {
		return Holiday
	}
	return Weekday
}

// PlatinumTier уровень, для которого цена будни == выходные
const PlatinumTier = "platinum"

// GreenFees tier -> holes -> day type -> цена за игрока
type GreenFees map[string]map[Holes]map[DayType]int64

// CaddyFees ratio ("1:4") -> holes -> цена за группу
type CaddyFees map[string]map[Holes]int64

// BaseFees сборы за игрока по классу раунда
type BaseFees struct {
	Cleaning      map[Holes]int64 `json:"cleaning"`
	CartPerPerson map[Holes]int64 `json:"cartPerPerson"`
}

// TaxConfig налоги
type TaxConfig struct {
	EntertainmentTax float64 `json:"entertainmentTax"` // 0.05 = 5%
}

// RateConfig версия тарифной сетки. Суммы в целых единицах валюты.
type RateConfig struct {
	ID            int64
	VersionNumber int
	Status        RateConfigStatus
	GreenFees     GreenFees
	CaddyFees     CaddyFees
	BaseFees      BaseFees
	TaxConfig     TaxConfig

	CreatedBy   int64
	ApprovedBy  *int64
	ActivatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// rateTransitions допустимые переходы. Откат возможен только pending_approval -> draft.
var rateTransitions = map[RateConfigStatus][]RateConfigStatus{
	RateDraft:           {RatePendingApproval},
	RatePendingApproval: {RateApproved, RateDraft},
	RateApproved:        {RateActive},
	RateActive:          {RateArchived},
}

// CanTransition returns true if the lifecycle allows from -> to
func (c *RateConfig) CanTransition(to RateConfigStatus) bool {
	for _, next := range rateTransitions[c.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// IsEditable returns true while the schedule is still a draft
func (c *RateConfig) IsEditable() bool {
	return c.Status == RateDraft
}

// Validate проверяет суммы и правило platinum. Полнота сетки проверяется при активации.
func (c *RateConfig) Validate() error {
	if c.TaxConfig.EntertainmentTax < 0 || c.TaxConfig.EntertainmentTax >= 1 {
		return fmt.Errorf("%w: entertainment tax %.4f out of [0, 1)", ErrInvalidRateConfig, c.TaxConfig.EntertainmentTax)
	}

	for tier, byHoles := range c.GreenFees {
		for holes, byDay := range byHoles {
			if !holes.IsValid() {
				return fmt.Errorf("%w: green fee %s has unknown hole bucket %d", ErrInvalidRateConfig, tier, holes)
			}
			for day, amount := range byDay {
				if amount < 0 {
					return fmt.Errorf("%w: green fee %s/%d/%s is negative", ErrInvalidRateConfig, tier, holes, day)
				}
			}
		}
	}
	for ratio, byHoles := range c.CaddyFees {
		for holes, amount := range byHoles {
			if !holes.IsValid() || amount < 0 {
				return fmt.Errorf("%w: caddy fee %s/%d is invalid", ErrInvalidRateConfig, ratio, holes)
			}
		}
	}
	for holes, amount := range c.BaseFees.Cleaning {
		if !holes.IsValid() || amount < 0 {
			return fmt.Errorf("%w: cleaning fee %d is invalid", ErrInvalidRateConfig, holes)
		}
	}
	for holes, amount := range c.BaseFees.CartPerPerson {
		if !holes.IsValid() || amount < 0 {
			return fmt.Errorf("%w: cart fee %d is invalid", ErrInvalidRateConfig, holes)
		}
	}

	return c.ValidatePlatinum()
}

// ValidatePlatinum требует одинаковую цену будни/выходные для уровня platinum
func (c *RateConfig) ValidatePlatinum() error {
	for holes, byDay := range c.GreenFees[PlatinumTier] {
		weekday, hasWeekday := byDay[Weekday]
		holiday, hasHoliday := byDay[Holiday]
		if hasWeekday != hasHoliday || weekday != holiday {
			return fmt.Errorf("%w: %d holes weekday=%d holiday=%d", ErrPlatinumRateMismatch, holes, weekday, holiday)
		}
	}
	return nil
}
