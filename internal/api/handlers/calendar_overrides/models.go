package calendar_overrides

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// OverrideRequest переопределение даты. Незаданные поля наследуются от глобального шаблона.
type OverrideRequest struct {
	Status              string                 `json:"status" validate:"omitempty,oneof=normal closed emergency_closed"`
	IsHoliday           *bool                  `json:"isHoliday,omitempty"`
	StartTime           *string                `json:"startTime,omitempty" validate:"omitempty,hhmm"`
	EndTime             *string                `json:"endTime,omitempty" validate:"omitempty,hhmm"`
	IntervalMinutes     *int                   `json:"intervalMinutes,omitempty"`
	TurnDurationMinutes *int                   `json:"turnDurationMinutes,omitempty"`
	PeakWindows         []domain.PeakWindow    `json:"peakWindows,omitempty"`
	Overflow            *domain.OverflowWindow `json:"overflow,omitempty"`
	Note                *string                `json:"note,omitempty"`
}

// OverrideResponse сохраненное переопределение
type OverrideResponse struct {
	Date                string                 `json:"date"`
	Status              string                 `json:"status"`
	IsHoliday           *bool                  `json:"isHoliday,omitempty"`
	StartTime           *string                `json:"startTime,omitempty"`
	EndTime             *string                `json:"endTime,omitempty"`
	IntervalMinutes     *int                   `json:"intervalMinutes,omitempty"`
	TurnDurationMinutes *int                   `json:"turnDurationMinutes,omitempty"`
	PeakWindows         []domain.PeakWindow    `json:"peakWindows,omitempty"`
	Overflow            *domain.OverflowWindow `json:"overflow,omitempty"`
	Note                *string                `json:"note,omitempty"`
}

// ToDomain конвертирует HTTP запрос в доменное переопределение
func (r *OverrideRequest) ToDomain(date time.Time) (*domain.CalendarOverride, error) {
	o := &domain.CalendarOverride{
		Date:                date,
		Status:              domain.DayStatus(r.Status),
		IsHoliday:           r.IsHoliday,
		IntervalMinutes:     r.IntervalMinutes,
		TurnDurationMinutes: r.TurnDurationMinutes,
		PeakWindows:         r.PeakWindows,
		Overflow:            r.Overflow,
		Note:                r.Note,
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		o.StartTime = &start
	}
	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		o.EndTime = &end
	}

	return o, nil
}

// FromDomainOverrides конвертирует переопределения в DTO
func FromDomainOverrides(overrides []*domain.CalendarOverride) []OverrideResponse {
	out := make([]OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		resp := OverrideResponse{
			Date:                o.Date.Format(domain.DateFormat),
			Status:              string(o.Status),
			IsHoliday:           o.IsHoliday,
			IntervalMinutes:     o.IntervalMinutes,
			TurnDurationMinutes: o.TurnDurationMinutes,
			PeakWindows:         o.PeakWindows,
			Overflow:            o.Overflow,
			Note:                o.Note,
		}
		if o.StartTime != nil {
			start := o.StartTime.String()
			resp.StartTime = &start
		}
		if o.EndTime != nil {
			end := o.EndTime.String()
			resp.EndTime = &end
		}
		out = append(out, resp)
	}
	return out
}
