package handlers

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// OperatingTemplateDTO шаблон работы поля в JSON
type OperatingTemplateDTO struct {
	StartTime           string                 `json:"startTime" validate:"required,hhmm"`
	EndTime             string                 `json:"endTime" validate:"required,hhmm"`
	IntervalMinutes     int                    `json:"intervalMinutes" validate:"required"`
	TurnDurationMinutes int                    `json:"turnDurationMinutes,omitempty"`
	PeakWindows         []domain.PeakWindow    `json:"peakWindows"`
	Overflow            *domain.OverflowWindow `json:"overflow,omitempty"`
	UpdatedAt           *string                `json:"updatedAt,omitempty"`
}

// DayScheduleDTO шаблон, действующий в конкретную дату
type DayScheduleDTO struct {
	Date      string `json:"date"`
	Status    string `json:"status"`
	IsHoliday bool   `json:"isHoliday"`
	OperatingTemplateDTO
}

// ToDomain конвертирует DTO в доменный шаблон. Границы окон проверяет сам шаблон.
func (d *OperatingTemplateDTO) ToDomain() (*domain.OperatingTemplate, error) {
	start, err := types.NewTimeStringFromString(d.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(d.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.OperatingTemplate{
		StartTime:           start,
		EndTime:             end,
		IntervalMinutes:     d.IntervalMinutes,
		TurnDurationMinutes: d.TurnDurationMinutes,
		PeakWindows:         d.PeakWindows,
		Overflow:            d.Overflow,
	}, nil
}

// FromDomainTemplate конвертирует доменный шаблон в DTO
func FromDomainTemplate(t *domain.OperatingTemplate) OperatingTemplateDTO {
	dto := OperatingTemplateDTO{
		StartTime:           t.StartTime.String(),
		EndTime:             t.EndTime.String(),
		IntervalMinutes:     t.IntervalMinutes,
		TurnDurationMinutes: t.TurnDurationMinutes,
		PeakWindows:         t.PeakWindows,
		Overflow:            t.Overflow,
	}
	if dto.PeakWindows == nil {
		dto.PeakWindows = []domain.PeakWindow{}
	}
	if !t.UpdatedAt.IsZero() {
		updated := t.UpdatedAt.Format(time.RFC3339)
		dto.UpdatedAt = &updated
	}
	return dto
}

// FromDomainDaySchedule конвертирует шаблон даты в DTO
func FromDomainDaySchedule(d *domain.DaySchedule) *DayScheduleDTO {
	return &DayScheduleDTO{
		Date:                 d.Date.Format(domain.DateFormat),
		Status:               string(d.Status),
		IsHoliday:            d.IsHoliday,
		OperatingTemplateDTO: FromDomainTemplate(&d.OperatingTemplate),
	}
}
