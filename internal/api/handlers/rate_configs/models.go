package rate_configs

import (
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// RateConfigRequest цены тарифной сетки.
// Ключи: greenFees[tier][holes][weekday|holiday], caddyFees[ratio][holes].
type RateConfigRequest struct {
	GreenFees domain.GreenFees `json:"greenFees" validate:"required"`
	CaddyFees domain.CaddyFees `json:"caddyFees" validate:"required"`
	BaseFees  domain.BaseFees  `json:"baseFees"`
	TaxConfig domain.TaxConfig `json:"taxConfig"`
}

// RateConfigResponse версия тарифной сетки
type RateConfigResponse struct {
	ID            int64            `json:"id"`
	VersionNumber int              `json:"versionNumber"`
	Status        string           `json:"status"`
	GreenFees     domain.GreenFees `json:"greenFees"`
	CaddyFees     domain.CaddyFees `json:"caddyFees"`
	BaseFees      domain.BaseFees  `json:"baseFees"`
	TaxConfig     domain.TaxConfig `json:"taxConfig"`
	CreatedBy     int64            `json:"createdBy"`
	ApprovedBy    *int64           `json:"approvedBy,omitempty"`
	ActivatedAt   *string          `json:"activatedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ToDomain конвертирует запрос в доменную сетку
func (r *RateConfigRequest) ToDomain() *domain.RateConfig {
	return &domain.RateConfig{
		GreenFees: r.GreenFees,
		CaddyFees: r.CaddyFees,
		BaseFees:  r.BaseFees,
		TaxConfig: r.TaxConfig,
	}
}

// FromDomain конвертирует доменную сетку в DTO
func FromDomain(c *domain.RateConfig) *RateConfigResponse {
	resp := &RateConfigResponse{
		ID:            c.ID,
		VersionNumber: c.VersionNumber,
		Status:        string(c.Status),
		GreenFees:     c.GreenFees,
		CaddyFees:     c.CaddyFees,
		BaseFees:      c.BaseFees,
		TaxConfig:     c.TaxConfig,
		CreatedBy:     c.CreatedBy,
		ApprovedBy:    c.ApprovedBy,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.ActivatedAt != nil {
		activated := c.ActivatedAt.Format(time.RFC3339)
		resp.ActivatedAt = &activated
	}
	return resp
}

// FromDomainList конвертирует список сеток в DTO
func FromDomainList(configs []*domain.RateConfig) []*RateConfigResponse {
	out := make([]*RateConfigResponse, 0, len(configs))
	for _, c := range configs {
		out = append(out, FromDomain(c))
	}
	return out
}
