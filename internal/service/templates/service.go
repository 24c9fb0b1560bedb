package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	templateRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/template"
	"github.com/m04kA/SMC-TeeTimeService/pkg/ptr"
)

// Service шаблон работы поля: глобальный шаблон плюс переопределения по датам
type Service struct {
	repo               TemplateRepository
	timeProvider       TimeProvider
	logger             Logger
	defaultTurnMinutes int
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(repo TemplateRepository, logger Logger) *Service {
	return &Service{
		repo:               repo,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
		defaultTurnMinutes: domain.DefaultTurnDurationMinutes,
	}
}

// SetDefaultTurnDuration задает длительность разворота для шаблонов без явного значения
func (s *Service) SetDefaultTurnDuration(minutes int) {
	if minutes > 0 {
		s.defaultTurnMinutes = minutes
	}
}

// GetOperatingTemplate возвращает шаблон, действующий в дату: глобальный шаблон,
// поверх которого наложено переопределение даты (если есть).
// Для открытого дня результат слияния валидируется.
func (s *Service) GetOperatingTemplate(ctx context.Context, date time.Time) (*domain.DaySchedule, error) {
	global, err := s.repo.GetGlobal(ctx)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Error("GetOperatingTemplate: global template is not configured")
			return nil, ErrTemplateNotConfigured
		}
		s.logger.Error("GetOperatingTemplate: failed to load global template: %v", err)
		return nil, fmt.Errorf("%w: GetOperatingTemplate - global: %v", ErrInternal, err)
	}

	override, err := s.repo.GetOverride(ctx, date)
	if err != nil && !errors.Is(err, templateRepo.ErrOverrideNotFound) {
		s.logger.Error("GetOperatingTemplate: failed to load override for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetOperatingTemplate - override: %v", ErrInternal, err)
	}

	day := domain.MergeTemplate(*global, override, date)
	if day.IsOpen() {
		if err := day.OperatingTemplate.Validate(); err != nil {
			s.logger.Error("GetOperatingTemplate: merged template for date=%s is invalid: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
	}

	return &day, nil
}

// GetGlobal возвращает глобальный шаблон
func (s *Service) GetGlobal(ctx context.Context) (*domain.OperatingTemplate, error) {
	tpl, err := s.repo.GetGlobal(ctx)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			return nil, ErrTemplateNotConfigured
		}
		s.logger.Error("GetGlobal: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetGlobal - repository error: %v", ErrInternal, err)
	}
	return tpl, nil
}

// UpdateGlobal заменяет глобальный шаблон
func (s *Service) UpdateGlobal(ctx context.Context, tpl *domain.OperatingTemplate) (*domain.OperatingTemplate, error) {
	s.logger.Info("UpdateGlobal: %s-%s every %d min, %d peak windows",
		tpl.StartTime, tpl.EndTime, tpl.IntervalMinutes, len(tpl.PeakWindows))

	if tpl.TurnDurationMinutes == 0 {
		tpl.TurnDurationMinutes = s.defaultTurnMinutes
	}
	if err := tpl.Validate(); err != nil {
		s.logger.Warn("UpdateGlobal: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	tpl.UpdatedAt = s.timeProvider.Now()
	if err := s.repo.SaveGlobal(ctx, tpl); err != nil {
		s.logger.Error("UpdateGlobal: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateGlobal - repository error: %v", ErrInternal, err)
	}

	return tpl, nil
}

// UpsertOverride создает или заменяет переопределение даты.
// Для открытого дня проверяется результат слияния с глобальным шаблоном.
func (s *Service) UpsertOverride(ctx context.Context, o *domain.CalendarOverride) (*domain.DaySchedule, error) {
	s.logger.Info("UpsertOverride: date=%s, status=%s, holiday=%v", o.Date.Format(domain.DateFormat), o.Status, ptr.Value(o.IsHoliday, domain.IsWeekend(o.Date)))

	if o.Status == "" {
		o.Status = domain.DayNormal
	}
	if !o.Status.IsValid() {
		s.logger.Warn("UpsertOverride: unknown status %q", o.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidOverride, o.Status)
	}

	global, err := s.GetGlobal(ctx)
	if err != nil {
		return nil, err
	}

	day := domain.MergeTemplate(*global, o, o.Date)
	if day.IsOpen() {
		if err := day.OperatingTemplate.Validate(); err != nil {
			s.logger.Warn("UpsertOverride: merged template is invalid: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
	}

	o.UpdatedAt = s.timeProvider.Now()
	if err := s.repo.UpsertOverride(ctx, o); err != nil {
		s.logger.Error("UpsertOverride: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertOverride - repository error: %v", ErrInternal, err)
	}

	return &day, nil
}

// DeleteOverride удаляет переопределение даты
func (s *Service) DeleteOverride(ctx context.Context, date time.Time) error {
	s.logger.Info("DeleteOverride: date=%s", date.Format(domain.DateFormat))

	if err := s.repo.DeleteOverride(ctx, date); err != nil {
		if errors.Is(err, templateRepo.ErrOverrideNotFound) {
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error: %v", err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ListOverrides возвращает переопределения в диапазоне дат
func (s *Service) ListOverrides(ctx context.Context, from, to time.Time) ([]*domain.CalendarOverride, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end %s before start %s", ErrInvalidOverride,
			to.Format(domain.DateFormat), from.Format(domain.DateFormat))
	}

	overrides, err := s.repo.ListOverrides(ctx, from, to)
	if err != nil {
		s.logger.Error("ListOverrides: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOverrides - repository error: %v", ErrInternal, err)
	}
	return overrides, nil
}
