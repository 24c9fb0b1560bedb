package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/infra/cache/ratecache"
	rateConfigRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/rateconfig"
)

// Service хранилище версионированных тарифных сеток с жизненным циклом
// draft -> pending_approval -> approved -> active -> archived.
type Service struct {
	repo           RateConfigRepository
	cache          ActiveConfigCache
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
	requiredTiers  []string
	requiredRatios []string
}

// NewService создает сервис тарифов. cache может быть nil.
func NewService(
	repo RateConfigRepository,
	cache ActiveConfigCache,
	txManager TransactionManager,
	requiredTiers []string,
	requiredRatios []string,
	logger Logger,
) *Service {
	return &Service{
		repo:           repo,
		cache:          cache,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		requiredTiers:  requiredTiers,
		requiredRatios: requiredRatios,
	}
}

// GetActive возвращает активную сетку: сначала кэш, затем БД с прогревом кэша
func (s *Service) GetActive(ctx context.Context) (*domain.RateConfig, error) {
	if s.cache != nil {
		cfg, err := s.cache.Get(ctx)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ratecache.ErrCacheMiss) {
			s.logger.Warn("GetActive: cache read failed, falling back to db: %v", err)
		}
	}

	cfg, err := s.repo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, rateConfigRepo.ErrRateConfigNotFound) {
			s.logger.Warn("GetActive: no active rate config")
			return nil, ErrNoActiveRateConfig
		}
		s.logger.Error("GetActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetActive - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cfg); err != nil {
			s.logger.Warn("GetActive: cache write failed for config id=%d: %v", cfg.ID, err)
		}
	}

	return cfg, nil
}

// GetByID возвращает сетку по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.RateConfig, error) {
	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rateConfigRepo.ErrRateConfigNotFound) {
			return nil, ErrRateConfigNotFound
		}
		s.logger.Error("GetByID: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return cfg, nil
}

// List возвращает все версии, новые первыми
func (s *Service) List(ctx context.Context) ([]*domain.RateConfig, error) {
	configs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return configs, nil
}

// CreateDraft сохраняет новую версию в статусе draft
func (s *Service) CreateDraft(ctx context.Context, cfg *domain.RateConfig, actor int64) (*domain.RateConfig, error) {
	s.logger.Info("CreateDraft: creating rate config by user=%d", actor)

	if err := validateRules(cfg); err != nil {
		s.logger.Warn("CreateDraft: validation failed: %v", err)
		return nil, err
	}

	var created *domain.RateConfig
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		version, err := s.repo.NextVersion(txCtx)
		if err != nil {
			return fmt.Errorf("%w: CreateDraft - next version: %v", ErrInternal, err)
		}

		cfg.VersionNumber = version
		cfg.Status = domain.RateDraft
		cfg.CreatedBy = actor
		cfg.ApprovedBy = nil
		cfg.ActivatedAt = nil

		created, err = s.repo.Create(txCtx, cfg)
		if err != nil {
			return fmt.Errorf("%w: CreateDraft - create: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("CreateDraft: %v", err)
		return nil, err
	}

	s.logger.Info("CreateDraft: created rate config id=%d version=%d", created.ID, created.VersionNumber)
	return created, nil
}

// UpdateDraft заменяет цены черновика
func (s *Service) UpdateDraft(ctx context.Context, id int64, fees *domain.RateConfig) (*domain.RateConfig, error) {
	s.logger.Info("UpdateDraft: updating rate config id=%d", id)

	if err := validateRules(fees); err != nil {
		s.logger.Warn("UpdateDraft: validation failed for config id=%d: %v", id, err)
		return nil, err
	}

	var updated *domain.RateConfig
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.load(txCtx, id)
		if err != nil {
			return err
		}
		if !current.IsEditable() {
			return fmt.Errorf("%w: status=%s", ErrNotEditable, current.Status)
		}

		current.GreenFees = fees.GreenFees
		current.CaddyFees = fees.CaddyFees
		current.BaseFees = fees.BaseFees
		current.TaxConfig = fees.TaxConfig

		if err := s.repo.UpdateFees(txCtx, current); err != nil {
			return s.translate("UpdateDraft", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		s.logger.Warn("UpdateDraft: config id=%d: %v", id, err)
		return nil, err
	}

	return updated, nil
}

// Submit отправляет черновик на согласование
func (s *Service) Submit(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error) {
	return s.transition(ctx, "Submit", id, domain.RatePendingApproval, actor)
}

// Approve согласовывает версию
func (s *Service) Approve(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error) {
	return s.transition(ctx, "Approve", id, domain.RateApproved, actor)
}

// Reject возвращает версию на доработку (pending_approval -> draft)
func (s *Service) Reject(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error) {
	return s.transition(ctx, "Reject", id, domain.RateDraft, actor)
}

// Activate делает согласованную версию активной и архивирует предыдущую в одной транзакции.
// Неполная сетка не активируется.
func (s *Service) Activate(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error) {
	cfg, err := s.transition(ctx, "Activate", id, domain.RateActive, actor)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cfg); err != nil {
			s.logger.Warn("Activate: cache refresh failed, invalidating: %v", err)
			if err := s.cache.Invalidate(ctx); err != nil {
				s.logger.Error("Activate: cache invalidation failed: %v", err)
			}
		}
	}

	return cfg, nil
}

func (s *Service) transition(ctx context.Context, op string, id int64, to domain.RateConfigStatus, actor int64) (*domain.RateConfig, error) {
	s.logger.Info("%s: rate config id=%d -> %s by user=%d", op, id, to, actor)

	var result *domain.RateConfig
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cfg, err := s.load(txCtx, id)
		if err != nil {
			return err
		}
		if !cfg.CanTransition(to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cfg.Status, to)
		}

		now := s.timeProvider.Now()

		if to == domain.RateActive {
			if err := ValidateCompleteness(cfg, s.requiredTiers, s.requiredRatios); err != nil {
				return err
			}
			if err := s.archiveActive(txCtx, actor, now); err != nil {
				return err
			}
		}

		if err := s.repo.Transition(txCtx, id, cfg.Status, to, &actor, now); err != nil {
			return s.translate(op, err)
		}

		result, err = s.load(txCtx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("%s: rate config id=%d: %v", op, id, err)
		} else {
			s.logger.Warn("%s: rate config id=%d: %v", op, id, err)
		}
		return nil, err
	}

	s.logger.Info("%s: rate config id=%d is now %s", op, id, result.Status)
	return result, nil
}

// archiveActive переводит текущую активную версию в archived
func (s *Service) archiveActive(ctx context.Context, actor int64, now time.Time) error {
	active, err := s.repo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, rateConfigRepo.ErrRateConfigNotFound) {
			return nil
		}
		return s.translate("archiveActive", err)
	}

	if err := s.repo.Transition(ctx, active.ID, domain.RateActive, domain.RateArchived, &actor, now); err != nil {
		return s.translate("archiveActive", err)
	}

	s.logger.Info("archiveActive: archived rate config id=%d version=%d", active.ID, active.VersionNumber)
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.RateConfig, error) {
	cfg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate("load", err)
	}
	return cfg, nil
}

func (s *Service) translate(op string, err error) error {
	switch {
	case errors.Is(err, rateConfigRepo.ErrRateConfigNotFound):
		return ErrRateConfigNotFound
	case errors.Is(err, rateConfigRepo.ErrStatusConflict):
		return fmt.Errorf("%w: %s - concurrent status change", ErrInvalidTransition, op)
	default:
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
