package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/schedule"
)

// maxClaimAttempts сколько кандидатов пробуем забрать, если CAS проигран
const maxClaimAttempts = 5

// Service движок листа ожидания (HOP): queued -> notified -> confirmed | expired | cancelled.
// Источник истины для удержания - lock_expiry, статус в БД догоняет его через ExpireOverdue.
type Service struct {
	repo         WaitlistRepository
	bookings     BookingReader
	templates    TemplateProvider
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	holdDuration time.Duration
}

// NewService создает движок листа ожидания.
// holdDuration <= 0 заменяется значением по умолчанию (2 часа).
func NewService(
	repo WaitlistRepository,
	bookings BookingReader,
	templates TemplateProvider,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	holdDuration time.Duration,
	logger Logger,
) *Service {
	if holdDuration <= 0 {
		holdDuration = domain.DefaultHoldDurationMinutes * time.Minute
	}
	return &Service{
		repo:         repo,
		bookings:     bookings,
		templates:    templates,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		holdDuration: holdDuration,
	}
}

// Now текущее время движка
func (s *Service) Now() time.Time {
	return s.timeProvider.Now()
}

// Enqueue ставит запись в конец очереди окна
func (s *Service) Enqueue(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	s.logger.Info("Enqueue: user=%d, date=%s, window=%s, range=%s-%s",
		entry.UserID, entry.Date.Format(domain.DateFormat), entry.PeakWindowID, entry.DesiredStart, entry.DesiredEnd)

	if err := entry.DesiredStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: desired start: %v", ErrInvalidInput, err)
	}
	if err := entry.DesiredEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: desired end: %v", ErrInvalidInput, err)
	}
	if !entry.DesiredStart.IsBefore(entry.DesiredEnd) {
		s.logger.Warn("Enqueue: invalid range %s-%s", entry.DesiredStart, entry.DesiredEnd)
		return nil, ErrInvalidRange
	}
	if entry.PlayerCount < domain.MinPlayers || entry.PlayerCount > domain.MaxPlayers {
		return nil, fmt.Errorf("%w: player count %d", ErrInvalidInput, entry.PlayerCount)
	}

	exists, err := s.repo.ExistsActive(ctx, entry.UserID, entry.Date, entry.PeakWindowID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Enqueue: failed to check existing entries: %v", err)
		return nil, fmt.Errorf("%w: Enqueue - exists check: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("Enqueue: user=%d already queued for window=%s", entry.UserID, entry.PeakWindowID)
		return nil, ErrAlreadyQueued
	}

	entry.Status = domain.WaitlistQueued
	created, err := s.repo.Create(ctx, entry)
	if errors.Is(err, waitlistRepo.ErrActiveEntryExists) {
		// уникальный индекс видит просроченное, но еще не погашенное удержание
		n, expErr := s.ExpireOverdue(ctx, "enqueue")
		if expErr != nil || n == 0 {
			s.logger.Warn("Enqueue: user=%d already queued for window=%s", entry.UserID, entry.PeakWindowID)
			return nil, ErrAlreadyQueued
		}
		created, err = s.repo.Create(ctx, entry)
		if errors.Is(err, waitlistRepo.ErrActiveEntryExists) {
			s.logger.Warn("Enqueue: user=%d already queued for window=%s", entry.UserID, entry.PeakWindowID)
			return nil, ErrAlreadyQueued
		}
	}
	if err != nil {
		s.logger.Error("Enqueue: failed to create entry: %v", err)
		return nil, fmt.Errorf("%w: Enqueue - create: %v", ErrInternal, err)
	}

	s.logger.Info("Enqueue: created entry id=%d", created.ID)
	return created, nil
}

// ProcessRelease предлагает освободившийся слот первой по очереди записи даты,
// чей диапазон содержит старт слота. Нет кандидата или слот уже занят - ничего не делает.
//
// Проверка слота и захват записи (SKIP LOCKED + CAS) идут в одной сериализуемой транзакции,
// предложение отправляется после коммита.
// Ошибка отправки не откатывает захват: запись помечается needs_follow_up.
func (s *Service) ProcessRelease(ctx context.Context, freed *domain.Booking) (*domain.WaitlistEntry, error) {
	now := s.timeProvider.Now()
	offer := domain.WaitlistOffer{
		OfferedStart:   freed.StartTime,
		OfferedHoles:   freed.Holes,
		FreedBookingID: freed.ID,
		LockExpiry:     now.Add(s.holdDuration),
	}

	var (
		claimed *domain.WaitlistEntry
		taken   bool
	)
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		free, err := s.slotIsFree(txCtx, freed, now)
		if err != nil {
			return err
		}
		if !free {
			taken = true
			return nil
		}

		skip := make([]int64, 0)
		for attempt := 0; attempt < maxClaimAttempts; attempt++ {
			candidate, err := s.repo.NextCandidate(txCtx, freed.BookingDate, freed.StartTime, skip)
			if errors.Is(err, waitlistRepo.ErrNoCandidate) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%w: ProcessRelease - next candidate: %v", ErrInternal, err)
			}

			err = s.repo.MarkNotified(txCtx, candidate.ID, offer, now)
			if errors.Is(err, waitlistRepo.ErrStatusConflict) {
				s.logger.Warn("ProcessRelease: lost claim for entry id=%d, trying next", candidate.ID)
				skip = append(skip, candidate.ID)
				continue
			}
			if err != nil {
				return fmt.Errorf("%w: ProcessRelease - mark notified: %v", ErrInternal, err)
			}

			candidate.Status = domain.WaitlistNotified
			candidate.LockExpiry = &offer.LockExpiry
			candidate.OfferedStart = &offer.OfferedStart
			candidate.OfferedHoles = &offer.OfferedHoles
			candidate.FreedBookingID = &offer.FreedBookingID
			claimed = candidate
			return nil
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ProcessRelease: booking id=%d: %v", freed.ID, err)
		return nil, err
	}

	if taken {
		return nil, nil
	}
	if claimed == nil {
		s.logger.Info("ProcessRelease: no queued entry for %s %s", freed.BookingDate.Format(domain.DateFormat), freed.StartTime)
		return nil, nil
	}

	s.metrics.WaitlistPromoted(claimed.PeakWindowID)
	s.logger.Info("ProcessRelease: entry id=%d holds %s %s until %s",
		claimed.ID, freed.BookingDate.Format(domain.DateFormat), freed.StartTime, offer.LockExpiry.Format(time.RFC3339))

	s.emit(ctx, claimed, freed, now)

	return claimed, nil
}

// slotIsFree проверяет, что освободившийся слот никто не занял до захвата записи.
// Лимит окна берется привилегированный: по нему же проверяется подтверждение предложения.
func (s *Service) slotIsFree(ctx context.Context, freed *domain.Booking, now time.Time) (bool, error) {
	day, err := s.templates.GetOperatingTemplate(ctx, freed.BookingDate)
	if err != nil {
		return false, fmt.Errorf("%w: ProcessRelease - operating template: %v", ErrInternal, err)
	}

	bookings, err := s.bookings.List(ctx, domain.BookingsFilter{Date: &freed.BookingDate})
	if err != nil {
		return false, fmt.Errorf("%w: ProcessRelease - bookings: %v", ErrInternal, err)
	}

	held, err := s.repo.ListByDate(ctx, freed.BookingDate, domain.WaitlistNotified)
	if err != nil {
		return false, fmt.Errorf("%w: ProcessRelease - waitlist holds: %v", ErrInternal, err)
	}

	holds := schedule.HoldsFromEntries(held, now, 0)
	if err := schedule.Evaluate(*day, freed.StartTime, freed.Holes, true, bookings, holds); err != nil {
		s.logger.Info("ProcessRelease: %s %s is no longer free, nothing to offer: %v",
			freed.BookingDate.Format(domain.DateFormat), freed.StartTime, err)
		return false, nil
	}
	return true, nil
}

// emit отправляет предложение и фиксирует результат отправки
func (s *Service) emit(ctx context.Context, entry *domain.WaitlistEntry, freed *domain.Booking, now time.Time) {
	sent := true
	if err := s.notifier.EmitPromotionOffer(ctx, entry, freed); err != nil {
		sent = false
		s.metrics.NotificationFailed("emit")
		s.logger.Error("emit: promotion offer for entry id=%d failed, needs follow-up: %v", entry.ID, err)
	}

	if err := s.repo.RecordDelivery(ctx, entry.ID, sent, now); err != nil {
		s.logger.Error("emit: failed to record delivery for entry id=%d: %v", entry.ID, err)
		return
	}
	entry.NotificationSent = sent
	entry.NeedsFollowUp = !sent
}

// ExpireOverdue переводит просроченные предложения в expired и заново
// отдает их слоты следующим в очереди. Идемпотентна.
func (s *Service) ExpireOverdue(ctx context.Context, path string) (int, error) {
	now := s.timeProvider.Now()

	expired, err := s.repo.ExpireOverdue(ctx, now)
	if err != nil {
		s.logger.Error("ExpireOverdue: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireOverdue - repository error: %v", ErrInternal, err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	s.metrics.OffersExpired(path, len(expired))
	s.logger.Info("ExpireOverdue: expired %d offers (%s)", len(expired), path)

	for _, entry := range expired {
		s.rerelease(ctx, entry)
	}

	return len(expired), nil
}

// Confirm переводит запись notified -> confirmed. Вызывается внутри транзакции
// создания бронирования. Просроченное удержание дает ErrOfferExpired.
func (s *Service) Confirm(ctx context.Context, entry *domain.WaitlistEntry) error {
	now := s.timeProvider.Now()
	if !entry.IsHolding(now) {
		return ErrOfferExpired
	}

	err := s.repo.MarkConfirmed(ctx, entry.ID, now)
	if errors.Is(err, waitlistRepo.ErrStatusConflict) {
		return ErrOfferExpired
	}
	if err != nil {
		return fmt.Errorf("%w: Confirm - mark confirmed: %v", ErrInternal, err)
	}

	entry.Status = domain.WaitlistConfirmed
	return nil
}

// Requeue возвращает запись, чей предложенный слот оказался занят, на прежнее место в очереди
func (s *Service) Requeue(ctx context.Context, entryID int64) error {
	err := s.repo.Requeue(ctx, entryID, s.timeProvider.Now())
	if errors.Is(err, waitlistRepo.ErrStatusConflict) {
		return fmt.Errorf("%w: entry id=%d is not holding a slot", ErrInvalidTransition, entryID)
	}
	if err != nil {
		s.logger.Error("Requeue: repository error for entry id=%d: %v", entryID, err)
		return fmt.Errorf("%w: Requeue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Requeue: entry id=%d is queued again", entryID)
	return nil
}

// GetByID возвращает запись с учетом lock_expiry на текущий момент
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetByID: repository error for entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	entry.Status = entry.EffectiveStatus(s.timeProvider.Now())
	return entry, nil
}

// ListActive возвращает записи даты, которые стоят в очереди или удерживают слот.
// Просроченные удержания в результат не попадают.
func (s *Service) ListActive(ctx context.Context, date time.Time) ([]*domain.WaitlistEntry, error) {
	entries, err := s.repo.ListByDate(ctx, date, domain.ActiveWaitlistStatuses...)
	if err != nil {
		s.logger.Error("ListActive: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	active := make([]*domain.WaitlistEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsActive(now) {
			active = append(active, e)
		}
	}
	return active, nil
}

// CancelEntry отменяет запись по запросу владельца.
// Если запись удерживала слот, слот уходит следующему в очереди.
func (s *Service) CancelEntry(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("CancelEntry: entry id=%d by user=%d", id, userID)

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("%w: CancelEntry - get entry: %v", ErrInternal, err)
	}
	if entry.UserID != userID {
		s.logger.Warn("CancelEntry: user=%d does not own entry id=%d", userID, id)
		return ErrAccessDenied
	}

	now := s.timeProvider.Now()
	if !entry.CanBeCancelled() || entry.IsOverdue(now) {
		return fmt.Errorf("%w: entry is %s", ErrInvalidTransition, entry.EffectiveStatus(now))
	}

	if err := s.repo.Cancel(ctx, id, now); err != nil {
		if errors.Is(err, waitlistRepo.ErrStatusConflict) {
			return fmt.Errorf("%w: entry changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("CancelEntry: repository error: %v", err)
		return fmt.Errorf("%w: CancelEntry - cancel: %v", ErrInternal, err)
	}

	if entry.IsHolding(now) {
		s.rerelease(ctx, entry)
	}

	return nil
}

// RecordDelivery фиксирует отчет шлюза о доставке предложения
func (s *Service) RecordDelivery(ctx context.Context, id int64, sent bool) error {
	if err := s.repo.RecordDelivery(ctx, id, sent, s.timeProvider.Now()); err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("RecordDelivery: repository error for entry id=%d: %v", id, err)
		return fmt.Errorf("%w: RecordDelivery - repository error: %v", ErrInternal, err)
	}

	if !sent {
		s.metrics.NotificationFailed("delivery")
		s.logger.Warn("RecordDelivery: offer for entry id=%d was not delivered, needs follow-up", id)
	}
	return nil
}

// rerelease отдает удерживавшийся записью слот следующему в очереди
func (s *Service) rerelease(ctx context.Context, entry *domain.WaitlistEntry) {
	if entry.OfferedStart == nil {
		return
	}

	freed := &domain.Booking{
		BookingDate: entry.Date,
		StartTime:   *entry.OfferedStart,
		Holes:       domain.Holes9,
	}
	if entry.OfferedHoles != nil {
		freed.Holes = *entry.OfferedHoles
	}
	if entry.FreedBookingID != nil {
		freed.ID = *entry.FreedBookingID
	}

	if _, err := s.ProcessRelease(ctx, freed); err != nil {
		s.logger.Error("rerelease: slot held by entry id=%d was not re-offered: %v", entry.ID, err)
	}
}
