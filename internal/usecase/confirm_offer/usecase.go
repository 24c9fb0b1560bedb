package confirm_offer

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/booking"
	waitlistRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/schedule"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/waitlist"
)

const sourceWaitlist = "waitlist"

// UseCase подтверждение удерживаемого слота владельцем записи
type UseCase struct {
	bookingRepo      BookingRepository
	waitlistRepo     WaitlistRepository
	engine           WaitlistEngine
	templateProvider TemplateProvider
	txManager        TransactionManager
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	engine WaitlistEngine,
	templateProvider TemplateProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		waitlistRepo:     waitlistRepo,
		engine:           engine,
		templateProvider: templateProvider,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute создает бронирование на предложенный слот и переводит запись в confirmed.
// Бронирование и переход выполняются в одной транзакции.
// Просроченное предложение после отката запускает повторную раздачу слота,
// занятый слот возвращает запись на ее место в очереди.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmOffer: entry=%d, user=%d", req.EntryID, req.UserID)

	if req.EntryID <= 0 || req.UserID <= 0 {
		return nil, fmt.Errorf("%w: entryID and userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Запись и право владельца
		entry, err := uc.waitlistRepo.GetByID(txCtx, req.EntryID)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("%w: failed to get entry: %v", ErrInternal, err)
		}
		if entry.UserID != req.UserID {
			uc.logger.Warn("ConfirmOffer: user=%d does not own entry id=%d", req.UserID, entry.ID)
			return ErrAccessDenied
		}
		if !entry.IsHolding(now) || entry.OfferedStart == nil || entry.OfferedHoles == nil {
			uc.logger.Warn("ConfirmOffer: entry id=%d has no live offer (status=%s)", entry.ID, entry.EffectiveStatus(now))
			return ErrOfferExpired
		}

		// 2. Слот все еще свободен без учета собственного удержания
		day, err := uc.templateProvider.GetOperatingTemplate(txCtx, entry.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get operating template: %v", ErrInternal, err)
		}
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{Date: &entry.Date})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		held, err := uc.waitlistRepo.ListByDate(txCtx, entry.Date, domain.WaitlistNotified)
		if err != nil {
			return fmt.Errorf("%w: failed to get waitlist holds: %v", ErrInternal, err)
		}
		holds := schedule.HoldsFromEntries(held, now, entry.ID)

		// удержание уже занимало место в окне, поэтому проверка идет по привилегированному лимиту
		if err := schedule.Evaluate(*day, *entry.OfferedStart, *entry.OfferedHoles, true, bookings, holds); err != nil {
			uc.metrics.BookingRejected("offer_unavailable")
			uc.logger.Warn("ConfirmOffer: offered slot for entry id=%d unavailable: %v", entry.ID, err)
			return fmt.Errorf("%w: %w", ErrSlotUnavailable, err)
		}

		// 3. Бронирование и переход записи
		entryID := entry.ID
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:          entry.UserID,
			BookingDate:     entry.Date,
			StartTime:       *entry.OfferedStart,
			Holes:           *entry.OfferedHoles,
			PlayerCount:     entry.PlayerCount,
			Status:          domain.StatusConfirmed,
			Privileged:      true,
			WaitlistEntryID: &entryID,
		})
		if err != nil {
			return err
		}

		if err := uc.engine.Confirm(txCtx, entry); err != nil {
			if errors.Is(err, waitlist.ErrOfferExpired) {
				return ErrOfferExpired
			}
			return fmt.Errorf("%w: failed to confirm entry: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrOfferExpired):
			// слот мог остаться за просроченной записью
			if _, expErr := uc.engine.ExpireOverdue(ctx, "confirm"); expErr != nil {
				uc.logger.Error("ConfirmOffer: failed to expire overdue offers: %v", expErr)
			}
			return nil, err
		case errors.Is(err, bookingRepo.ErrSlotTaken) || bookingRepo.IsSlotConflict(err):
			uc.metrics.BookingRejected("offer_unavailable")
			uc.requeue(ctx, req.EntryID)
			return nil, fmt.Errorf("%w: concurrent booking", ErrSlotUnavailable)
		case errors.Is(err, ErrSlotUnavailable):
			uc.requeue(ctx, req.EntryID)
			return nil, err
		case errors.Is(err, ErrEntryNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("ConfirmOffer: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.metrics.BookingCreated(int(result.Holes), sourceWaitlist)
	uc.logger.Info("ConfirmOffer: entry id=%d confirmed as booking id=%d", req.EntryID, result.ID)

	return &Response{
		BookingID:       result.ID,
		WaitlistEntryID: req.EntryID,
		UserID:          result.UserID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		Holes:           result.Holes,
		PlayerCount:     result.PlayerCount,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
	}, nil
}

// requeue снимает удержание несуществующего слота, запись остается в очереди со своим местом
func (uc *UseCase) requeue(ctx context.Context, entryID int64) {
	if err := uc.engine.Requeue(ctx, entryID); err != nil {
		uc.logger.Error("ConfirmOffer: failed to requeue entry id=%d: %v", entryID, err)
	}
}
