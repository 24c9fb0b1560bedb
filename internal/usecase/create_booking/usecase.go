package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/schedule"
)

const (
	sourcePublic     = "public"
	sourcePrivileged = "privileged"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	waitlistRepo     WaitlistRepository
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
	templateProvider TemplateProvider,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		waitlistRepo:     waitlistRepo,
		templateProvider: templateProvider,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности, лимиты окон и вставка выполняются в одной сериализуемой транзакции;
// уникальный индекс (дата, старт) и сбой сериализации дают ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, date=%s, time=%s, holes=%d, players=%d, privileged=%t",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.Holes, req.PlayerCount, req.Privileged)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 2. Шаблон работы поля на дату (глобальный + переопределение)
	day, err := uc.templateProvider.GetOperatingTemplate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get operating template: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating template: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Активные бронирования даты с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{Date: &req.Date})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.2. Живые удержания листа ожидания
		entries, err := uc.waitlistRepo.ListByDate(txCtx, req.Date, domain.WaitlistNotified)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get waitlist holds: %v", err)
			return fmt.Errorf("%w: failed to get waitlist holds: %v", ErrInternal, err)
		}
		holds := schedule.HoldsFromEntries(entries, now, 0)

		// 3.3. Занятость, затем лимиты пиковых окон
		if err := schedule.Evaluate(*day, req.StartTime, req.Holes, req.Privileged, bookings, holds); err != nil {
			reason, translated := translateScheduleError(err)
			uc.metrics.BookingRejected(reason)
			uc.logger.Warn("CreateBooking: %s %s rejected: %v", req.Date.Format(domain.DateFormat), req.StartTime, err)
			return translated
		}

		// 3.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:      req.UserID,
			BookingDate: req.Date,
			StartTime:   req.StartTime,
			Holes:       req.Holes,
			PlayerCount: req.PlayerCount,
			Status:      domain.StatusConfirmed,
			Privileged:  req.Privileged,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) || bookingRepo.IsSlotConflict(err) {
			uc.metrics.BookingRejected("slot_taken")
			uc.logger.Warn("CreateBooking: lost race for %s %s: %v", req.Date.Format(domain.DateFormat), req.StartTime, err)
			return nil, fmt.Errorf("%w: concurrent booking", ErrSlotTaken)
		}
		if !isUseCaseError(err) {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil, err
	}

	source := sourcePublic
	if req.Privileged {
		source = sourcePrivileged
	}
	uc.metrics.BookingCreated(int(result.Holes), source)
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return toResponse(result), nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:          b.ID,
		UserID:      b.UserID,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		Holes:       b.Holes,
		PlayerCount: b.PlayerCount,
		Status:      string(b.Status),
		Privileged:  b.Privileged,
		CreatedAt:   b.CreatedAt,
	}
}

// isUseCaseError true для уже переведенных ошибок usecase
func isUseCaseError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput, ErrSlotTaken, ErrPeakWindowFull, ErrOverflowLocked,
		ErrTooLateForDuration, ErrCourseClosed, ErrInvalidTimeSlot, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
