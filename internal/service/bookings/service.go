package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeeTimeService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	waitlist     WaitlistEngine
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	waitlist WaitlistEngine,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		waitlist:     waitlist,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь видит только своё бронирование,
// персонал поля видит любое
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canAccess(booking, actor) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	userID := req.UserID
	filter := domain.BookingsFilter{UserID: &userID, IncludeInactive: true}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListByDate возвращает стартовый лист даты в порядке времени старта
func (s *Service) ListByDate(ctx context.Context, req *models.ListByDateRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByDate: date=%s, status=%v, includeInactive=%t",
		req.Date.Format(domain.DateFormat), req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByDate: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Владелец отменяет своё бронирование, персонал - любое.
// После коммита освободившийся слот передается листу ожидания;
// сбой продвижения очереди не отменяет отмену бронирования.
func (s *Service) Cancel(ctx context.Context, bookingID int64, actor models.Actor) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, actor.UserID)

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.load(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if !canAccess(booking, actor) {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", actor.UserID, bookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		now := s.timeProvider.Now()
		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, booking.Status, domain.StatusCancelled, now); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				s.logger.Warn("Cancel: booking id=%d changed concurrently", bookingID)
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancelledAt = &now
		cancelled = booking
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: cancelled booking id=%d (%s %s)",
		bookingID, cancelled.BookingDate.Format(domain.DateFormat), cancelled.StartTime)

	if _, err := s.waitlist.ProcessRelease(ctx, cancelled); err != nil {
		s.logger.Error("Cancel: waitlist promotion for booking id=%d failed: %v", bookingID, err)
	}

	return nil
}

// CheckIn отмечает прибытие группы. Доступно только персоналу.
func (s *Service) CheckIn(ctx context.Context, bookingID int64, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: booking id=%d by user=%d", bookingID, actor.UserID)

	if !actor.Staff {
		s.logger.Warn("CheckIn: user=%d is not staff", actor.UserID)
		return nil, ErrAccessDenied
	}

	booking, err := s.load(ctx, "CheckIn", bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.CanCheckIn() {
		s.logger.Warn("CheckIn: booking id=%d has status=%s", bookingID, booking.Status)
		return nil, ErrCannotCheckIn
	}

	now := s.timeProvider.Now()
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, domain.StatusCheckedIn, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return nil, ErrCannotCheckIn
		}
		s.logger.Error("CheckIn: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCheckedIn
	booking.CheckedInAt = &now
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// canAccess владелец или персонал
func canAccess(booking *domain.Booking, actor models.Actor) bool {
	return actor.Staff || booking.UserID == actor.UserID
}
