package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/schedule"
)

// UseCase use case стартового листа даты: сетка, занятость и заполненность окон
type UseCase struct {
	bookingRepo      BookingRepository
	waitlistRepo     WaitlistRepository
	templateProvider TemplateProvider
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	templateProvider TemplateProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		waitlistRepo:     waitlistRepo,
		templateProvider: templateProvider,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения стартового листа.
// Заполненность окон пересчитывается при каждом запросе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, date=%s, holes=%d",
		req.UserID, req.Date.Format(domain.DateFormat), req.Holes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Шаблон работы поля на дату
	day, err := uc.templateProvider.GetOperatingTemplate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get operating template: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating template: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:        req.Date,
		Status:      day.Status,
		IsHoliday:   day.IsHoliday,
		Slots:       []Slot{},
		PeakWindows: []PeakWindowStatus{},
	}

	// Поле закрыто - пустая сетка
	if !day.IsOpen() {
		uc.logger.Info("GetAvailableSlots: course is %s on %s", day.Status, req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	// 3. Активные бронирования и удержания даты
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{Date: &req.Date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	entries, err := uc.waitlistRepo.ListByDate(ctx, req.Date, domain.WaitlistNotified)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get waitlist holds: %v", err)
		return nil, fmt.Errorf("%w: failed to get waitlist holds: %v", ErrInternal, err)
	}
	holds := schedule.HoldsFromEntries(entries, now, 0)

	// 4. Состояние каждого старта
	sheet, err := schedule.TeeSheet(*day, req.Holes, bookings, holds)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidTemplate) {
			uc.logger.Error("GetAvailableSlots: template for %s is invalid: %v", req.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to build tee sheet: %v", err)
		return nil, fmt.Errorf("%w: failed to build tee sheet: %v", ErrInternal, err)
	}

	resp.Slots = buildSlots(sheet, req.Date, now)
	resp.PeakWindows = buildWindows(schedule.NewTracker(*day, bookings, holds).Snapshot())

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s",
		len(resp.Slots), req.Date.Format(domain.DateFormat))

	return resp, nil
}
