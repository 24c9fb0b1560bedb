package join_waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/waitlist"
)

// UseCase постановка в лист ожидания пикового окна
type UseCase struct {
	engine           WaitlistEngine
	templateProvider TemplateProvider
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine WaitlistEngine, templateProvider TemplateProvider, logger Logger) *UseCase {
	return &UseCase{
		engine:           engine,
		templateProvider: templateProvider,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute ставит игрока в конец очереди окна.
// Желаемый диапазон должен лежать внутри пикового окна даты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinWaitlist: user=%d, date=%s, window=%s, range=%s-%s, players=%d",
		req.UserID, req.Date.Format(domain.DateFormat), req.PeakWindowID, req.DesiredStart, req.DesiredEnd, req.PlayerCount)

	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("JoinWaitlist: validation failed: %v", err)
		return nil, err
	}

	day, err := uc.templateProvider.GetOperatingTemplate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("JoinWaitlist: failed to get operating template: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating template: %v", ErrInternal, err)
	}
	if !day.IsOpen() {
		uc.logger.Warn("JoinWaitlist: course is %s on %s", day.Status, req.Date.Format(domain.DateFormat))
		return nil, ErrCourseClosed
	}

	window, ok := day.PeakWindow(req.PeakWindowID)
	if !ok {
		uc.logger.Warn("JoinWaitlist: unknown peak window %q", req.PeakWindowID)
		return nil, fmt.Errorf("%w: %q", ErrUnknownPeakWindow, req.PeakWindowID)
	}
	if !window.Contains(req.DesiredStart) || !window.Contains(req.DesiredEnd) {
		uc.logger.Warn("JoinWaitlist: range %s-%s outside window %s-%s",
			req.DesiredStart, req.DesiredEnd, window.Start, window.End)
		return nil, fmt.Errorf("%w: window %s is %s-%s", ErrRangeOutsideWindow, window.ID, window.Start, window.End)
	}

	entry, err := uc.engine.Enqueue(ctx, &domain.WaitlistEntry{
		UserID:       req.UserID,
		Date:         req.Date,
		DesiredStart: req.DesiredStart,
		DesiredEnd:   req.DesiredEnd,
		PlayerCount:  req.PlayerCount,
		PeakWindowID: window.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrAlreadyQueued):
			return nil, ErrAlreadyQueued
		case errors.Is(err, waitlist.ErrInvalidRange):
			return nil, ErrInvalidRange
		case errors.Is(err, waitlist.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("JoinWaitlist: failed to enqueue: %v", err)
			return nil, fmt.Errorf("%w: failed to enqueue: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("JoinWaitlist: entry id=%d queued for window=%s", entry.ID, entry.PeakWindowID)

	return &Response{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Date:         entry.Date,
		PeakWindowID: entry.PeakWindowID,
		DesiredStart: entry.DesiredStart,
		DesiredEnd:   entry.DesiredEnd,
		PlayerCount:  entry.PlayerCount,
		Status:       string(entry.Status),
		CreatedAt:    entry.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.PeakWindowID == "" {
		return fmt.Errorf("%w: peakWindowId is required", ErrInvalidInput)
	}
	if err := req.DesiredStart.Validate(); err != nil {
		return fmt.Errorf("%w: desiredStart: %v", ErrInvalidInput, err)
	}
	if err := req.DesiredEnd.Validate(); err != nil {
		return fmt.Errorf("%w: desiredEnd: %v", ErrInvalidInput, err)
	}
	if !req.DesiredStart.IsBefore(req.DesiredEnd) {
		return ErrInvalidRange
	}
	if req.PlayerCount < domain.MinPlayers || req.PlayerCount > domain.MaxPlayers {
		return fmt.Errorf("%w: playerCount must be between %d and %d", ErrInvalidInput, domain.MinPlayers, domain.MaxPlayers)
	}

	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	return nil
}
