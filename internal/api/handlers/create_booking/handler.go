package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/schedule"
	createBooking "github.com/m04kA/SMC-TeeTimeService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgInvalidBookingDate = "дата бронирования в прошлом"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgCourseClosed       = "поле закрыто в выбранную дату"
	msgInvalidTimeSlot    = "время не совпадает с сеткой стартов"
	msgTooLateForDuration = "раунд не успеет завершиться до закрытия поля"
	msgSlotTaken          = "выбранное стартовое время занято"
	msgPeakWindowFull     = "пиковое окно заполнено, можно встать в лист ожидания"
	msgOverflowLocked     = "дополнительные слоты откроются после заполнения пикового окна"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.DecodeErrorMessage(err, msgInvalidRequestBody))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, middleware.IsPrivileged(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, err, &req, userID)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, date=%s, time=%s",
		result.ID, userID, req.BookingDate, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, req *CreateBookingRequest, userID int64) {
	var peakFull *schedule.PeakFullError

	switch {
	case errors.As(err, &peakFull):
		h.logger.Warn("POST /bookings - Peak window full: user_id=%d, window=%s, count=%d/%d",
			userID, peakFull.WindowID, peakFull.Count, peakFull.Limit)
		handlers.RespondErrorWithDetails(w, http.StatusConflict, msgPeakWindowFull, map[string]interface{}{
			"suggestWaitlist": true,
			"peakWindowId":    peakFull.WindowID,
			"booked":          peakFull.Count,
			"limit":           peakFull.Limit,
		})

	case errors.Is(err, createBooking.ErrSlotTaken):
		h.logger.Warn("POST /bookings - Slot taken: user_id=%d, date=%s, time=%s", userID, req.BookingDate, req.StartTime)
		handlers.RespondErrorWithDetails(w, http.StatusConflict, msgSlotTaken, map[string]interface{}{
			"suggestWaitlist": true,
		})

	case errors.Is(err, createBooking.ErrOverflowLocked):
		h.logger.Warn("POST /bookings - Overflow locked: user_id=%d, time=%s", userID, req.StartTime)
		handlers.RespondConflict(w, msgOverflowLocked)

	case errors.Is(err, createBooking.ErrCourseClosed):
		h.logger.Warn("POST /bookings - Course closed: date=%s", req.BookingDate)
		handlers.RespondBadRequest(w, msgCourseClosed)

	case errors.Is(err, createBooking.ErrInvalidDate):
		h.logger.Warn("POST /bookings - Date in the past: date=%s", req.BookingDate)
		handlers.RespondBadRequest(w, msgInvalidBookingDate)

	case errors.Is(err, createBooking.ErrTooLateToBook):
		h.logger.Warn("POST /bookings - Too late to book: date=%s, time=%s", req.BookingDate, req.StartTime)
		handlers.RespondBadRequest(w, msgTooLateToBook)

	case errors.Is(err, createBooking.ErrInvalidTimeSlot):
		h.logger.Warn("POST /bookings - Off-grid start: time=%s", req.StartTime)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createBooking.ErrTooLateForDuration):
		h.logger.Warn("POST /bookings - Too late for duration: time=%s, holes=%d", req.StartTime, req.Holes)
		handlers.RespondBadRequest(w, msgTooLateForDuration)

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
	}
}
