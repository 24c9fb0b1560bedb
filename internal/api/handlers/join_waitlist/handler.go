package join_waitlist

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	joinWaitlist "github.com/m04kA/SMC-TeeTimeService/internal/usecase/join_waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры записи в лист ожидания"
	msgInvalidDate        = "дата в прошлом"
	msgInvalidRange       = "начало диапазона должно быть раньше конца"
	msgCourseClosed       = "поле закрыто в выбранную дату"
	msgUnknownPeakWindow  = "пиковое окно не найдено"
	msgOutsideWindow      = "диапазон выходит за пределы пикового окна"
	msgAlreadyQueued      = "вы уже стоите в листе ожидания этого окна"
)

type Handler struct {
	useCase JoinWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase JoinWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.DecodeErrorMessage(err, msgInvalidRequestBody))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /waitlist - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, joinWaitlist.ErrAlreadyQueued):
			h.logger.Warn("POST /waitlist - Already queued: user_id=%d, window=%s", userID, req.PeakWindowID)
			handlers.RespondConflict(w, msgAlreadyQueued)

		case errors.Is(err, joinWaitlist.ErrInvalidRange):
			h.logger.Warn("POST /waitlist - Invalid range: %s-%s", req.DesiredStart, req.DesiredEnd)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, joinWaitlist.ErrRangeOutsideWindow):
			h.logger.Warn("POST /waitlist - Range outside window: window=%s, %s-%s",
				req.PeakWindowID, req.DesiredStart, req.DesiredEnd)
			handlers.RespondBadRequest(w, msgOutsideWindow)

		case errors.Is(err, joinWaitlist.ErrUnknownPeakWindow):
			h.logger.Warn("POST /waitlist - Unknown peak window: %s", req.PeakWindowID)
			handlers.RespondNotFound(w, msgUnknownPeakWindow)

		case errors.Is(err, joinWaitlist.ErrCourseClosed):
			h.logger.Warn("POST /waitlist - Course closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgCourseClosed)

		case errors.Is(err, joinWaitlist.ErrInvalidDate):
			h.logger.Warn("POST /waitlist - Date in the past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, joinWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /waitlist - Failed to join waitlist: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Entry created: entry_id=%d, user_id=%d, window=%s",
		result.ID, userID, result.PeakWindowID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
