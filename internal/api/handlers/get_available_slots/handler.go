package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-TeeTimeService/internal/usecase/get_available_slots"
)

const (
	msgInvalidQuery    = "некорректные параметры: date (YYYY-MM-DD) обязателен, holes 9 или 18"
	msgInvalidDate     = "дата в прошлом"
	msgInvalidInput    = "некорректное количество лунок"
	msgInvalidTemplate = "шаблон работы поля на дату некорректен"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tee-times/available
// Query params: date (required, YYYY-MM-DD), holes (optional, 9 | 18, default 9)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, req, ok := h.load(w, r, "GET /tee-times/available")
	if !ok {
		return
	}

	h.logger.Info("GET /tee-times/available - Tee sheet retrieved: date=%s, slots_count=%d",
		r.URL.Query().Get("date"), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, req.Holes))
}

// HandlePeakWindows GET /api/v1/peak-windows/status?date=
func (h *Handler) HandlePeakWindows(w http.ResponseWriter, r *http.Request) {
	result, _, ok := h.load(w, r, "GET /peak-windows/status")
	if !ok {
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromWindowStatuses(result.PeakWindows))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, route string) (*getAvailableSlots.Response, *getAvailableSlots.Request, bool) {
	userID, _ := middleware.GetUserID(r.Context())

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(userID, query.Get("date"), query.Get("holes"))
	if err != nil {
		h.logger.Warn("%s - Invalid query: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return nil, nil, false
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("%s - Date in the past: %s", route, query.Get("date"))
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrInvalidTemplate):
			h.logger.Error("%s - Invalid template: date=%s, error=%v", route, query.Get("date"), err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTemplate)

		default:
			h.logger.Error("%s - Failed to get tee sheet: date=%s, error=%v", route, query.Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return nil, nil, false
	}

	return result, useCaseReq, true
}
