package calendar_overrides

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/templates"
)

const (
	msgInvalidDate        = "некорректная дата"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOverride    = "некорректное переопределение даты"
	msgNotConfigured      = "шаблон работы поля не настроен"
	msgNotFound           = "переопределение для даты не найдено"
)

type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleUpsert PUT /api/v1/calendar-overrides/{date}
func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("PUT /calendar-overrides/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req OverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendar-overrides/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.DecodeErrorMessage(err, msgInvalidRequestBody))
		return
	}

	override, err := req.ToDomain(date)
	if err != nil {
		h.logger.Warn("PUT /calendar-overrides/{date} - Failed to parse override: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOverride)
		return
	}

	day, err := h.service.UpsertOverride(r.Context(), override)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidOverride), errors.Is(err, templates.ErrInvalidTemplate):
			h.logger.Warn("PUT /calendar-overrides/{date} - Invalid override: date=%s, error=%v", dateStr, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidOverride, map[string]interface{}{
				"reason": err.Error(),
			})

		case errors.Is(err, templates.ErrTemplateNotConfigured):
			h.logger.Warn("PUT /calendar-overrides/{date} - Global template not configured")
			handlers.RespondConflict(w, msgNotConfigured)

		default:
			h.logger.Error("PUT /calendar-overrides/{date} - Failed to save override: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /calendar-overrides/{date} - Override saved: date=%s, status=%s", dateStr, day.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainDaySchedule(day))
}

// HandleDelete DELETE /api/v1/calendar-overrides/{date}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("DELETE /calendar-overrides/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), date); err != nil {
		if errors.Is(err, templates.ErrOverrideNotFound) {
			h.logger.Warn("DELETE /calendar-overrides/{date} - Override not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /calendar-overrides/{date} - Failed to delete override: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /calendar-overrides/{date} - Override deleted: date=%s", dateStr)
	w.WriteHeader(http.StatusNoContent)
}

// HandleList GET /api/v1/calendar-overrides?from=&to=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, err := handlers.ParseDate(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /calendar-overrides - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.ParseDate(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /calendar-overrides - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	overrides, err := h.service.ListOverrides(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidOverride) {
			h.logger.Warn("GET /calendar-overrides - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /calendar-overrides - Failed to list overrides: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar-overrides - Overrides retrieved: count=%d", len(overrides))
	handlers.RespondJSON(w, http.StatusOK, FromDomainOverrides(overrides))
}
