package rate_configs

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/rates"
)

const (
	msgInvalidID          = "некорректный ID тарифной сетки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownAction      = "неизвестное действие"
	msgNotFound           = "тарифная сетка не найдена"
	msgNoActive           = "нет активной тарифной сетки"
	msgInvalidRates       = "некорректная тарифная сетка"
	msgIncomplete         = "тарифная сетка не покрывает обязательные уровни и соотношения"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgNotEditable        = "изменять можно только черновик"
)

type transitionFunc func(ctx context.Context, id int64, actor int64) (*domain.RateConfig, error)

type Handler struct {
	service RateService
	logger  Logger
}

func NewHandler(service RateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleGetActive GET /api/v1/rate-configs/active
func (h *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetActive(r.Context())
	if err != nil {
		h.respondError(w, "GET /rate-configs/active", err)
		return
	}

	h.logger.Info("GET /rate-configs/active - Active config retrieved: id=%d, version=%d", cfg.ID, cfg.VersionNumber)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(cfg))
}

// HandleGet GET /api/v1/rate-configs/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /rate-configs/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	cfg, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /rate-configs/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(cfg))
}

// HandleList GET /api/v1/rate-configs
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	configs, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /rate-configs", err)
		return
	}

	h.logger.Info("GET /rate-configs - Configs retrieved: count=%d", len(configs))
	handlers.RespondJSON(w, http.StatusOK, FromDomainList(configs))
}

// HandleCreate POST /api/v1/rate-configs
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req RateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rate-configs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.DecodeErrorMessage(err, msgInvalidRequestBody))
		return
	}

	cfg, err := h.service.CreateDraft(r.Context(), req.ToDomain(), userID)
	if err != nil {
		h.respondError(w, "POST /rate-configs", err)
		return
	}

	h.logger.Info("POST /rate-configs - Draft created: id=%d, version=%d, user_id=%d", cfg.ID, cfg.VersionNumber, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(cfg))
}

// HandleUpdate PUT /api/v1/rate-configs/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /rate-configs/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req RateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rate-configs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.DecodeErrorMessage(err, msgInvalidRequestBody))
		return
	}

	cfg, err := h.service.UpdateDraft(r.Context(), id, req.ToDomain())
	if err != nil {
		h.respondError(w, "PUT /rate-configs/{id}", err)
		return
	}

	h.logger.Info("PUT /rate-configs/{id} - Draft updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(cfg))
}

// HandleTransition POST /api/v1/rate-configs/{id}/{action}
// action: submit, approve, reject, activate
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /rate-configs/{id}/{action} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	action := mux.Vars(r)["action"]
	transition, ok := h.transitions()[action]
	if !ok {
		h.logger.Warn("POST /rate-configs/{id}/{action} - Unknown action: %s", action)
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	cfg, err := transition(r.Context(), id, userID)
	if err != nil {
		h.respondError(w, "POST /rate-configs/{id}/"+action, err)
		return
	}

	h.logger.Info("POST /rate-configs/{id}/%s - Config id=%d is now %s, user_id=%d", action, id, cfg.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(cfg))
}

func (h *Handler) transitions() map[string]transitionFunc {
	return map[string]transitionFunc{
		"submit":   h.service.Submit,
		"approve":  h.service.Approve,
		"reject":   h.service.Reject,
		"activate": h.service.Activate,
	}
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, rates.ErrRateConfigNotFound):
		h.logger.Warn("%s - Config not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, rates.ErrNoActiveRateConfig):
		h.logger.Warn("%s - No active config", route)
		handlers.RespondNotFound(w, msgNoActive)

	case errors.Is(err, rates.ErrIncompleteRateConfig):
		h.logger.Warn("%s - Incomplete config: %v", route, err)
		handlers.RespondErrorWithDetails(w, http.StatusUnprocessableEntity, msgIncomplete, map[string]interface{}{
			"reason": err.Error(),
		})

	case errors.Is(err, rates.ErrInvalidRateConfig), errors.Is(err, rates.ErrPlatinumRateMismatch):
		h.logger.Warn("%s - Invalid config: %v", route, err)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidRates, map[string]interface{}{
			"reason": err.Error(),
		})

	case errors.Is(err, rates.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, rates.ErrNotEditable):
		h.logger.Warn("%s - Not editable: %v", route, err)
		handlers.RespondConflict(w, msgNotEditable)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
