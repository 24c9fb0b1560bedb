package update_operating_template

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/templates"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные шаблона"
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

// Handle PUT /api/v1/operating-template
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	var req handlers.OperatingTemplateDTO
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /operating-template - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.DecodeErrorMessage(err, msgInvalidRequestBody))
		return
	}

	tpl, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("PUT /operating-template - Failed to parse template: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.service.UpdateGlobal(r.Context(), tpl)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidTemplate):
			h.logger.Warn("PUT /operating-template - Invalid template: user_id=%d, error=%v", userID, err)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidData, map[string]interface{}{
				"reason": err.Error(),
			})

		default:
			h.logger.Error("PUT /operating-template - Failed to update template: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /operating-template - Template updated: user_id=%d, windows=%d", userID, len(result.PeakWindows))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainTemplate(result))
}
