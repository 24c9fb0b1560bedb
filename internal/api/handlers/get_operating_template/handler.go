package get_operating_template

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/templates"
)

const (
	msgInvalidDate     = "некорректная дата"
	msgNotConfigured   = "шаблон работы поля не настроен"
	msgInvalidTemplate = "шаблон работы поля на эту дату некорректен"
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

// Handle GET /api/v1/operating-template
// Query params: date (опционально). Без даты возвращается глобальный шаблон,
// с датой - шаблон с наложенным переопределением календаря.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")

	if dateStr == "" {
		tpl, err := h.service.GetGlobal(r.Context())
		if err != nil {
			h.respondError(w, err, "global")
			return
		}
		h.logger.Info("GET /operating-template - Global template retrieved")
		handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainTemplate(tpl))
		return
	}

	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /operating-template - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.service.GetOperatingTemplate(r.Context(), date)
	if err != nil {
		h.respondError(w, err, dateStr)
		return
	}

	h.logger.Info("GET /operating-template - Template retrieved: date=%s, status=%s", dateStr, day.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainDaySchedule(day))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, scope string) {
	switch {
	case errors.Is(err, templates.ErrTemplateNotConfigured):
		h.logger.Warn("GET /operating-template - Template not configured")
		handlers.RespondNotFound(w, msgNotConfigured)

	case errors.Is(err, templates.ErrInvalidTemplate):
		h.logger.Error("GET /operating-template - Invalid template: date=%s, error=%v", scope, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTemplate)

	default:
		h.logger.Error("GET /operating-template - Failed to get template: date=%s, error=%v", scope, err)
		handlers.RespondInternalError(w)
	}
}
