package list_waitlist

import (
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
)

const (
	msgInvalidDate = "некорректная дата"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/waitlist?date=
// Очередь и живые удержания даты, только для персонала.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /waitlist - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	entries, err := h.service.ListActive(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /waitlist - Failed to list entries: date=%s, error=%v", r.URL.Query().Get("date"), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /waitlist - Entries retrieved: date=%s, count=%d", r.URL.Query().Get("date"), len(entries))
	handlers.RespondJSON(w, http.StatusOK, FromDomainEntries(entries))
}
