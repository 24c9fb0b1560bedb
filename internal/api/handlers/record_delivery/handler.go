package record_delivery

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/service/waitlist"
)

const (
	msgInvalidEntryID     = "некорректный ID записи листа ожидания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "запись листа ожидания не найдена"
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

// Handle POST /api/v1/waitlist/{entryId}/delivery
// Вызывается шлюзом уведомлений после попытки доставки.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID, err := handlers.PathInt64(r, "entryId")
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/delivery - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	var report DeliveryReport
	if err := handlers.DecodeJSON(r, &report); err != nil {
		h.logger.Warn("POST /waitlist/{id}/delivery - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.DecodeErrorMessage(err, msgInvalidRequestBody))
		return
	}

	if err := h.service.RecordDelivery(r.Context(), entryID, *report.Sent); err != nil {
		if errors.Is(err, waitlist.ErrEntryNotFound) {
			h.logger.Warn("POST /waitlist/{id}/delivery - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("POST /waitlist/{id}/delivery - Failed to record delivery: entry_id=%d, error=%v", entryID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /waitlist/{id}/delivery - Delivery recorded: entry_id=%d, sent=%t", entryID, *report.Sent)
	w.WriteHeader(http.StatusNoContent)
}
