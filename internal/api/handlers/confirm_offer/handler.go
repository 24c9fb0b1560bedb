package confirm_offer

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	"github.com/m04kA/SMC-TeeTimeService/internal/api/middleware"
	confirmOffer "github.com/m04kA/SMC-TeeTimeService/internal/usecase/confirm_offer"
)

const (
	msgInvalidEntryID  = "некорректный ID записи листа ожидания"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNotFound        = "запись листа ожидания не найдена"
	msgForbidden       = "доступ запрещен"
	msgOfferExpired    = "предложение истекло"
	msgSlotUnavailable = "предложенный слот больше недоступен"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase ConfirmOfferUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmOfferUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/{entryId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID, err := handlers.PathInt64(r, "entryId")
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/confirm - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /waitlist/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmOffer.Request{EntryID: entryID, UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, confirmOffer.ErrEntryNotFound):
			h.logger.Warn("POST /waitlist/{id}/confirm - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmOffer.ErrAccessDenied):
			h.logger.Warn("POST /waitlist/{id}/confirm - Access denied: entry_id=%d, user_id=%d", entryID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmOffer.ErrOfferExpired):
			h.logger.Warn("POST /waitlist/{id}/confirm - Offer expired: entry_id=%d", entryID)
			handlers.RespondError(w, http.StatusGone, msgOfferExpired)

		case errors.Is(err, confirmOffer.ErrSlotUnavailable):
			h.logger.Warn("POST /waitlist/{id}/confirm - Slot unavailable: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, confirmOffer.ErrInvalidInput):
			h.logger.Warn("POST /waitlist/{id}/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /waitlist/{id}/confirm - Failed to confirm offer: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/{id}/confirm - Offer confirmed: entry_id=%d, booking_id=%d",
		entryID, result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
