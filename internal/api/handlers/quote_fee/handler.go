package quote_fee

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
	quoteFee "github.com/m04kA/SMC-TeeTimeService/internal/usecase/quote_fee"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры расчета"
	msgUnknownTier        = "неизвестный уровень игрока"
	msgUnknownRatio       = "неизвестное соотношение кэдди"
	msgMissingHoleBucket  = "в тарифной сетке нет цены для этого раунда"
	msgNoActiveRates      = "нет активной тарифной сетки"
)

type Handler struct {
	useCase QuoteFeeUseCase
	logger  Logger
}

func NewHandler(useCase QuoteFeeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.DecodeErrorMessage(err, msgInvalidRequestBody))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteFee.ErrUnknownTier):
			h.logger.Warn("POST /quotes - Unknown tier: %s", req.Tier)
			handlers.RespondBadRequest(w, msgUnknownTier)

		case errors.Is(err, quoteFee.ErrUnknownRatio):
			h.logger.Warn("POST /quotes - Unknown caddy ratio: %s", req.CaddyRatio)
			handlers.RespondBadRequest(w, msgUnknownRatio)

		case errors.Is(err, quoteFee.ErrMissingHoleBucket):
			h.logger.Error("POST /quotes - Rate config has no bucket: tier=%s, holes=%d, error=%v", req.Tier, req.Holes, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMissingHoleBucket)

		case errors.Is(err, quoteFee.ErrNoActiveRateConfig):
			h.logger.Error("POST /quotes - No active rate config")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNoActiveRates)

		case errors.Is(err, quoteFee.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /quotes - Failed to quote fee: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Fee quoted: date=%s, tier=%s, holes=%d, total=%d",
		req.Date, req.Tier, req.Holes, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
