package confirm_offer

import (
	"context"

	confirmOffer "github.com/m04kA/SMC-TeeTimeService/internal/usecase/confirm_offer"
)

type ConfirmOfferUseCase interface {
	Execute(ctx context.Context, req *confirmOffer.Request) (*confirmOffer.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
