package quote_fee

import (
	"context"

	quoteFee "github.com/m04kA/SMC-TeeTimeService/internal/usecase/quote_fee"
)

type QuoteFeeUseCase interface {
	Execute(ctx context.Context, req *quoteFee.Request) (*quoteFee.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
