package record_delivery

import "context"

type WaitlistService interface {
	RecordDelivery(ctx context.Context, id int64, sent bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
