package notifier

import (
	"context"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
)

// LogNotifier пишет предложения в лог. Используется, когда брокер выключен в конфиге.
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает LogNotifier
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// EmitPromotionOffer логирует предложение
func (n *LogNotifier) EmitPromotionOffer(_ context.Context, entry *domain.WaitlistEntry, freed *domain.Booking) error {
	offer, err := newPromotionOffer(entry, freed)
	if err != nil {
		return err
	}
	n.log.Info("promotion offer: entry=%d user=%d date=%s start=%s holes=%d until=%s",
		offer.EntryID, offer.UserID, offer.Date, offer.StartTime, offer.Holes, offer.LockExpiry.Format("15:04"))
	return nil
}
