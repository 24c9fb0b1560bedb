package metrics

import "strconv"

// Методы ниже безопасны для nil-получателя: при выключенных метриках
// сервисы получают nil и ничего не записывают.

// BookingCreated учитывает созданное бронирование
func (m *Metrics) BookingCreated(holes int, source string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(strconv.Itoa(holes), source).Inc()
}

// BookingRejected учитывает отказ в бронировании
func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(reason).Inc()
}

// WaitlistPromoted учитывает переход записи листа ожидания в notified
func (m *Metrics) WaitlistPromoted(peakWindowID string) {
	if m == nil {
		return
	}
	m.WaitlistPromotions.WithLabelValues(peakWindowID).Inc()
}

// OffersExpired учитывает истекшие предложения
func (m *Metrics) OffersExpired(path string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.WaitlistExpired.WithLabelValues(path).Add(float64(n))
}

// NotificationFailed учитывает сбой доставки предложения
func (m *Metrics) NotificationFailed(stage string) {
	if m == nil {
		return
	}
	m.NotificationFailures.WithLabelValues(stage).Inc()
}

// FeeQuoted учитывает расчет стоимости
func (m *Metrics) FeeQuoted(tier string) {
	if m == nil {
		return
	}
	m.FeeQuotes.WithLabelValues(tier).Inc()
}
