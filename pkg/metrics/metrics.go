package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Business
	BookingsCreated      *prometheus.CounterVec
	BookingConflicts     *prometheus.CounterVec
	WaitlistPromotions   *prometheus.CounterVec
	WaitlistExpired      *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	FeeQuotes            *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики в указанном registry (для тестов - prometheus.NewRegistry())
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "teetime_bookings_created_total",
			Help:        "Bookings created, by holes and source",
			ConstLabels: constLabels,
		}, []string{"holes", "source"}),
		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "teetime_booking_conflicts_total",
			Help:        "Rejected booking attempts, by reason",
			ConstLabels: constLabels,
		}, []string{"reason"}),
		WaitlistPromotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "teetime_waitlist_promotions_total",
			Help:        "Waitlist entries moved to notified",
			ConstLabels: constLabels,
		}, []string{"peak_window"}),
		WaitlistExpired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "teetime_waitlist_expired_total",
			Help:        "Waitlist offers that expired, by detection path",
			ConstLabels: constLabels,
		}, []string{"path"}),
		NotificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "teetime_notification_failures_total",
			Help:        "Promotion offers the gateway failed to accept",
			ConstLabels: constLabels,
		}, []string{"stage"}),
		FeeQuotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "teetime_fee_quotes_total",
			Help:        "Fee quotes calculated, by tier",
			ConstLabels: constLabels,
		}, []string{"tier"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingConflicts,
		m.WaitlistPromotions,
		m.WaitlistExpired,
		m.NotificationFailures,
		m.FeeQuotes,
	)

	return m
}
