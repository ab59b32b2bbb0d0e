package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Все методы записи безопасны для nil-получателя: при выключенных метриках
// сервисы получают (*Metrics)(nil) и ничего не пишут
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge

	PaymentsTotal               *prometheus.CounterVec
	PaymentInconsistenciesTotal prometheus.Counter
	AggregateConflictsTotal     *prometheus.CounterVec
	BookingTransitionsTotal     *prometheus.CounterVec
}

// New регистрирует метрики в глобальном registry (его отдаёт promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: labels,
		}, []string{"operation", "status"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),

		PaymentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "payments_total",
			Help:        "Payment attempts by method and result",
			ConstLabels: labels,
		}, []string{"method", "result"}),
		PaymentInconsistenciesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "payment_inconsistencies_total",
			Help:        "Payments captured without a persisted booking",
			ConstLabels: labels,
		}),
		AggregateConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "rating_aggregate_conflicts_total",
			Help:        "Serialization conflicts while updating vendor rating aggregates",
			ConstLabels: labels,
		}, []string{"operation"}),
		BookingTransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking status transitions",
			ConstLabels: labels,
		}, []string{"from", "to"}),
	}
}

// ObservePayment учитывает попытку оплаты
func (m *Metrics) ObservePayment(method, result string) {
	if m == nil {
		return
	}
	m.PaymentsTotal.WithLabelValues(method, result).Inc()
}

// IncPaymentInconsistency учитывает оплату без сохранённого бронирования
func (m *Metrics) IncPaymentInconsistency() {
	if m == nil {
		return
	}
	m.PaymentInconsistenciesTotal.Inc()
}

// IncAggregateConflict учитывает конфликт при обновлении рейтинга
func (m *Metrics) IncAggregateConflict(operation string) {
	if m == nil {
		return
	}
	m.AggregateConflictsTotal.WithLabelValues(operation).Inc()
}

// IncBookingTransition учитывает смену статуса бронирования
func (m *Metrics) IncBookingTransition(from, to string) {
	if m == nil {
		return
	}
	m.BookingTransitionsTotal.WithLabelValues(from, to).Inc()
}

// ObserveDBQuery учитывает запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// ObserveHTTPRequest учитывает HTTP запрос. path - шаблон маршрута, а не фактический URL
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}
