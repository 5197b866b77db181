package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration *prometheus.HistogramVec
	DBPoolOpenConns *prometheus.GaugeVec
	DBPoolIdleConns *prometheus.GaugeVec
	DBPoolInUse     *prometheus.GaugeVec

	// Синхронизация календаря
	CalendarSyncRunsTotal  *prometheus.CounterVec
	CalendarSyncDatesTotal *prometheus.CounterVec
	CalendarSyncDuration   *prometheus.HistogramVec
}

// New создает и регистрирует метрики в default-регистре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		DBPoolOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBPoolIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBPoolInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		CalendarSyncRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_sync_runs_total",
			Help:        "Total number of external calendar sync runs",
			ConstLabels: constLabels,
		}, []string{"result"}),

		CalendarSyncDatesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_sync_dates_total",
			Help:        "Total number of blocked dates added/removed by calendar sync",
			ConstLabels: constLabels,
		}, []string{"op"}),

		CalendarSyncDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "calendar_sync_duration_seconds",
			Help:        "External calendar sync run duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest записывает метрики одного HTTP-запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// ObserveSyncRun записывает результат запуска синхронизации календаря
func (m *Metrics) ObserveSyncRun(result string, added, removed int, seconds float64) {
	m.CalendarSyncRunsTotal.WithLabelValues(result).Inc()
	m.CalendarSyncDuration.WithLabelValues(result).Observe(seconds)
	if added > 0 {
		m.CalendarSyncDatesTotal.WithLabelValues("added").Add(float64(added))
	}
	if removed > 0 {
		m.CalendarSyncDatesTotal.WithLabelValues("removed").Add(float64(removed))
	}
}
