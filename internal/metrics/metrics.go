package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for handled requests and employee lifecycle events,
// and histograms for request and database query duration.
type Metrics struct {
	Requests                 *prometheus.CounterVec
	RequestDuration          *prometheus.HistogramVec
	EmployeesCreated         prometheus.Counter
	EmployeesDeleted         prometheus.Counter
	DuplicateEmailRejections prometheus.Counter
	DBQueryDuration          *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		EmployeesCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hestia_employees_created_total",
			Help: "Total number of employees created.",
		}),
		EmployeesDeleted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hestia_employees_deleted_total",
			Help: "Total number of delete requests served.",
		}),
		DuplicateEmailRejections: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "hestia_duplicate_email_rejections_total",
			Help: "Total number of employee creations rejected because the email was taken.",
		}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'find_by_id', 'save_employee'
	}

	return metrics
}

// ObserveQuery records the time elapsed since start for the given query type.
// Call it deferred: defer m.ObserveQuery("find_all", time.Now()).
func (m *Metrics) ObserveQuery(queryType string, start time.Time) {
	m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}
