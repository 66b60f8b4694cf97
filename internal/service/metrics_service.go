package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsService owns the Prometheus collectors for the API.
type MetricsService struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	dmsUploads      *prometheus.CounterVec
	importedRows    prometheus.Counter
}

func NewMetricsService(registry prometheus.Registerer) *MetricsService {
	s := &MetricsService{
		requestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pta_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pta_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dmsUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pta_dms_uploads_total",
			Help: "Document uploads to the DMS by outcome.",
		}, []string{"outcome"}),
		importedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pta_bulk_import_rows_total",
			Help: "Employee rows written by bulk imports.",
		}),
	}

	registry.MustRegister(s.requestCounter, s.requestDuration, s.dmsUploads, s.importedRows)

	return s
}

func (s *MetricsService) RecordRequest(method, path, status string, duration time.Duration) {
	s.requestCounter.WithLabelValues(method, path, status).Inc()
	s.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (s *MetricsService) RecordDMSUpload(outcome string) {
	s.dmsUploads.WithLabelValues(outcome).Inc()
}

func (s *MetricsService) RecordImportedRows(n int) {
	s.importedRows.Add(float64(n))
}
