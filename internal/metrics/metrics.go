package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const namespace = "wallet"

// Metrics holds the service collectors on their own registry
type Metrics struct {
	Registry *prometheus.Registry

	rpcRequestsTotal     *prometheus.CounterVec
	rpcRequestDuration   *prometheus.HistogramVec
	validationFailures   *prometheus.CounterVec
	intentsDispatched    *prometheus.CounterVec
	usernameLookupsTotal *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		rpcRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "grpc",
				Name:      "requests_total",
				Help:      "Total number of gRPC requests",
			},
			[]string{"method", "code"},
		),
		rpcRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "grpc",
				Name:      "request_duration_seconds",
				Help:      "gRPC request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "forms",
				Name:      "validation_failures_total",
				Help:      "Form validation failures by field and kind",
			},
			[]string{"field", "kind"},
		),
		intentsDispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "forms",
				Name:      "intents_dispatched_total",
				Help:      "Transfer intents handed to the signing service",
			},
			[]string{"action"},
		),
		usernameLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "forms",
				Name:      "username_checks_total",
				Help:      "Username validations by outcome",
			},
			[]string{"result"},
		),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequestsTotal,
		m.rpcRequestDuration,
		m.validationFailures,
		m.intentsDispatched,
		m.usernameLookupsTotal,
	)

	return m
}

// ObserveRequest records one finished gRPC call
func (m *Metrics) ObserveRequest(method, code string, duration time.Duration) {
	m.rpcRequestsTotal.WithLabelValues(method, code).Inc()
	m.rpcRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ValidationFailed records a field validation failure
func (m *Metrics) ValidationFailed(field, kind string) {
	m.validationFailures.WithLabelValues(field, kind).Inc()
}

// IntentDispatched records an intent handed to the signing service
func (m *Metrics) IntentDispatched(action string) {
	m.intentsDispatched.WithLabelValues(action).Inc()
}

// UsernameChecked records a username validation outcome ("ok", "invalid" or "error")
func (m *Metrics) UsernameChecked(result string) {
	m.usernameLookupsTotal.WithLabelValues(result).Inc()
}

// Server exposes /metrics over HTTP
type Server struct {
	srv    *http.Server
	logger logrus.FieldLogger
}

// StartServer serves the registry on addr in the background
func StartServer(addr string, m *Metrics, logger logrus.FieldLogger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}

	go func() {
		logger.Infof("metrics server listening on %s", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("metrics server failed: %v", err)
		}
	}()

	return s
}

// Stop shuts the metrics server down
func (s *Server) Stop(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("metrics server stopped")
	return nil
}
