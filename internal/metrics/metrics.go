package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"casex/internal/logger"
)

// Metrics for monitoring
var (
	CasesRun = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casex_cases_total",
		Help: "The total number of executed cases by outcome",
	}, []string{"method", "outcome"})

	CaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "casex_case_duration_seconds",
		Help:    "Time taken to run a single case",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs upwards
	}, []string{"method"})

	SuitesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casex_suites_built_total",
		Help: "The total number of suites expanded from fixtures",
	})

	BuildErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casex_build_errors_total",
		Help: "Fixtures that could not be expanded, by reason",
	}, []string{"reason"})

	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "casex_active_workers",
		Help: "The number of workers currently running cases",
	})
)

// ObserveCase records one finished case.
func ObserveCase(method, outcome string, d time.Duration) {
	CasesRun.WithLabelValues(method, outcome).Inc()
	CaseDuration.WithLabelValues(method).Observe(d.Seconds())
}

// Server exposes the default registry on /metrics.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Serve starts the metrics endpoint on addr in the background. Errors from
// the background server are logged to log.
func Serve(addr string, log *logger.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return start(ln, log), nil
}

func start(ln net.Listener, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped", zap.String("addr", ln.Addr().String()))
		}
	}()
	return s
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
