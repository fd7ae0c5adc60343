package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	// RequestDuration tracks the duration of HTTP requests
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "community_http_request_duration_seconds",
			Help:    "Time spent processing HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	Reactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_reactions_total",
			Help: "Applied reaction transitions",
		},
		[]string{"subject", "action"},
	)

	Reports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "community_reports_total",
		Help: "Accepted post reports",
	})

	Deactivations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "community_post_deactivations_total",
		Help: "Posts hidden after reaching the report threshold",
	})

	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "community_post_views_total",
		Help: "Recorded post views",
	})

	// TransactionRetries counts replays of conflicting transactions
	TransactionRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_transaction_retries_total",
			Help: "Transactions replayed after a serialization conflict",
		},
		[]string{"operation"},
	)
)

// Middleware observes the latency of every routed request
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = strconv.Itoa(he.Code)
				} else {
					status = "error"
				}
			}
			RequestDuration.WithLabelValues(c.Request().Method, c.Path(), status).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Serve exposes /metrics on addr in the background
func Serve(addr string, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}
