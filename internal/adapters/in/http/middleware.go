package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics receives one observation per served request.
type HTTPMetrics interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Observe records metrics and a log line for each request. Requests that
// match no route are labelled "unmatched".
func Observe(metrics HTTPMetrics, logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)

			status := c.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}
			elapsed := time.Since(started)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			if metrics != nil {
				metrics.ObserveHTTP(c.Request().Method, route, status, elapsed)
			}
			level := slog.LevelDebug
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.Log(c.Request().Context(), level, "request served",
				"method", c.Request().Method, "route", route, "status", status, "elapsed", elapsed)
			return err
		}
	}
}

// MetricsHandler serves the Prometheus exposition of g.
func MetricsHandler(g prometheus.Gatherer) echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
