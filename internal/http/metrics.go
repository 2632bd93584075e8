package http

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "taskweave_http_requests_total",
	Help: "HTTP requests by method, route, and status code.",
}, []string{"method", "route", "status"})

// requestMetrics counts requests per route. Routes are the registered
// patterns (e.g. /api/v1/tasks/:id), not raw paths, so cardinality
// stays bounded.
func requestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			httpRequests.WithLabelValues(
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
			).Inc()

			return err
		}
	}
}
