package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// HTTPMeterName is the instrumentation scope of the HTTP instruments
const HTTPMeterName = "inventory-ledger/http"

// HTTPDurationBuckets are request latency bucket boundaries in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// HTTPMetrics counts requests and records their latency per method, route
// and status code. A nil or disabled provider yields a pass-through.
func HTTPMetrics(mp *telemetry.MeterProvider) (gin.HandlerFunc, error) {
	if mp == nil || !mp.IsEnabled() {
		return func(c *gin.Context) { c.Next() }, nil
	}
	meter := mp.Meter(HTTPMeterName)
	requests, err := telemetry.NewCounter(meter, "http.server.requests", "HTTP requests served", "{request}")
	if err != nil {
		return nil, err
	}
	duration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http.server.request.duration",
		Description: "HTTP request latency",
		Unit:        "s",
		Buckets:     HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.String("http.status_code", strconv.Itoa(c.Writer.Status())),
		}
		ctx := c.Request.Context()
		requests.Inc(ctx, attrs...)
		duration.RecordDuration(ctx, time.Since(start), attrs[:2]...)
	}, nil
}
