package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// Provider defaults to the global tracer provider
	Provider trace.TracerProvider
}

// Tracing starts a server span per request with otelgin. Span names follow
// the matched route, e.g. "GET /api/v1/movements/:id".
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	var opts []otelgin.Option
	if cfg.Provider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.Provider))
	}
	return otelgin.Middleware(cfg.ServiceName, opts...)
}

// SpanAttributes tags the request span with the request id, the actor and
// the store path parameter. It must run after Tracing and Authenticate.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			attrs := make([]attribute.KeyValue, 0, 3)
			if id := GetRequestID(c); id != "" {
				attrs = append(attrs, attribute.String("request_id", id))
			}
			if actor := GetActorID(c); actor != "" {
				attrs = append(attrs, attribute.String("actor_id", actor))
			}
			if storeID := c.Param("storeId"); storeID != "" {
				attrs = append(attrs, attribute.String(telemetry.SpanAttrStoreID, storeID))
			}
			span.SetAttributes(attrs...)
		}
		c.Next()
	}
}
