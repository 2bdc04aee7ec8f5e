package telemetry

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabels(t *testing.T) {
	pairs := sanitizeLabels(map[string]string{
		"Route":      "/api/v1/movements",
		"store-id":   "s1",
		"request_id": "drop-me",
		"method":     "",
		"operation":  strings.Repeat("x", 200),
		"!!":         "no key left",
	})

	assert.Equal(t, []string{
		"operation", strings.Repeat("x", MaxLabelValueLength),
		"route", "/api/v1/movements",
		"store_id", "s1",
	}, pairs)
}

func TestWithProfilingLabels(t *testing.T) {
	var route, store string
	var ok bool
	WithProfilingLabels(context.Background(), HTTPRequestLabels("/api/v1/reservations", "POST", "s1"), func(ctx context.Context) {
		route, ok = pprof.Label(ctx, ProfilingLabelRoute)
		store, _ = pprof.Label(ctx, ProfilingLabelStoreID)
	})
	assert.True(t, ok)
	assert.Equal(t, "/api/v1/reservations", route)
	assert.Equal(t, "s1", store)

	called := false
	WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}
