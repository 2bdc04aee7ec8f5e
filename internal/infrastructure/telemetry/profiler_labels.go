package telemetry

import (
	"context"
	"slices"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelRoute     = "route"
	ProfilingLabelMethod    = "method"
	ProfilingLabelStoreID   = "store_id"
	ProfilingLabelOperation = "operation"
)

// MaxLabelValueLength bounds label values to keep profile series small
const MaxLabelValueLength = 128

// highCardinalityLabels are dropped from profiling labels.
var highCardinalityLabels = []string{"request_id", "trace_id", "span_id", "order_id", "actor_id", "correlation_id"}

// WithProfilingLabels runs fn with labels attached to its CPU samples. Empty
// and high-cardinality labels are dropped.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// HTTPRequestLabels returns the labels attached to an API request.
func HTTPRequestLabels(route, method, storeID string) map[string]string {
	return map[string]string{
		ProfilingLabelRoute:   route,
		ProfilingLabelMethod:  method,
		ProfilingLabelStoreID: storeID,
	}
}

// sanitizeLabels returns key/value pairs sorted by key.
func sanitizeLabels(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, k := range keys {
		v := labels[k]
		key := sanitizeLabelKey(k)
		if key == "" || v == "" || slices.Contains(highCardinalityLabels, key) {
			continue
		}
		if len(v) > MaxLabelValueLength {
			v = v[:MaxLabelValueLength]
		}
		pairs = append(pairs, key, v)
	}
	return pairs
}

func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	var b strings.Builder
	for _, c := range key {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		case c == ' ', c == '-':
			b.WriteByte('_')
		}
	}
	return b.String()
}
