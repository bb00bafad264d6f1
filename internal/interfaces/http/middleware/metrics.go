// Package middleware provides the gin middleware stack of the HTTP API.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/surgishop/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests gin could not route, so raw paths never
// become metric attributes.
const unmatchedRoute = "unmatched"

var responseSizeBuckets = []float64{128, 512, 1024, 4096, 16384, 65536, 262144, 1048576}

type requestInstruments struct {
	served   *telemetry.Counter
	latency  *telemetry.Histogram
	size     *telemetry.Histogram
	inFlight metric.Int64UpDownCounter
}

func (ri *requestInstruments) build(meter metric.Meter) error {
	var err error
	if ri.served, err = telemetry.NewCounter(meter, "http_server_request_total",
		"HTTP requests served, by route and status", "{request}"); err != nil {
		return err
	}
	if ri.latency, err = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "Time spent serving a request",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	}); err != nil {
		return err
	}
	if ri.size, err = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "Response body size",
		Unit:        "By",
		Boundaries:  responseSizeBuckets,
	}); err != nil {
		return err
	}
	ri.inFlight, err = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Requests currently being served"),
		metric.WithUnit("{request}"))
	return err
}

// statusClass folds a status code into 2xx, 4xx and so on.
func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// HTTPMetrics returns a middleware recording request count, latency and
// response size. A nil meter yields a pass-through middleware.
func HTTPMetrics(meter metric.Meter) (gin.HandlerFunc, error) {
	if meter == nil {
		return func(c *gin.Context) { c.Next() }, nil
	}
	ri := &requestInstruments{}
	if err := ri.build(meter); err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		began := time.Now()
		ri.inFlight.Add(ctx, 1)
		defer ri.inFlight.Add(ctx, -1)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		attrs := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
		}
		code := c.Writer.Status()
		ri.served.Inc(ctx, append(attrs,
			telemetry.AttrHTTPStatusCode.Int(code),
			attribute.String("http.status_class", statusClass(code)),
		)...)
		ri.latency.RecordDuration(ctx, time.Since(began), attrs...)
		if n := c.Writer.Size(); n > 0 {
			ri.size.Record(ctx, float64(n), attrs...)
		}
	}, nil
}
