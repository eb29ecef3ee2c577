package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys shared by the instruments.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrURLPath     = attribute.Key("url.path")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrDBOperation = attribute.Key("db.operation.name")
	AttrDBSystem    = attribute.Key("db.system.name")
)

// Values of AttrResult.
const (
	ResultSuccess     = "success"
	ResultError       = "error"
	ResultCircuitOpen = "circuit_open"
)

// pair is a latency histogram in seconds and a counter for one kind of work.
type pair struct {
	duration metric.Float64Histogram
	count    metric.Int64Counter
}

func (p pair) record(ctx context.Context, start time.Time, attrs []attribute.KeyValue) {
	set := metric.WithAttributes(attrs...)
	p.duration.Record(ctx, time.Since(start).Seconds(), set)
	p.count.Add(ctx, 1, set)
}

// Metrics records the three kinds of work the service does: serving HTTP
// requests, calling the libSQL primary, and touching the todos database.
// Every method is a no-op on a nil *Metrics.
type Metrics struct {
	server  pair
	primary pair
	store   pair
}

// NewMetrics registers the instruments on a meter named after the service.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	meter := mp.Meter(serviceName)
	var errs []error
	newPair := func(prefix, what, unit string) pair {
		d, err := meter.Float64Histogram(prefix+".duration",
			metric.WithDescription("Duration of "+what), metric.WithUnit("s"))
		errs = append(errs, err)
		c, err := meter.Int64Counter(prefix+".total",
			metric.WithDescription("Number of "+what), metric.WithUnit(unit))
		errs = append(errs, err)
		return pair{duration: d, count: c}
	}

	m := &Metrics{
		server:  newPair("http.server.request", "inbound HTTP requests", "{request}"),
		primary: newPair("http.client.request", "requests to the libSQL primary", "{request}"),
		store:   newPair("db.client.operation", "todos database operations", "{operation}"),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordServer observes one inbound request that began at start.
func (m *Metrics) RecordServer(ctx context.Context, start time.Time, attrs ...attribute.KeyValue) {
	if m != nil {
		m.server.record(ctx, start, attrs)
	}
}

// RecordPrimary observes one outbound call to the primary.
func (m *Metrics) RecordPrimary(ctx context.Context, start time.Time, attrs ...attribute.KeyValue) {
	if m != nil {
		m.primary.record(ctx, start, attrs)
	}
}

// RecordStore observes one store operation such as select, insert, or sync.
func (m *Metrics) RecordStore(ctx context.Context, start time.Time, attrs ...attribute.KeyValue) {
	if m != nil {
		m.store.record(ctx, start, attrs)
	}
}
