// Package statsd reports gauges to a statsd agent over UDP.
package statsd

import (
	"fmt"

	dogstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agate/profiler-metrics-reporter/reporter"
	"github.com/agate/profiler-metrics-reporter/reporterconfig"
)

// BackendName is the name this reporter registers under.
const BackendName = "statsd"

func init() {
	reporter.Register(BackendName, func(conf *reporterconfig.Configuration, log *zap.Logger) (reporter.Reporter, error) {
		return New(conf, log)
	})
}

// Reporter ships gauges to statsd. statsd cannot answer range queries, so
// callers are asked to emit min/max bound metrics themselves.
type Reporter struct {
	client *dogstatsd.Client
	log    *zap.Logger
}

// New creates the statsd client. The metrics prefix becomes the client
// namespace; this backend takes no further arguments.
func New(conf *reporterconfig.Configuration, log *zap.Logger) (*Reporter, error) {
	address := fmt.Sprintf("%s:%d", conf.Server, conf.Port)
	if ce := log.Check(zapcore.InfoLevel, "connecting to statsd"); ce != nil {
		ce.Write(zap.String("address", address), zap.String("namespace", conf.MetricsPrefix))
	}

	c, err := dogstatsd.New(address,
		dogstatsd.WithNamespace(conf.MetricsPrefix+"."),
		dogstatsd.WithoutTelemetry(),
		dogstatsd.WithoutClientSideAggregation(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "creating statsd client")
	}
	return &Reporter{client: c, log: log}, nil
}

// RecordGaugeInt64 reports a single integer gauge as a one entry batch.
func (r *Reporter) RecordGaugeInt64(name string, value int64) error {
	return r.RecordGaugeValues([]reporter.Sample{{Name: name, Value: reporter.Int64(value)}})
}

// RecordGaugeFloat64 reports a single floating point gauge as a one entry
// batch.
func (r *Reporter) RecordGaugeFloat64(name string, value float64) error {
	return r.RecordGaugeValues([]reporter.Sample{{Name: name, Value: reporter.Float64(value)}})
}

// RecordGaugeValues sends one gauge datagram per sample. statsd has no batch
// write, so the gauges go out individually and the first failure stops the
// call.
func (r *Reporter) RecordGaugeValues(gauges []reporter.Sample) error {
	for _, gauge := range gauges {
		if err := r.client.Gauge(gauge.Name, gauge.Value.AsFloat64(), nil, 1); err != nil {
			return errors.Wrapf(err, "sending gauge %q", gauge.Name)
		}
	}
	return nil
}

// EmitBounds returns true: statsd has no native range queries, so min/max
// bound metrics carry information the backend cannot recover on its own.
func (r *Reporter) EmitBounds() bool { return true }

// Close flushes buffered datagrams and releases the socket.
func (r *Reporter) Close() error { return r.client.Close() }
