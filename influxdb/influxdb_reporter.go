// Package influxdb reports gauge batches to an InfluxDB 1.x server over one
// long lived client handle.
package influxdb

import (
	"fmt"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agate/profiler-metrics-reporter/reporter"
	"github.com/agate/profiler-metrics-reporter/reporterconfig"
	"github.com/agate/profiler-metrics-reporter/tagutil"
)

// ValueColumn is the field name carried by every measurement point.
const ValueColumn = "value"

// BackendName is the name this reporter registers under.
const BackendName = "influxdb"

// Backend specific configuration options.
const (
	UsernameArg   = "username"
	PasswordArg   = "password"
	DatabaseArg   = "database"
	TagMappingArg = "tagMapping"
	UseHTTPSArg   = "useHttps"
)

func init() {
	reporter.Register(BackendName, func(conf *reporterconfig.Configuration, log *zap.Logger) (reporter.Reporter, error) {
		return New(conf, log)
	})
}

// Reporter writes gauge batches to InfluxDB. The client handle is created
// exactly once during construction and never replaced.
type Reporter struct {
	client   client.Client
	username string
	password string
	database string
	useHTTPS bool
	tags     tagutil.TagSet
	log      *zap.Logger
}

// New validates the backend arguments, derives the tag set and creates the
// client handle. Any failure leaves no usable reporter behind.
func New(conf *reporterconfig.Configuration, log *zap.Logger) (*Reporter, error) {
	r := &Reporter{log: log}
	if err := r.handleArguments(conf); err != nil {
		return nil, err
	}

	// The tag mapping must align segment for segment with the metrics prefix.
	tags, err := tagutil.Derive(conf.Arguments.Get(TagMappingArg), conf.MetricsPrefix)
	if err != nil {
		return nil, err
	}
	r.tags = tags

	if err := r.createClient(conf.Server, conf.Port, conf.MetricsPrefix); err != nil {
		return nil, err
	}
	return r, nil
}

// handleArguments extracts and validates the backend specific options. The
// password is masked in the argument log line and never logged elsewhere.
func (r *Reporter) handleArguments(conf *reporterconfig.Configuration) error {
	args := conf.Arguments
	r.username = args.Get(UsernameArg)
	r.password = args.Get(PasswordArg)
	r.database = args.Get(DatabaseArg)
	r.useHTTPS = args.Bool(UseHTTPSArg)

	if ce := r.log.Check(zapcore.InfoLevel, "received reporter arguments"); ce != nil {
		ce.Write(
			zap.String(UsernameArg, r.username),
			zap.String(PasswordArg, "XXXXX"),
			zap.String(DatabaseArg, r.database),
			zap.String(TagMappingArg, args.Get(TagMappingArg)),
			zap.Bool(UseHTTPSArg, r.useHTTPS),
		)
	}

	if r.username == "" {
		return reporterconfig.MissingOption(UsernameArg)
	}
	if r.password == "" {
		return reporterconfig.MissingOption(PasswordArg)
	}
	if r.database == "" {
		return reporterconfig.MissingOption(DatabaseArg)
	}
	return nil
}

// createClient resolves the server URL and builds the client handle. No
// connection is attempted until the first write.
func (r *Reporter) createClient(server string, port int, prefix string) error {
	url := r.ResolveURL(server, port)
	if ce := r.log.Check(zapcore.InfoLevel, "connecting to InfluxDB"); ce != nil {
		ce.Write(zap.String("url", url))
	}

	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:     url,
		Username: r.username,
		Password: r.password,
	})
	if err != nil {
		return errors.Wrap(err, "creating InfluxDB client")
	}
	r.client = c
	return nil
}

// ResolveURL builds the server URL. The scheme is https only when the
// useHttps option parsed true.
func (r *Reporter) ResolveURL(server string, port int) string {
	protocol := "http"
	if r.useHTTPS {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s:%d", protocol, server, port)
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

// RecordGaugeValues writes one point per gauge in a single atomic batch.
// Every point carries the same timestamp snapshot and the reporter's full
// tag set. Transport errors propagate to the caller; there is no retry.
func (r *Reporter) RecordGaugeValues(gauges []reporter.Sample) error {
	now := time.Now()
	batch, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database:  r.database,
		Precision: "ms",
	})
	if err != nil {
		return errors.Wrap(err, "building batch")
	}

	for _, gauge := range gauges {
		point, err := constructPoint(now, gauge, r.tags)
		if err != nil {
			return errors.Wrapf(err, "building point %q", gauge.Name)
		}
		batch.AddPoint(point)
	}

	return errors.Wrap(r.client.Write(batch), "writing batch")
}

// constructPoint builds one timestamped, tagged measurement point with the
// single canonical value field.
func constructPoint(ts time.Time, gauge reporter.Sample, tags tagutil.TagSet) (*client.Point, error) {
	fields := map[string]interface{}{ValueColumn: gauge.Value.Field()}
	return client.NewPoint(gauge.Name, tags.Map(), fields, ts)
}

// EmitBounds returns false: InfluxDB has a rich query language that computes
// ranges natively, so min/max bound metrics would be redundant writes.
func (r *Reporter) EmitBounds() bool { return false }

// Close releases the client handle.
func (r *Reporter) Close() error { return r.client.Close() }
