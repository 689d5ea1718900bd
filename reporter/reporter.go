// Package reporter defines the contract every metrics backend implements and
// the registry through which a profiling agent selects one by name.
package reporter

// Reporter ships gauge samples to a time series backend.
//
// Implementations are constructed once from a validated configuration, own
// their backend client handle for their whole lifetime, and perform one
// synchronous write per RecordGaugeValues call. No retry, buffering or
// locking happens at this layer; callers that report from multiple
// goroutines must either rely on a client handle that tolerates concurrent
// use or serialize their calls.
type Reporter interface {
	// RecordGaugeInt64 reports a single integer gauge. It is equivalent to
	// calling RecordGaugeValues with a one entry batch.
	RecordGaugeInt64(name string, value int64) error

	// RecordGaugeFloat64 reports a single floating point gauge. It is
	// equivalent to calling RecordGaugeValues with a one entry batch.
	RecordGaugeFloat64(name string, value float64) error

	// RecordGaugeValues reports a batch of gauges in a single write sharing
	// one timestamp snapshot. The call blocks until the backend acknowledges
	// the batch or the transport fails; this layer never applies a batch
	// partially.
	RecordGaugeValues(gauges []Sample) error

	// EmitBounds reports whether the caller should additionally emit min/max
	// bound metrics. Backends with native range queries return false.
	EmitBounds() bool

	// Close releases the backend client handle.
	Close() error
}
