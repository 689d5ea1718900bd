package reporter

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/agate/profiler-metrics-reporter/reporterconfig"
)

// Factory builds a reporter from a validated configuration and an injected
// logger.
type Factory func(conf *reporterconfig.Configuration, log *zap.Logger) (Reporter, error)

var (
	factoriesMu sync.RWMutex
	factories   = map[string]Factory{}
)

// Register makes a backend available under the given name. Backends register
// themselves from an init function; registering the same name twice panics.
func Register(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[name]; dup {
		panic(fmt.Sprintf("reporter: backend %q registered twice", name))
	}
	factories[name] = factory
}

// New constructs the named backend reporter.
func New(name string, conf *reporterconfig.Configuration, log *zap.Logger) (Reporter, error) {
	factoriesMu.RLock()
	factory, ok := factories[name]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("reporter: unknown backend %q (registered: %v)", name, Backends())
	}
	return factory(conf, log)
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
