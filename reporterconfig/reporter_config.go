// Package reporterconfig loads and validates the configuration shared by all
// backend reporters.
package reporterconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Arguments holds the backend specific key/value options from the
// configuration. It is treated as immutable after construction.
type Arguments map[string]string

// Get returns the value for key, or "" when the key is absent.
func (a Arguments) Get(key string) string { return a[key] }

// Lookup returns the value for key and whether it was present.
func (a Arguments) Lookup(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// Bool reads a boolean option leniently: an absent or malformed value reads
// as false rather than failing. This is a deliberate exception to the
// fail-fast validation applied to required options.
func (a Arguments) Bool(key string) bool {
	raw, ok := a[key]
	if !ok {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}

// Configuration is the validated input to every backend reporter. It is
// supplied once at construction and never mutated afterwards.
type Configuration struct {
	Server        string
	Port          int
	MetricsPrefix string
	Arguments     Arguments
}

// Parse loads a configuration file, applies REPORTER_* environment overrides
// and validates the result.
func Parse(configPath string) (*Configuration, error) {
	configBytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("can not read config file [%s]: %s", configPath, err)
	}

	var config Configuration
	if err := json.Unmarshal(configBytes, &config); err != nil {
		return nil, fmt.Errorf("can not parse config file %s: %s", configPath, err)
	}

	overrideWithEnvVar("REPORTER_SERVER", &config.Server)
	overrideWithEnvInt("REPORTER_PORT", &config.Port)
	overrideWithEnvVar("REPORTER_METRICSPREFIX", &config.MetricsPrefix)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the connection parameters every backend relies on.
func (c *Configuration) Validate() error {
	if c.Server == "" {
		return MissingOption("server")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return &Error{Option: "port", Reason: fmt.Sprintf("%d is not a valid port", c.Port)}
	}
	if c.MetricsPrefix == "" {
		return MissingOption("metricsPrefix")
	}
	return nil
}

func overrideWithEnvVar(name string, value *string) {
	envValue := os.Getenv(name)
	if envValue != "" {
		*value = envValue
	}
}

func overrideWithEnvInt(name string, value *int) {
	envValue := os.Getenv(name)
	if envValue != "" {
		tmpValue, err := strconv.Atoi(envValue)
		if err != nil {
			panic(err)
		}
		*value = tmpValue
	}
}
