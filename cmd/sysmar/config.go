package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/NVIDIA/collector-sdk/pkg/collector"
	"github.com/NVIDIA/collector-sdk/pkg/errors"
	"github.com/NVIDIA/collector-sdk/pkg/proc"
	"github.com/NVIDIA/collector-sdk/pkg/protocol"
)

const (
	name = "sysmar"

	// envConfig names a YAML input file used instead of stdin, for local runs.
	envConfig = "SYSMAR_CONFIG"
	// localConfig is picked up from the executable's directory when present.
	localConfig = "sysmar.yaml"

	defaultInterval = time.Minute
)

// config is the "config" object of the injected input. The collect
// entrypoint exports it back with LastRun updated.
type config struct {
	// Source overrides the host name stamped on records.
	Source string `json:"source,omitempty"`
	// Units are the systemd units to report.
	Units []string `json:"units,omitempty"`
	// Processes that must be running.
	Processes []string `json:"processes,omitempty"`
	// Checks maps check names to shell commands.
	Checks map[string]string `json:"checks,omitempty"`
	// MinAvailableMemory is the available memory ratio that raises a warning.
	MinAvailableMemory *float64 `json:"min_available_memory,omitempty"`
	// Interval is the carousel cycle, e.g. "5m".
	Interval string `json:"interval,omitempty"`
	// Collectors selects collectors by name: literals, /re/ or !/re/.
	Collectors []string `json:"collectors,omitempty"`
	// Exclude drops metrics whose name matches any of these expressions.
	Exclude []string `json:"exclude,omitempty"`
	// LastRun is the unix time of the last successful collect.
	LastRun int64 `json:"last_run,omitempty"`
}

// inputOptions points the transport at a config file when one is configured,
// otherwise the injected input is read from stdin.
func inputOptions() []protocol.Option {
	if path := os.Getenv(envConfig); path != "" {
		return []protocol.Option{protocol.WithInputFile(path)}
	}
	path := filepath.Join(proc.MarDir(), localConfig)
	if _, err := os.Stat(path); err == nil {
		return []protocol.Option{protocol.WithInputFile(path)}
	}
	return nil
}

func (c *config) interval() (time.Duration, error) {
	if c.Interval == "" {
		return defaultInterval, nil
	}
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid interval", err,
			map[string]any{"interval": c.Interval})
	}
	if d <= 0 {
		return 0, errors.NewWithContext(errors.ErrCodeInvalidRequest, "interval must be positive",
			map[string]any{"interval": c.Interval})
	}
	return d, nil
}

func defaultFactory(c *config) collector.Factory {
	f := collector.NewDefaultFactory()
	if c.Source != "" {
		f.Source = c.Source
	}
	if len(c.Units) > 0 {
		f.SystemDUnits = c.Units
	}
	if c.MinAvailableMemory != nil {
		f.MinAvailableMemory = *c.MinAvailableMemory
	}
	f.Processes = c.Processes
	f.Checks = c.Checks
	f.MetricPrefix = name
	return f
}
