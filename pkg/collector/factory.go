// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package collector

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/collector-sdk/pkg/collector/gatherer"
	oscollector "github.com/NVIDIA/collector-sdk/pkg/collector/os"
	"github.com/NVIDIA/collector-sdk/pkg/collector/process"
	"github.com/NVIDIA/collector-sdk/pkg/collector/systemd"
)

// Factory creates collectors with their dependencies.
type Factory interface {
	CreateOSCollector() Collector
	CreateSystemDCollector() Collector
	CreateProcessCollector() Collector
	CreateGathererCollector(g prometheus.Gatherer) Collector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	// Source is stamped on every record. Defaults to the host name.
	Source string
	// SystemDUnits are the units reported by the systemd collector.
	SystemDUnits []string
	// MinAvailableMemory is the MemAvailable/MemTotal ratio below which the
	// OS collector raises an event.
	MinAvailableMemory float64
	// Processes that must be running.
	Processes []string
	// Checks maps a check name to a shell command.
	Checks map[string]string
	// MetricPrefix is prepended to metrics read from a Prometheus gatherer.
	MetricPrefix string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory() *DefaultFactory {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return &DefaultFactory{
		Source: host,
		SystemDUnits: []string{
			"containerd.service",
			"docker.service",
			"kubelet.service",
		},
		MinAvailableMemory: 0.1,
	}
}

// CreateOSCollector creates a load and memory collector.
func (f *DefaultFactory) CreateOSCollector() Collector {
	return &oscollector.Collector{
		Source:            f.Source,
		MinAvailableRatio: f.MinAvailableMemory,
	}
}

// CreateSystemDCollector creates a systemd unit collector.
func (f *DefaultFactory) CreateSystemDCollector() Collector {
	return &systemd.Collector{
		Source: f.Source,
		Units:  f.SystemDUnits,
	}
}

// CreateProcessCollector creates a process liveness and check collector.
func (f *DefaultFactory) CreateProcessCollector() Collector {
	return &process.Collector{
		Source:    f.Source,
		Processes: f.Processes,
		Checks:    f.Checks,
	}
}

// CreateGathererCollector creates a collector reading a Prometheus gatherer.
func (f *DefaultFactory) CreateGathererCollector(g prometheus.Gatherer) Collector {
	return &gatherer.Collector{
		Gatherer: g,
		Prefix:   f.MetricPrefix,
		Source:   f.Source,
	}
}
