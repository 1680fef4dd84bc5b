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

package os

import (
	"context"
	"log/slog"
	"os"

	"github.com/NVIDIA/collector-sdk/pkg/measurement"
	"github.com/NVIDIA/collector-sdk/pkg/proc"
)

// Moobs reported by Discover.
const (
	MoobLoad   = "load"
	MoobMemory = "memory"
)

// Collector collects operating system health:
// - load average and process counts from /proc/loadavg
// - memory usage from /proc/meminfo
// - the kernel taint mask from /proc/sys/kernel/tainted
// Every metric is tagged with the OS release ID and VERSION_ID when known.
type Collector struct {
	// Source is stamped on every record. Defaults to the host name.
	Source string
	// MinAvailableRatio raises a warning event when MemAvailable/MemTotal
	// drops below it. Zero disables the event.
	MinAvailableRatio float64
}

// Collect gathers load, memory and kernel metrics into a single batch.
func (c *Collector) Collect(ctx context.Context) (*measurement.Batch, error) {
	slog.Info("collecting OS metrics")

	// Check if context is canceled
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := c.source()
	res := measurement.NewBatch()

	load, err := c.collectLoad(ctx)
	if err != nil {
		return nil, err
	}
	res.Merge(load)

	mem, err := c.collectMemory(ctx, source)
	if err != nil {
		return nil, err
	}
	res.Merge(mem)

	// the taint mask is optional; older kernels and containers may hide it
	if kernel, err := c.collectKernel(ctx); err != nil {
		slog.Debug("skipping kernel metrics", "error", err)
	} else {
		res.Merge(kernel)
	}

	tags := c.releaseTags(ctx)
	res.Each(func(m *measurement.Metric) {
		m.SetSource(source)
		for k, v := range tags {
			m.SetTag(k, v)
		}
	})
	return res, nil
}

// Discover reports the collector active on Linux hosts where /proc is readable.
func (c *Collector) Discover(ctx context.Context) (*measurement.DiscoveryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := measurement.NewDiscoveryResult()
	if !proc.IsLinux() {
		return res.SetActive(false).SetReason(measurement.NewReason().
			SetRecoverable(false).
			SetMsg("OS metrics are only collected on Linux").
			SetType(measurement.ReasonInvalidConfig)), nil
	}

	for path, moob := range map[string]string{loadavgPath: MoobLoad, meminfoPath: MoobMemory} {
		f, err := os.Open(path)
		if err != nil {
			reason := measurement.NewReason().SetRecoverable(false).SetMsg(err.Error())
			if os.IsPermission(err) {
				reason.SetType(measurement.ReasonInsufficientPrivileges)
			} else {
				reason.SetType(measurement.ReasonMissingConfig)
			}
			return res.SetActive(false).SetReason(reason), nil
		}
		_ = f.Close()
		res.SetMoob(moob)
	}
	return res.SetActive(true), nil
}

func (c *Collector) source() string {
	if c.Source != "" {
		return c.Source
	}
	host, err := os.Hostname()
	if err != nil {
		return "localhost"
	}
	return host
}
