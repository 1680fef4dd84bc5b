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

// Package process checks that named processes are running and that shell
// health checks succeed.
package process

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/NVIDIA/collector-sdk/pkg/measurement"
	"github.com/NVIDIA/collector-sdk/pkg/proc"
)

// MoobProcess is the moob reported by Discover.
const MoobProcess = "process"

// Collector reports process liveness and check results.
type Collector struct {
	// Source is stamped on every record.
	Source string
	// Processes are matched with pgrep, or tasklist on Windows.
	Processes []string
	// Checks maps a check name to a shell command. Exit status 0 passes.
	Checks map[string]string
}

// Collect emits process.running (boolean) per process and check.status (exit
// status) per check, with a clear or critical event for each.
func (c *Collector) Collect(ctx context.Context) (*measurement.Batch, error) {
	slog.Info("collecting process state", "processes", len(c.Processes), "checks", len(c.Checks))

	res := measurement.NewBatch()
	for _, name := range c.Processes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		running, err := proc.IsProcessRunning(ctx, name)
		if err != nil {
			return nil, err
		}
		res.AddMetric(measurement.NewMetric().
			SetName("process.running").
			SetKey(name).
			SetData(running).
			Gauge())

		e := c.event("process", name)
		if running {
			res.AddEvent(e.SetSeverity(string(measurement.SeverityClear)).
				SetDescription(name + " is running"))
		} else {
			res.AddEvent(e.SetSeverity(string(measurement.SeverityCritical)).
				SetDescription(name + " is not running"))
		}
	}

	names := make([]string, 0, len(c.Checks))
	for name := range c.Checks {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		out, err := proc.Run(ctx, c.Checks[name])
		if err != nil {
			return nil, err
		}
		res.AddMetric(measurement.NewMetric().
			SetName("check.status").
			SetKey(name).
			SetData(out.ExitStatus).
			Gauge())

		e := c.event("check", name)
		if out.Success() {
			res.AddEvent(e.SetSeverity(string(measurement.SeverityClear)).
				SetDescription(name + " passed"))
		} else {
			res.AddEvent(e.SetSeverity(string(measurement.SeverityCritical)).
				SetDescription(fmt.Sprintf("%s failed with status %d", name, out.ExitStatus)).
				SetTag("stderr", out.Stderr))
		}
	}

	res.Each(func(m *measurement.Metric) {
		m.SetSource(c.Source)
	})
	return res, nil
}

func (c *Collector) event(kind, name string) *measurement.Event {
	return measurement.NewEvent().
		SetSource(c.Source).
		SetCheck(kind + "." + name).
		DeriveDedupeKey(c.Source, kind, name)
}

// Discover is active when something is configured and the process lookup
// command is available.
func (c *Collector) Discover(ctx context.Context) (*measurement.DiscoveryResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := measurement.NewDiscoveryResult()
	if len(c.Processes) == 0 && len(c.Checks) == 0 {
		return res.SetActive(false).SetReason(measurement.NewReason().
			SetRecoverable(true).
			SetMsg("no processes or checks configured").
			SetType(measurement.ReasonMissingConfig)), nil
	}
	if len(c.Processes) > 0 && !proc.IsWindows() && !proc.HasCommand("pgrep") {
		return res.SetActive(false).SetReason(measurement.NewReason().
			SetRecoverable(false).
			SetMsg("pgrep is required to check processes").
			SetType(measurement.ReasonMissingCommand)), nil
	}
	return res.SetMoob(MoobProcess).SetActive(true), nil
}
