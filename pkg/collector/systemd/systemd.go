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

package systemd

import (
	"context"
	stderrors "errors"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/collector-sdk/pkg/defaults"
	"github.com/NVIDIA/collector-sdk/pkg/errors"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
	"github.com/NVIDIA/collector-sdk/pkg/proc"
)

// unit states reported in the state bitmask, in order
var stateKeys = []string{"loaded", "active", "failed", "running"}

// unitConn is the subset of the systemd D-Bus API the collector uses.
type unitConn interface {
	ListUnitsByNamesContext(ctx context.Context, units []string) ([]dbus.UnitStatus, error)
	GetUnitTypePropertiesContext(ctx context.Context, unit, unitType string) (map[string]any, error)
	Close()
}

var connect = func(ctx context.Context) (unitConn, error) {
	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Collector reports the state of a fixed list of systemd units.
type Collector struct {
	// Source is stamped on every record.
	Source string
	// Units to report. Defaults to containerd.service.
	Units []string
}

func (s *Collector) units() []string {
	if len(s.Units) == 0 {
		return []string{"containerd.service"}
	}
	return s.Units
}

// Collect returns one state bitmask metric per unit, the restart count and
// memory usage of service units, and an event per unit: critical when the unit
// failed, minor when it is otherwise inactive and clear when it is active.
func (s *Collector) Collect(ctx context.Context) (*measurement.Batch, error) {
	slog.Info("collecting systemd unit states", "units", len(s.units()))

	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorSystemDTimeout)
	defer cancel()

	conn, err := connect(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to connect to systemd", err)
	}
	defer conn.Close()

	statuses, err := conn.ListUnitsByNamesContext(ctx, s.units())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to list units", err)
	}

	res := measurement.NewBatch()
	for _, st := range statuses {
		res.AddMetric(measurement.NewMetric().
			SetName("systemd.unit.state").
			SetKey(st.Name).
			SetData(stateMask(st)).
			SetAdditionalData(map[string]string{
				"description": st.Description,
				"sub_state":   st.SubState,
			}).
			Gauge())
		res.AddEvent(s.unitEvent(st))

		if st.LoadState != "loaded" || !strings.HasSuffix(st.Name, ".service") {
			continue
		}
		props, err := conn.GetUnitTypePropertiesContext(ctx, st.Name, "Service")
		if err != nil {
			slog.Debug("skipping service properties", "unit", st.Name, "error", err)
			continue
		}
		res.AddMetric(serviceMetrics(st.Name, props)...)
	}

	res.Each(func(m *measurement.Metric) {
		m.SetSource(s.Source)
	})
	return res, nil
}

func stateMask(st dbus.UnitStatus) *measurement.Bitmask {
	return measurement.NewBitmask().
		SetKeys(stateKeys...).
		SetValues(
			st.LoadState == "loaded",
			st.ActiveState == "active",
			st.ActiveState == "failed",
			st.SubState == "running",
		)
}

// serviceMetrics converts the service properties systemd reports as numbers.
// MemoryCurrent is max uint64 when accounting is disabled.
func serviceMetrics(unit string, props map[string]any) []*measurement.Metric {
	var out []*measurement.Metric
	if n, ok := props["NRestarts"].(uint32); ok {
		out = append(out, measurement.NewMetric().
			SetName("systemd.unit.restarts").
			SetKey(unit).
			SetData(n).
			Counter())
	}
	if n, ok := props["MemoryCurrent"].(uint64); ok && n != math.MaxUint64 {
		out = append(out, measurement.NewMetric().
			SetName("systemd.unit.memory").
			SetKey(unit).
			SetData(n).
			SetUnit("B").
			Gauge())
	}
	return out
}

func (s *Collector) unitEvent(st dbus.UnitStatus) *measurement.Event {
	e := measurement.NewEvent().
		SetSource(s.Source).
		SetCheck(st.Name).
		SetService(st.Name).
		DeriveDedupeKey(s.Source, "systemd", st.Name)

	switch st.ActiveState {
	case "active":
		return e.SetSeverity(string(measurement.SeverityClear)).
			SetDescription(st.Name + " is active")
	case "failed":
		return e.SetSeverity(string(measurement.SeverityCritical)).
			SetDescription(st.Name + " has failed")
	default:
		return e.SetSeverity(string(measurement.SeverityMinor)).
			SetDescription(st.Name + " is " + st.ActiveState + " (" + st.LoadState + ")")
	}
}

// Discover reports every configured unit systemd has loaded as a moob.
func (s *Collector) Discover(ctx context.Context) (*measurement.DiscoveryResult, error) {
	res := measurement.NewDiscoveryResult()
	if !proc.IsLinux() {
		return res.SetActive(false).SetReason(measurement.NewReason().
			SetRecoverable(false).
			SetMsg("systemd is only available on Linux").
			SetType(measurement.ReasonInvalidConfig)), nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorSystemDTimeout)
	defer cancel()

	conn, err := connect(ctx)
	if err != nil {
		reason := measurement.NewReason().SetRecoverable(true).SetMsg(err.Error())
		switch {
		case stderrors.Is(err, os.ErrPermission):
			reason.SetType(measurement.ReasonInsufficientPrivileges)
		case stderrors.Is(err, context.DeadlineExceeded):
			reason.SetType(measurement.ReasonTimeout)
		default:
			reason.SetType(measurement.ReasonMissingProcess)
		}
		return res.SetActive(false).SetReason(reason), nil
	}
	defer conn.Close()

	statuses, err := conn.ListUnitsByNamesContext(ctx, s.units())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to list units", err)
	}
	for _, st := range statuses {
		if st.LoadState == "loaded" {
			res.SetMoob(st.Name)
		}
	}
	if len(res.Moobs) == 0 {
		return res.SetActive(false).SetReason(measurement.NewReason().
			SetRecoverable(true).
			SetMsg("none of the units are loaded: " + strings.Join(s.units(), ", ")).
			SetType(measurement.ReasonMissingProcess)), nil
	}
	return res.SetActive(true), nil
}
