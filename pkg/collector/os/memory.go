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
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/collector-sdk/pkg/collector/file"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
	"github.com/NVIDIA/collector-sdk/pkg/units"
)

var meminfoPath = "/proc/meminfo"

// meminfo fields reported, in output order
var memFields = []struct {
	key    string
	metric string
}{
	{"MemTotal", "mem.total"},
	{"MemFree", "mem.free"},
	{"MemAvailable", "mem.available"},
	{"Buffers", "mem.buffers"},
	{"Cached", "mem.cached"},
	{"SwapTotal", "swap.total"},
	{"SwapFree", "swap.free"},
}

// collectMemory reads /proc/meminfo, where sizes look like "16318480 kB".
func (c *Collector) collectMemory(ctx context.Context, source string) (*measurement.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := file.NewParser(file.WithKVDelimiter(":"))
	info, err := parser.GetMap(meminfoPath)
	if err != nil {
		return nil, err
	}

	res := measurement.NewBatch()
	sizes := make(map[string]int64, len(memFields))
	for _, f := range memFields {
		raw, ok := info[f.key]
		if !ok {
			continue
		}
		n, err := units.ParseHumanSize(raw)
		if err != nil {
			slog.Debug("skipping meminfo field", "key", f.key, "value", raw, "error", err)
			continue
		}
		sizes[f.key] = n
		res.AddMetric(measurement.NewMetric().SetName(f.metric).SetData(n).SetUnit("B").Gauge())
	}

	total, available := sizes["MemTotal"], sizes["MemAvailable"]
	if _, ok := sizes["MemAvailable"]; !ok || total == 0 {
		return res, nil
	}
	ratio := float64(available) / float64(total)
	res.AddMetric(measurement.NewMetric().SetName("mem.available_ratio").SetData(ratio).Gauge())

	if c.MinAvailableRatio > 0 {
		res.AddEvent(memoryEvent(source, ratio, c.MinAvailableRatio))
	}
	return res, nil
}

// memoryEvent reports the memory check: warning below the threshold, clear
// otherwise, sharing a dedupe key so the platform can resolve the warning.
func memoryEvent(source string, ratio, threshold float64) *measurement.Event {
	e := measurement.NewEvent().
		SetSource(source).
		SetCheck(MoobMemory).
		SetTime(float64(time.Now().Unix())).
		DeriveDedupeKey(source, MoobMemory)
	if ratio < threshold {
		return e.SetSeverity(string(measurement.SeverityWarning)).SetDescription(
			fmt.Sprintf("available memory %.1f%% is below %.1f%%", ratio*100, threshold*100))
	}
	return e.SetSeverity(string(measurement.SeverityClear)).SetDescription(
		fmt.Sprintf("available memory %.1f%%", ratio*100))
}
