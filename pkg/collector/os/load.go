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
	"strconv"
	"strings"

	"github.com/NVIDIA/collector-sdk/pkg/collector/file"
	"github.com/NVIDIA/collector-sdk/pkg/errors"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
)

var loadavgPath = "/proc/loadavg"

// collectLoad reads /proc/loadavg:
//
//	0.42 0.35 0.30 1/234 5678
//
// The first three fields are the 1, 5 and 15 minute load averages, the fourth
// is running/total scheduling entities.
func (c *Collector) collectLoad(ctx context.Context) (*measurement.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields, err := file.NewParser().GetFields(loadavgPath)
	if err != nil {
		return nil, err
	}
	if len(fields) < 4 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unexpected loadavg format",
			map[string]any{"path": loadavgPath, "fields": len(fields)})
	}

	res := measurement.NewBatch()
	for i, window := range []float64{60, 300, 900} {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid load average", err,
				map[string]any{"value": fields[i]})
		}
		res.AddMetric(measurement.NewMetric().
			SetName("load").
			SetKey(loadKeys[i]).
			SetData(v).
			SetWindow(window).
			Gauge())
	}

	running, total, ok := strings.Cut(fields[3], "/")
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid process counts",
			map[string]any{"value": fields[3]})
	}
	res.AddMetric(
		measurement.NewMetric().SetName("processes.running").SetData(running).Gauge(),
		measurement.NewMetric().SetName("processes.total").SetData(total).Gauge(),
	)
	return res, nil
}

var loadKeys = []string{"1m", "5m", "15m"}
