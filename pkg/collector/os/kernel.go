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

	"github.com/NVIDIA/collector-sdk/pkg/collector/file"
	"github.com/NVIDIA/collector-sdk/pkg/errors"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
)

var taintedPath = "/proc/sys/kernel/tainted"

// collectKernel reports the kernel taint flags as a hex mask. Zero means an
// untainted kernel.
func (c *Collector) collectKernel(ctx context.Context) (*measurement.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields, err := file.NewParser().GetFields(taintedPath)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "empty taint mask",
			map[string]any{"path": taintedPath})
	}

	n, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid taint mask", err,
			map[string]any{"value": fields[0]})
	}

	return measurement.NewBatch().AddMetric(measurement.NewMetric().
		SetName("kernel.tainted").
		SetData(measurement.HexOf(n)).
		Gauge()), nil
}
