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
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/collector-sdk/pkg/defaults"
	"github.com/NVIDIA/collector-sdk/pkg/errors"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
)

// Collector gathers metrics and events from one source.
type Collector interface {
	Collect(ctx context.Context) (*measurement.Batch, error)
}

// Discoverer is implemented by collectors that can tell whether they apply
// to the host.
type Discoverer interface {
	Discover(ctx context.Context) (*measurement.DiscoveryResult, error)
}

// Named pairs a collector with the name used in logs and errors.
type Named struct {
	Name      string
	Collector Collector
}

// Gather runs collectors concurrently, each bounded by
// defaults.CollectorTimeout, and merges their batches in argument order.
// A failing collector does not stop the others; all failures are returned
// joined alongside the records that were collected.
func Gather(ctx context.Context, collectors ...Named) (*measurement.Batch, error) {
	batches := make([]*measurement.Batch, len(collectors))
	errs := make([]error, len(collectors))

	var g errgroup.Group
	for i, c := range collectors {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
			defer cancel()

			start := time.Now()
			b, err := c.Collector.Collect(cctx)
			if err != nil {
				slog.Warn("collector failed", "collector", c.Name, "error", err)
				errs[i] = errors.WrapWithContext(errors.ErrCodeInternal, "collector failed", err,
					map[string]any{"collector": c.Name})
				return nil
			}
			slog.Debug("collector completed",
				"collector", c.Name,
				"records", b.Len(),
				"duration", time.Since(start))
			batches[i] = b
			return nil
		})
	}
	_ = g.Wait()

	out := measurement.NewBatch()
	for _, b := range batches {
		out.Merge(b)
	}
	return out, stderrors.Join(errs...)
}

// Discover runs every Discoverer in collectors and returns a single result:
// active when at least one is active, with the union of their moobs. When none
// is active, the reason of the first inactive result is kept.
func Discover(ctx context.Context, collectors ...Named) (*measurement.DiscoveryResult, error) {
	res := measurement.NewDiscoveryResult().SetActive(false)
	for _, c := range collectors {
		d, ok := c.Collector.(Discoverer)
		if !ok {
			continue
		}
		r, err := d.Discover(ctx)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInternal, "discovery failed", err,
				map[string]any{"collector": c.Name})
		}
		if r == nil {
			continue
		}
		if r.Active != nil && *r.Active {
			res.SetActive(true)
			res.ReasonDetail = nil
			for _, m := range r.Moobs {
				res.SetMoob(m)
			}
			continue
		}
		if !*res.Active && res.ReasonDetail == nil {
			res.SetReason(r.ReasonDetail)
		}
	}
	return res, nil
}
