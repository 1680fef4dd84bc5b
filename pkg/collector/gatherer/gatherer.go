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

// Package gatherer turns the metric families of a Prometheus gatherer into
// collector metrics, so anything instrumented with client_golang can be
// reported through the collector protocol.
//
// Counters and gauges map one to one. Summaries and histograms are reported as
// their _sum and _count series. Labels become tags and the key, the help text
// becomes the description.
package gatherer

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
)

// Collector reads a Prometheus gatherer.
type Collector struct {
	Gatherer prometheus.Gatherer
	// Prefix is prepended to every metric name, joined with a dot.
	Prefix string
	// Source is stamped on every metric.
	Source string
}

// Collect gathers the registry once and converts every series.
func (c *Collector) Collect(ctx context.Context) (*measurement.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.Gatherer == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "gatherer is required")
	}

	families, err := c.Gatherer.Gather()
	if err != nil {
		// a partial result is still usable
		if len(families) == 0 {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to gather metrics", err)
		}
		slog.Warn("partial gather", "error", err)
	}

	res := measurement.NewBatch()
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			res.AddMetric(c.convert(mf, m)...)
		}
	}
	return res, nil
}

func (c *Collector) convert(mf *dto.MetricFamily, m *dto.Metric) []*measurement.Metric {
	name := c.name(mf.GetName())

	newMetric := func(name string, value float64) *measurement.Metric {
		out := measurement.NewMetric().SetName(name).SetData(value)
		if c.Source != "" {
			out.SetSource(c.Source)
		}
		if help := mf.GetHelp(); help != "" {
			out.SetDescription(help)
		}
		if ts := m.GetTimestampMs(); ts != 0 {
			out.SetTime(float64(ts) / 1000)
		}
		labels := m.GetLabel()
		if len(labels) > 0 {
			out.SetKey(labelKey(labels))
			for _, l := range labels {
				out.SetTag(l.GetName(), l.GetValue())
			}
		}
		return out
	}

	switch mf.GetType() {
	case dto.MetricType_COUNTER:
		return []*measurement.Metric{newMetric(name, m.GetCounter().GetValue()).Counter()}
	case dto.MetricType_GAUGE:
		return []*measurement.Metric{newMetric(name, m.GetGauge().GetValue()).Gauge()}
	case dto.MetricType_UNTYPED:
		return []*measurement.Metric{newMetric(name, m.GetUntyped().GetValue()).Gauge()}
	case dto.MetricType_SUMMARY:
		s := m.GetSummary()
		return []*measurement.Metric{
			newMetric(name+"_sum", s.GetSampleSum()).Counter(),
			newMetric(name+"_count", float64(s.GetSampleCount())).Counter(),
		}
	case dto.MetricType_HISTOGRAM, dto.MetricType_GAUGE_HISTOGRAM:
		h := m.GetHistogram()
		return []*measurement.Metric{
			newMetric(name+"_sum", h.GetSampleSum()).Counter(),
			newMetric(name+"_count", float64(h.GetSampleCount())).Counter(),
		}
	default:
		slog.Debug("skipping metric family", "name", mf.GetName(), "type", mf.GetType().String())
		return nil
	}
}

func (c *Collector) name(family string) string {
	if c.Prefix == "" {
		return family
	}
	return c.Prefix + "." + family
}

// labelKey joins label values in label name order, e.g. "GET,200".
func labelKey(labels []*dto.LabelPair) string {
	sorted := slices.Clone(labels)
	slices.SortFunc(sorted, func(a, b *dto.LabelPair) int {
		return strings.Compare(a.GetName(), b.GetName())
	})
	values := make([]string, 0, len(sorted))
	for _, l := range sorted {
		values = append(values, l.GetValue())
	}
	return strings.Join(values, ",")
}
