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

package measurement

// Batch groups the records produced by one collection run.
type Batch struct {
	Metrics []*Metric
	Events  []*Event
}

// NewBatch returns an empty Batch.
func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) AddMetric(metrics ...*Metric) *Batch {
	b.Metrics = append(b.Metrics, metrics...)
	return b
}

func (b *Batch) AddEvent(events ...*Event) *Batch {
	b.Events = append(b.Events, events...)
	return b
}

// Merge appends the records of other. A nil other is ignored.
func (b *Batch) Merge(other *Batch) *Batch {
	if other == nil {
		return b
	}
	b.Metrics = append(b.Metrics, other.Metrics...)
	b.Events = append(b.Events, other.Events...)
	return b
}

// Len returns the total number of records.
func (b *Batch) Len() int {
	return len(b.Metrics) + len(b.Events)
}

// Each applies fn to every metric, for example to stamp a common source.
func (b *Batch) Each(fn func(*Metric)) {
	for _, m := range b.Metrics {
		if m != nil {
			fn(m)
		}
	}
}
