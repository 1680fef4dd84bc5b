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

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

// Metric is a single numeric, boolean, hex or bitmask datapoint.
// Unset optional fields are omitted from the JSON encoding.
type Metric struct {
	Data           Data                `json:"data,omitempty"`
	Name           *string             `json:"metric,omitempty"`
	Source         *string             `json:"source,omitempty"`
	Key            *string             `json:"key,omitempty"`
	Time           *float64            `json:"time,omitempty"`
	Description    *string             `json:"description,omitempty"`
	UTCOffset      *string             `json:"utc_offset,omitempty"`
	AdditionalData json.RawMessage     `json:"additional_data,omitempty"`
	Tags           map[string]TagValue `json:"tags,omitempty"`
	Type           *string             `json:"type,omitempty"`
	Unit           *string             `json:"unit,omitempty"`
	Window         *float64            `json:"window,omitempty"`

	malformed fieldSet
}

// NewMetric returns an empty Metric.
func NewMetric() *Metric {
	return &Metric{}
}

// SetData sets the datapoint. See ToData for how values are normalized.
func (m *Metric) SetData(v any) *Metric {
	m.Data = ToData(v)
	return m
}

// SetName sets the metric name (wire field "metric").
func (m *Metric) SetName(name string) *Metric {
	m.Name = ptr.To(name)
	m.malformed.clear("metric")
	return m
}

// SetSource sets the host or entity the datapoint belongs to.
func (m *Metric) SetSource(source string) *Metric {
	m.Source = ptr.To(source)
	m.malformed.clear("source")
	return m
}

// SetKey sets the metric key, used to distinguish series of the same metric.
func (m *Metric) SetKey(key string) *Metric {
	m.Key = ptr.To(key)
	m.malformed.clear("key")
	return m
}

// SetTime sets the unix timestamp in seconds.
func (m *Metric) SetTime(t float64) *Metric {
	m.Time = ptr.To(t)
	m.malformed.clear("time")
	return m
}

func (m *Metric) SetDescription(description string) *Metric {
	m.Description = ptr.To(description)
	m.malformed.clear("description")
	return m
}

func (m *Metric) SetUTCOffset(offset string) *Metric {
	m.UTCOffset = ptr.To(offset)
	m.malformed.clear("utc_offset")
	return m
}

// SetAdditionalData attaches an arbitrary JSON value. Values that cannot be
// encoded are reported by Validate.
func (m *Metric) SetAdditionalData(v any) *Metric {
	raw, err := json.Marshal(v)
	if err != nil {
		m.AdditionalData = nil
		m.malformed.add("additional_data")
		return m
	}
	m.AdditionalData = raw
	m.malformed.clear("additional_data")
	return m
}

// SetTag sets a single tag. Non-scalar values are reported by Validate.
func (m *Metric) SetTag(key string, value any) *Metric {
	tv, ok := ToTagValue(value)
	if !ok {
		m.malformed.add("tags")
		return m
	}
	if m.Tags == nil {
		m.Tags = make(map[string]TagValue)
	}
	m.Tags[key] = tv
	return m
}

// SetType sets the metric type, one of MetricTypes.
func (m *Metric) SetType(t string) *Metric {
	m.Type = ptr.To(t)
	m.malformed.clear("type")
	return m
}

// Counter marks the metric as a counter.
func (m *Metric) Counter() *Metric {
	return m.SetType(TypeCounterLong)
}

// Gauge marks the metric as a gauge.
func (m *Metric) Gauge() *Metric {
	return m.SetType(TypeGaugeLong)
}

func (m *Metric) SetUnit(unit string) *Metric {
	m.Unit = ptr.To(unit)
	m.malformed.clear("unit")
	return m
}

// SetWindow sets the aggregation window in seconds.
func (m *Metric) SetWindow(window float64) *Metric {
	m.Window = ptr.To(window)
	m.malformed.clear("window")
	return m
}

// Validate checks fields in wire order and returns the first failure.
// It does not modify the metric.
func (m *Metric) Validate() error {
	if err := m.validateData(); err != nil {
		return err
	}
	if m.Name == nil || *m.Name == "" || m.malformed.has("metric") {
		return errors.InvalidField("metric", "A string value for field `metric` is required")
	}
	if err := m.malformedString("source"); err != nil {
		return err
	}
	if err := m.malformedString("key"); err != nil {
		return err
	}
	if err := checkNumber("time", m.Time, m.malformed); err != nil {
		return err
	}
	if err := m.malformedString("description"); err != nil {
		return err
	}
	if err := m.malformedString("utc_offset"); err != nil {
		return err
	}
	if m.malformed.has("additional_data") || (m.AdditionalData != nil && !json.Valid(m.AdditionalData)) {
		return errors.InvalidField("additional_data", "Field `additional_data` must be valid JSON")
	}
	if m.malformed.has("tags") || !validTags(m.Tags) {
		return errors.InvalidField("tags", "Field `tags` must map strings to scalar values")
	}
	if m.malformed.has("type") || (m.Type != nil && !slices.Contains(MetricTypes, *m.Type)) {
		return errors.InvalidField("type", "`type` must be one of [`c`, `g`, `counter`, `gauge`]")
	}
	if err := m.malformedString("unit"); err != nil {
		return err
	}
	return checkNumber("window", m.Window, m.malformed)
}

// validTags reports whether every tag value can be encoded. Values set
// directly on Tags bypass SetTag.
func validTags(tags map[string]TagValue) bool {
	for _, v := range tags {
		if !encodable(v) {
			return false
		}
	}
	return true
}

func (m *Metric) validateData() error {
	invalid := errors.InvalidField("data",
		"A Bitmask, Number, Hex String, or Boolean value for field `data` is required")
	switch d := m.Data.(type) {
	case Number:
		if !finite(float64(d)) {
			return invalid
		}
	case Boolean:
	case Hex:
		if !IsHex(string(d)) {
			return invalid
		}
	case *Bitmask:
		if d == nil {
			return invalid
		}
		return d.Validate()
	default:
		return invalid
	}
	return nil
}

func (m *Metric) malformedString(field string) error {
	if m.malformed.has(field) {
		return errors.InvalidField(field, fmt.Sprintf("Field `%s` must be a string", field))
	}
	return nil
}

func checkNumber(field string, v *float64, malformed fieldSet) error {
	if malformed.has(field) || (v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0))) {
		return errors.InvalidField(field, fmt.Sprintf("Field `%s` must be a number", field))
	}
	return nil
}

// MetricFrom builds a Metric from a generic JSON object. Only keys present in
// src are applied; values of the wrong type are kept for Validate to report.
func MetricFrom(src map[string]any) *Metric {
	m := NewMetric()
	if v, ok := src["data"]; ok {
		if obj, isObj := asObject(v); isObj {
			m.SetData(BitmaskFrom(obj))
		} else {
			m.SetData(v)
		}
	}
	applyString(src, "metric", &m.malformed, m.SetName)
	applyString(src, "source", &m.malformed, m.SetSource)
	applyString(src, "key", &m.malformed, m.SetKey)
	applyNumber(src, "time", &m.malformed, m.SetTime)
	applyString(src, "description", &m.malformed, m.SetDescription)
	applyString(src, "utc_offset", &m.malformed, m.SetUTCOffset)
	if v, ok := src["additional_data"]; ok {
		m.SetAdditionalData(v)
	}
	if v, ok := src["tags"]; ok {
		obj, isObj := asObject(v)
		if !isObj {
			m.malformed.add("tags")
		}
		for k, tv := range obj {
			m.SetTag(k, tv)
		}
	}
	applyString(src, "type", &m.malformed, m.SetType)
	applyString(src, "unit", &m.malformed, m.SetUnit)
	applyNumber(src, "window", &m.malformed, m.SetWindow)
	return m
}

// UnmarshalJSON decodes a metric through MetricFrom.
func (m *Metric) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode metric", err)
	}
	*m = *MetricFrom(obj)
	return nil
}

func applyString[T any](src map[string]any, field string, malformed *fieldSet, set func(string) T) {
	v, ok := src[field]
	if !ok {
		return
	}
	s, isStr := asString(v)
	if !isStr {
		malformed.add(field)
		return
	}
	set(s)
}

func applyNumber[T any](src map[string]any, field string, malformed *fieldSet, set func(float64) T) {
	v, ok := src[field]
	if !ok {
		return
	}
	n, isNum := asNumber(v)
	if !isNum {
		malformed.add(field)
		return
	}
	set(n)
}
