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
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

// Severity is the urgency of an Event: a SeverityName or a SeverityLevel.
type Severity interface {
	isSeverity()
}

// SeverityName is a named severity, stored lower-cased.
type SeverityName string

// SeverityLevel is a numeric severity from 0 (clear) to 5 (critical).
type SeverityLevel float64

func (SeverityName) isSeverity()  {}
func (SeverityLevel) isSeverity() {}

// Canonical severity names, ordered from SeverityLevel 0 to 5.
const (
	SeverityClear    SeverityName = "clear"
	SeverityUnknown  SeverityName = "unknown"
	SeverityMinor    SeverityName = "minor"
	SeverityWarning  SeverityName = "warning"
	SeverityMajor    SeverityName = "major"
	SeverityCritical SeverityName = "critical"
)

// Severities lists the canonical names in level order.
var Severities = []SeverityName{
	SeverityClear,
	SeverityUnknown,
	SeverityMinor,
	SeverityWarning,
	SeverityMajor,
	SeverityCritical,
}

// dedupeNamespace scopes derived dedupe keys.
var dedupeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/NVIDIA/collector-sdk/event"))

// DedupeKey derives a stable dedupe key from parts. The same parts always
// produce the same key.
func DedupeKey(parts ...string) string {
	return uuid.NewSHA1(dedupeNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}

// Event is a discrete occurrence with a severity, such as a failed check.
type Event struct {
	Severity    Severity       `json:"severity,omitempty"`
	Source      *string        `json:"source,omitempty"`
	Check       *string        `json:"check,omitempty"`
	Description *string        `json:"description,omitempty"`
	Time        *float64       `json:"time,omitempty"`
	UTCOffset   *string        `json:"utc_offset,omitempty"`
	DedupeKey   *string        `json:"dedupe_key,omitempty"`
	Manager     *string        `json:"manager,omitempty"`
	Service     []string       `json:"service,omitempty"`
	Alias       *string        `json:"alias,omitempty"`
	Class       *string        `json:"class,omitempty"`
	Tags        map[string]any `json:"tags,omitempty"`

	malformed fieldSet
	// service was set, even to an empty list
	serviceSet bool
}

// NewEvent returns an empty Event.
func NewEvent() *Event {
	return &Event{}
}

// SetSeverity sets a named severity. The name is lower-cased.
func (e *Event) SetSeverity(name string) *Event {
	// a Caser is stateful, so each call gets its own
	e.Severity = SeverityName(cases.Lower(language.Und).String(name))
	e.malformed.clear("severity")
	return e
}

// SetSeverityLevel sets a numeric severity. The range is checked by Validate.
func (e *Event) SetSeverityLevel(level float64) *Event {
	e.Severity = SeverityLevel(level)
	e.malformed.clear("severity")
	return e
}

func (e *Event) SetSource(source string) *Event {
	e.Source = ptr.To(source)
	e.malformed.clear("source")
	return e
}

// SetCheck sets the name of the check that produced the event.
func (e *Event) SetCheck(check string) *Event {
	e.Check = ptr.To(check)
	e.malformed.clear("check")
	return e
}

func (e *Event) SetDescription(description string) *Event {
	e.Description = ptr.To(description)
	e.malformed.clear("description")
	return e
}

// SetTime sets the unix timestamp in seconds.
func (e *Event) SetTime(t float64) *Event {
	e.Time = ptr.To(t)
	e.malformed.clear("time")
	return e
}

func (e *Event) SetUTCOffset(offset string) *Event {
	e.UTCOffset = ptr.To(offset)
	e.malformed.clear("utc_offset")
	return e
}

// SetDedupeKey sets the key the platform uses to collapse repeated events.
func (e *Event) SetDedupeKey(key string) *Event {
	e.DedupeKey = ptr.To(key)
	e.malformed.clear("dedupe_key")
	return e
}

// DeriveDedupeKey sets the dedupe key from parts using DedupeKey.
func (e *Event) DeriveDedupeKey(parts ...string) *Event {
	return e.SetDedupeKey(DedupeKey(parts...))
}

func (e *Event) SetManager(manager string) *Event {
	e.Manager = ptr.To(manager)
	e.malformed.clear("manager")
	return e
}

// SetService replaces the list of affected services.
func (e *Event) SetService(services ...string) *Event {
	e.Service = services
	e.serviceSet = true
	e.malformed.clear("service")
	return e
}

func (e *Event) SetAlias(alias string) *Event {
	e.Alias = ptr.To(alias)
	e.malformed.clear("alias")
	return e
}

// SetClass sets the event class (wire field "class").
func (e *Event) SetClass(class string) *Event {
	e.Class = ptr.To(class)
	e.malformed.clear("class")
	return e
}

// SetTags replaces the tag object.
func (e *Event) SetTags(tags map[string]any) *Event {
	e.Tags = tags
	e.malformed.clear("tags")
	return e
}

// SetTag sets a single tag.
func (e *Event) SetTag(key string, value any) *Event {
	if e.Tags == nil {
		e.Tags = make(map[string]any)
	}
	e.Tags[key] = value
	return e
}

// Validate checks fields in wire order and returns the first failure.
// It does not modify the event.
func (e *Event) Validate() error {
	if err := e.validateSeverity(); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"source", e.Source},
		{"check", e.Check},
		{"description", e.Description},
	} {
		if e.malformed.has(f.name) || ptr.Deref(f.value, "") == "" {
			return errors.InvalidField(f.name, fmt.Sprintf("`%s` must be set to a non-empty string", f.name))
		}
	}
	if err := checkNumber("time", e.Time, e.malformed); err != nil {
		return err
	}
	for _, f := range []string{"utc_offset", "dedupe_key", "manager"} {
		if e.malformed.has(f) {
			return errors.InvalidField(f, fmt.Sprintf("Field `%s` must be a string", f))
		}
	}
	if e.malformed.has("service") || (e.serviceSet && len(e.Service) == 0) {
		return errors.InvalidField("service", "Field `service` must be a non-empty array of strings")
	}
	for _, f := range []string{"alias", "class"} {
		if e.malformed.has(f) {
			return errors.InvalidField(f, fmt.Sprintf("Field `%s` must be a string", f))
		}
	}
	if e.malformed.has("tags") {
		return errors.InvalidField("tags", "Field `tags` must be a plain object")
	}
	if e.Tags != nil {
		if _, err := json.Marshal(e.Tags); err != nil {
			return errors.InvalidField("tags", "Field `tags` must be encodable as JSON")
		}
	}
	return nil
}

func (e *Event) validateSeverity() error {
	if e.malformed.has("severity") {
		return errors.InvalidField("severity", "`severity` must be a string or a number")
	}
	switch s := e.Severity.(type) {
	case SeverityName:
		if !slices.Contains(Severities, s) {
			return errors.InvalidField("severity",
				"string `severity` must be set to one of [clear,unknown,minor,warning,major,critical]")
		}
	case SeverityLevel:
		f := float64(s)
		if math.IsNaN(f) || f != math.Trunc(f) || f < 0 || f > 5 {
			return errors.InvalidField("severity", "numeric `severity` must be an integer between 0 and 5")
		}
	default:
		return errors.InvalidField("severity",
			"`severity` must be set to one of [clear,unknown,minor,warning,major,critical] or 0-5")
	}
	return nil
}

// EventFrom builds an Event from a generic JSON object. Only keys present in
// src are applied; values of the wrong type are kept for Validate to report.
// The legacy "dedup_key" spelling is applied after "dedupe_key" and wins.
func EventFrom(src map[string]any) *Event {
	e := NewEvent()
	// a null severity is treated as unset
	if v, ok := src["severity"]; ok && v != nil {
		if s, isStr := asString(v); isStr {
			e.SetSeverity(s)
		} else if n, isNum := asNumber(v); isNum {
			e.SetSeverityLevel(n)
		} else {
			e.malformed.add("severity")
		}
	}
	applyString(src, "source", &e.malformed, e.SetSource)
	applyString(src, "check", &e.malformed, e.SetCheck)
	applyString(src, "description", &e.malformed, e.SetDescription)
	applyNumber(src, "time", &e.malformed, e.SetTime)
	applyString(src, "utc_offset", &e.malformed, e.SetUTCOffset)
	applyString(src, "dedupe_key", &e.malformed, e.SetDedupeKey)
	if v, ok := src["dedup_key"]; ok {
		if key, isStr := asString(v); isStr {
			e.SetDedupeKey(key)
		} else {
			e.malformed.add("dedupe_key")
		}
	}
	applyString(src, "manager", &e.malformed, e.SetManager)
	if v, ok := src["service"]; ok {
		if services, isList := asStringSlice(v); isList {
			e.SetService(services...)
		} else {
			e.malformed.add("service")
		}
	}
	applyString(src, "alias", &e.malformed, e.SetAlias)
	applyString(src, "class", &e.malformed, e.SetClass)
	if v, ok := src["tags"]; ok {
		if obj, isObj := asObject(v); isObj {
			e.SetTags(obj)
		} else {
			e.malformed.add("tags")
		}
	}
	return e
}

// UnmarshalJSON decodes an event through EventFrom.
func (e *Event) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode event", err)
	}
	*e = *EventFrom(obj)
	return nil
}
