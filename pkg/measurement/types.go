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
	"strconv"
	"strings"
)

// Reason types used to categorize a failed discovery in the platform UI.
const (
	ReasonInsufficientPrivileges = "Insufficient Privileges"
	ReasonInvalidCredentials     = "Invalid Credentials"
	ReasonMissingCredentials     = "Missing Credentials"
	ReasonMissingProcess         = "Missing Process"
	ReasonMissingCommand         = "Missing Command"
	ReasonNoHTTPResponse         = "No http(s) response"
	ReasonMissingConfig          = "Missing configuration item"
	ReasonInvalidConfig          = "Invalid configuration value"
	ReasonTimeout                = "Timeout"
)

// Metric types. The short and long spellings are interchangeable on the wire.
const (
	TypeCounter     = "c"
	TypeGauge       = "g"
	TypeCounterLong = "counter"
	TypeGaugeLong   = "gauge"
)

// MetricTypes is the list of all accepted metric type values.
var MetricTypes = []string{
	TypeCounter,
	TypeGauge,
	TypeCounterLong,
	TypeGaugeLong,
}

// Data is the datapoint carried by a Metric. It is a closed set:
// Number, Boolean, Hex or *Bitmask.
type Data interface {
	isData()
}

// Number is a numeric datapoint.
type Number float64

// Boolean is a boolean datapoint.
type Boolean bool

// Hex is a 0x-prefixed hexadecimal string datapoint.
type Hex string

func (Number) isData()   {}
func (Boolean) isData()  {}
func (Hex) isData()      {}
func (*Bitmask) isData() {}

// ToData converts a Go value into Data.
//
// Strings are normalized eagerly: a "0x" prefixed string is kept as Hex and
// checked at validation time, anything else is parsed as a float and becomes
// nil when it does not parse. Unsupported types also yield nil.
func ToData(v any) Data {
	switch val := v.(type) {
	case nil:
		return nil
	case Data:
		return val
	case Bitmask:
		return &val
	case string:
		return parseDataString(val)
	case bool:
		return Boolean(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil
		}
		return Number(f)
	}
	if f, ok := asNumber(v); ok {
		return Number(f)
	}
	return nil
}

func parseDataString(s string) Data {
	if strings.HasPrefix(s, hexPrefix) {
		return Hex(s)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return Number(f)
}

// AllowedScalar is a constraint (compile-time) for what we allow as tag values.
type AllowedScalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~bool |
		~string
}

// TagValue is a *runtime* interface (so it can be stored in a map with mixed types).
type TagValue interface {
	isTagValue()
	Any() any
	String() string

	json.Marshaler
}

// Scalar wraps an allowed scalar type.
// This is how we keep compile-time constraints while still using a runtime interface.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isTagValue() {}

// Any returns the wrapped value.
func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// Convenience constructors for common tag value types.
func TagString(v string) TagValue { return Scalar[string]{V: v} }
func TagInt(v int64) TagValue { return Scalar[int64]{V: v} }
func TagFloat(v float64) TagValue { return Scalar[float64]{V: v} }
func TagBool(v bool) TagValue { return Scalar[bool]{V: v} }

// ToTagValue converts a JSON scalar into a TagValue.
// It reports false for nil, objects, arrays, NaN, infinities and other values
// JSON cannot carry.
func ToTagValue(v any) (TagValue, bool) {
	switch val := v.(type) {
	case TagValue:
		return val, encodable(val)
	case string:
		return TagString(val), true
	case bool:
		return TagBool(val), true
	case int:
		return TagInt(int64(val)), true
	case int64:
		return TagInt(val), true
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return TagInt(i), true
		}
		f, err := val.Float64()
		if err != nil || !finite(f) {
			return nil, false
		}
		return TagFloat(f), true
	}
	if f, ok := asNumber(v); ok && finite(f) {
		return TagFloat(f), true
	}
	return nil, false
}

// encodable reports whether v is non-nil and marshals to JSON.
func encodable(v json.Marshaler) bool {
	if v == nil {
		return false
	}
	_, err := v.MarshalJSON()
	return err == nil
}

// finite reports whether f can be represented as a JSON number.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
