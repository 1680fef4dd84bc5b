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
	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

// Bitmask is a set of named boolean flags carried as a single metric datapoint.
// Keys and Values are parallel lists.
type Bitmask struct {
	Keys   []string `json:"keys"`
	Values []bool   `json:"values"`

	// set when decoded keys or values held non-string or non-boolean elements
	badKeys   bool
	badValues bool
}

// NewBitmask returns an empty Bitmask.
func NewBitmask() *Bitmask {
	return &Bitmask{}
}

// SetKeys replaces the key list.
func (b *Bitmask) SetKeys(keys ...string) *Bitmask {
	b.Keys = keys
	b.badKeys = false
	return b
}

// SetValues replaces the value list.
func (b *Bitmask) SetValues(values ...bool) *Bitmask {
	b.Values = values
	b.badValues = false
	return b
}

// AddValue appends a key and its flag.
func (b *Bitmask) AddValue(key string, value bool) *Bitmask {
	b.Keys = append(b.Keys, key)
	b.Values = append(b.Values, value)
	return b
}

// Len returns the number of flags.
func (b *Bitmask) Len() int {
	return len(b.Keys)
}

// Validate checks the bitmask is well formed. The structural check comes first,
// then element types.
func (b *Bitmask) Validate() error {
	if b == nil || len(b.Keys) == 0 || len(b.Values) == 0 || len(b.Keys) != len(b.Values) {
		return errors.InvalidField("value",
			"A Bitmask `value` object must contain `keys` and `values` lists of equal length")
	}
	if b.badKeys {
		return errors.InvalidField("keys", "Bitmask `keys` must be strings")
	}
	if b.badValues {
		return errors.InvalidField("values", "Bitmask `values` must be booleans")
	}
	return nil
}

// BitmaskFrom decodes a generic JSON object with "keys" and "values" members.
// Elements of the wrong type are kept as zero values and reported by Validate.
func BitmaskFrom(src map[string]any) *Bitmask {
	b := NewBitmask()
	if raw, ok := src["keys"]; ok {
		b.Keys, b.badKeys = decodeList(raw, asString)
	}
	if raw, ok := src["values"]; ok {
		b.Values, b.badValues = decodeList(raw, asBool)
	}
	return b
}

// decodeList converts a JSON array element by element. A non-array yields nil.
// The second result reports whether any element had the wrong type.
func decodeList[T any](raw any, conv func(any) (T, bool)) ([]T, bool) {
	switch arr := raw.(type) {
	case []T:
		return arr, false
	case []any:
		out := make([]T, len(arr))
		bad := false
		for i, e := range arr {
			v, ok := conv(e)
			if !ok {
				bad = true
				continue
			}
			out[i] = v
		}
		return out, bad
	default:
		return nil, false
	}
}
