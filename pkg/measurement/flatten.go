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
	"fmt"
	"slices"
	"strconv"
)

// numberLongMarker is the string value BSON exports use for 64-bit integers.
const numberLongMarker = "$numberlong"

// FlattenJSON walks a nested JSON object and calls fn for every numeric leaf
// with its path joined by "_". Arrays are walked with their indexes as keys.
// A string leaf equal to "$numberlong" is reported under its own key, not the
// joined path. Object keys are visited in sorted order.
func FlattenJSON[T any](obj map[string]any, fn func(key string, value any) T) []T {
	var out []T
	flattenInto(obj, "", fn, &out)
	return out
}

func flattenInto[T any](val any, prefix string, fn func(string, any) T, out *[]T) {
	switch v := val.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			flattenLeaf(v[k], k, prefix, fn, out)
		}
	case []any:
		for i, e := range v {
			flattenLeaf(e, strconv.Itoa(i), prefix, fn, out)
		}
	}
}

func flattenLeaf[T any](val any, key, prefix string, fn func(string, any) T, out *[]T) {
	if s, ok := val.(string); ok && s == numberLongMarker {
		*out = append(*out, fn(key, s))
		return
	}
	path := joinKey(prefix, key)
	switch v := val.(type) {
	case map[string]any, []any:
		flattenInto(v, path, fn, out)
	default:
		if _, ok := asNumber(v); ok {
			*out = append(*out, fn(path, v))
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", prefix, key)
}
