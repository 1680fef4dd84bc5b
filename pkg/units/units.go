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

// Package units converts human readable sizes such as "10Mb" or "5 KiB" to
// byte counts.
package units

import (
	"math"
	"strings"
	"unicode"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

// binary multiplier suffixes understood by resource.Quantity
var suffixes = map[string]string{
	"b":     "",
	"bi":    "",
	"bytes": "",
	"k":     "Ki",
	"kb":    "Ki",
	"ki":    "Ki",
	"kib":   "Ki",
	"m":     "Mi",
	"mb":    "Mi",
	"mi":    "Mi",
	"mib":   "Mi",
	"g":     "Gi",
	"gb":    "Gi",
	"gi":    "Gi",
	"gib":   "Gi",
}

// ParseHumanSize returns the number of bytes in text, rounded to the nearest
// integer. Suffixes b, k, m and g (with optional b, i or ib, any case) use
// binary multipliers; a rate suffix "ps" is ignored and an unknown suffix
// means bytes. Spaces are ignored.
func ParseHumanSize(text string) (int64, error) {
	s := strings.Replace(text, "ps", "", 1)

	var num, suffix strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r) || r == '.':
			num.WriteRune(r)
		case r == ' ':
		default:
			suffix.WriteRune(r)
		}
	}
	if num.Len() == 0 {
		return 0, errors.NewWithContext(errors.ErrCodeInvalidRequest, "size has no numeric value",
			map[string]any{"size": text})
	}

	q, err := resource.ParseQuantity(num.String() + suffixes[strings.ToLower(suffix.String())])
	if err != nil {
		return 0, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid size", err,
			map[string]any{"size": text})
	}
	return int64(math.Round(q.AsApproximateFloat64())), nil
}
