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
	"math"
	"math/big"
	"strconv"
	"strings"
)

const hexPrefix = "0x"

// IsHex reports whether s is a canonical hexadecimal string: the "0x" prefix
// followed by lower-case digits without leading zeros, so that parsing and
// re-rendering the digits yields the same text. "0x0" is canonical, "0x00"
// and "0xFF" are not. Values a float64 cannot hold exactly, such as most
// above 2^53, are rejected.
func IsHex(s string) bool {
	digits, ok := strings.CutPrefix(s, hexPrefix)
	if !ok {
		return false
	}
	n, ok := new(big.Int).SetString(digits, 16)
	if !ok || n.Text(16) != digits {
		return false
	}
	// the value must also survive a trip through a float64
	f, acc := new(big.Float).SetInt(n).Float64()
	return acc == big.Exact && !math.IsInf(f, 0)
}

// ToHex renders n as a canonical hexadecimal string.
func ToHex(n int64) string {
	return hexPrefix + strconv.FormatInt(n, 16)
}

// HexOf returns n as Hex data.
func HexOf(n int64) Hex {
	return Hex(ToHex(n))
}
