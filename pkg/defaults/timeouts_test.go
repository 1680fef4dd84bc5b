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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Collector timeouts
		{"CollectorTimeout", CollectorTimeout, 5 * time.Second, 30 * time.Second},
		{"CollectorSystemDTimeout", CollectorSystemDTimeout, 1 * time.Second, 30 * time.Second},

		// Process timeouts
		{"CommandTimeout", CommandTimeout, 5 * time.Second, 2 * time.Minute},
		{"CommandLookupTimeout", CommandLookupTimeout, 1 * time.Second, 15 * time.Second},

		// Protocol
		{"InputReadTimeout", InputReadTimeout, 1 * time.Second, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestLookupShorterThanCommand(t *testing.T) {
	if CommandLookupTimeout >= CommandTimeout {
		t.Errorf("CommandLookupTimeout (%v) should be less than CommandTimeout (%v)",
			CommandLookupTimeout, CommandTimeout)
	}
}

func TestMaxInputSize(t *testing.T) {
	if MaxInputSize < 1<<20 {
		t.Errorf("MaxInputSize (%d) should allow at least 1MiB of config", MaxInputSize)
	}
}
