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

import "time"

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout is the default timeout for a full collection pass.
	// Collectors should respect parent context deadlines when shorter.
	CollectorTimeout = 10 * time.Second

	// CollectorSystemDTimeout is the timeout for systemd D-Bus queries in collectors.
	CollectorSystemDTimeout = 5 * time.Second
)

// Process timeouts for shell invocations made on behalf of a collector.
const (
	// CommandTimeout is the default timeout for proc.Run invocations.
	CommandTimeout = 30 * time.Second

	// CommandLookupTimeout bounds command existence and process checks.
	CommandLookupTimeout = 5 * time.Second
)

// Protocol limits for the stdin/stdout framing.
const (
	// InputReadTimeout bounds the one-time read of injected config from stdin.
	InputReadTimeout = 10 * time.Second

	// MaxInputSize is the largest config/credentials document accepted on stdin.
	MaxInputSize = 4 << 20
)

// Scheduling defaults.
const (
	// CarouselMinStep is the smallest spacing allowed between carousel calls.
	CarouselMinStep = 10 * time.Millisecond
)
