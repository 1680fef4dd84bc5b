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

package protocol

import (
	"sync"

	"github.com/NVIDIA/collector-sdk/pkg/measurement"
)

var (
	defaultMu        sync.RWMutex
	defaultTransport = New()
)

// Default returns the process-wide Transport bound to stdin and stdout.
func Default() *Transport {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultTransport
}

// SetDefault replaces the process-wide Transport and returns the previous one.
func SetDefault(t *Transport) *Transport {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultTransport
	defaultTransport = t
	return prev
}

// Log writes a log line through the default Transport.
func Log(level Level, msg any) error { return Default().Log(level, msg) }

func Debug(msg any) error { return Default().Debug(msg) }
func Info(msg any) error  { return Default().Info(msg) }
func Warn(msg any) error  { return Default().Warn(msg) }
func Error(msg any) error { return Default().Error(msg) }

// SendMetrics writes metrics through the default Transport.
func SendMetrics(metrics ...*measurement.Metric) error {
	return Default().SendMetrics(metrics...)
}

// SendEvents writes events through the default Transport.
func SendEvents(events ...*measurement.Event) error {
	return Default().SendEvents(events...)
}

// SendBatch writes a batch through the default Transport.
func SendBatch(b *measurement.Batch) error {
	return Default().SendBatch(b)
}

// SendDiscovery writes a discovery result through the default Transport.
func SendDiscovery(d *measurement.DiscoveryResult) error {
	return Default().SendDiscovery(d)
}

func ExportConfig(conf any) error { return Default().ExportConfig(conf) }
func SendResult(datum any) error  { return Default().SendResult(datum) }

// Config returns the injected config object from the default Transport.
func Config() map[string]any { return Default().Config() }

// Credentials returns the injected credentials object from the default Transport.
func Credentials() map[string]any { return Default().Credentials() }

func DecodeConfig(v any) error      { return Default().DecodeConfig(v) }
func DecodeCredentials(v any) error { return Default().DecodeCredentials(v) }
