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

// Package collector runs host collectors and combines their output.
//
// # Overview
//
// A Collector gathers metrics and events from one source and returns them as a
// measurement.Batch. Collectors that can tell whether they apply to the host
// also implement Discoverer.
//
//	type Collector interface {
//	    Collect(ctx context.Context) (*measurement.Batch, error)
//	}
//
//	type Discoverer interface {
//	    Discover(ctx context.Context) (*measurement.DiscoveryResult, error)
//	}
//
// # Implementations
//
//   - os: load, memory and kernel taint state from procfs
//   - systemd: unit state, restarts and memory over D-Bus
//   - process: process liveness and shell health checks
//   - gatherer: any Prometheus gatherer, such as a client_golang registry
//
// # Running Collectors
//
// Gather runs collectors concurrently with a per-collector timeout and merges
// the results. A failing collector is logged and reported in the joined error
// while the rest of the batch is kept:
//
//	f := collector.NewDefaultFactory()
//	batch, err := collector.Gather(ctx,
//	    collector.Named{Name: "os", Collector: f.CreateOSCollector()},
//	    collector.Named{Name: "systemd", Collector: f.CreateSystemDCollector()},
//	)
//	if err != nil {
//	    protocol.Warn(err.Error())
//	}
//	protocol.SendBatch(batch)
//
// Discover combines the discovery results of the same collectors into the
// single result a collector reports on its discover command.
//
// # Factory
//
// Factory creates collectors with their settings so the entrypoint and tests
// can swap implementations. DefaultFactory uses the host name as source.
package collector
