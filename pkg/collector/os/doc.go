// Package os collects operating system health metrics on Linux hosts.
//
// The collector reads procfs directly and returns a measurement.Batch:
//
//   - load: 1m, 5m and 15m load averages keyed by window, with the
//     window length in seconds
//   - processes.running, processes.total: scheduling entity counts
//   - mem.*, swap.*: sizes from /proc/meminfo in bytes
//   - mem.available_ratio: MemAvailable divided by MemTotal
//   - kernel.tainted: the kernel taint flags as a hex mask
//
// Every metric carries the collector source and, when /etc/os-release is
// readable, the os and os_version tags.
//
// When MinAvailableRatio is set the batch also carries a memory event,
// warning when available memory drops below the ratio and clear otherwise.
// Both share a dedupe key so the warning resolves itself.
//
// # Usage
//
//	c := &os.Collector{MinAvailableRatio: 0.1}
//	batch, err := c.Collect(ctx)
//	if err != nil {
//	    return err
//	}
//	protocol.SendBatch(batch)
//
// Discover reports the load and memory moobs when /proc can be read, or an
// inactive result with a reason otherwise.
package os
