// Package systemd reports the state of systemd units over D-Bus.
//
// For each configured unit the collector emits:
//
//   - systemd.unit.state: a bitmask of loaded, active, failed and running
//   - systemd.unit.restarts: the NRestarts counter of service units
//   - systemd.unit.memory: MemoryCurrent of service units, when accounting
//     is enabled
//
// and an event whose severity follows the unit's active state: clear when
// active, critical when failed and minor otherwise. Events for one unit share
// a dedupe key so a recovery clears the alert.
//
// The collector connects to the system bus on every run and gives up after
// defaults.CollectorSystemDTimeout.
//
//	c := &systemd.Collector{Source: host, Units: []string{"kubelet.service"}}
//	batch, err := c.Collect(ctx)
package systemd
