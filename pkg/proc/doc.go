// Package proc runs external commands on behalf of collectors.
//
// HasCommand and IsProcessRunning are typically used during discovery to
// decide whether a collector applies to the host:
//
//	if !proc.HasCommand("nginx") {
//	    d.SetActive(false).SetReason(measurement.NewReason().
//	        SetRecoverable(true).
//	        SetMsg("nginx is not installed").
//	        SetType(measurement.ReasonMissingCommand))
//	}
//
// Run executes a command line through the platform shell and returns its exit
// status and output. A non-zero exit is data, not an error; errors are
// reserved for commands that could not be started or timed out.
package proc
