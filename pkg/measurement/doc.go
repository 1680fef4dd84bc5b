// Package measurement defines the telemetry records a collector reports to the
// monitoring platform and the rules they must satisfy before being sent.
//
// # Records
//
//   - Metric: a named datapoint (Number, Boolean, Hex or *Bitmask) with optional
//     source, key, time, tags and type (counter or gauge)
//   - Event: a discrete occurrence with a severity, source, check and description
//   - DiscoveryResult: whether the collector applies to the host, the monitored
//     objects ("moobs") it reports on, and a Reason when it does not
//   - Reason: why discovery did not activate the collector
//   - Bitmask: parallel lists of flag names and boolean values
//
// # Building Records
//
// Setters return the receiver so records can be built fluently:
//
//	m := measurement.NewMetric().
//	    SetName("load.1m").
//	    SetSource("web-01").
//	    SetData(0.42).
//	    Gauge()
//
//	e := measurement.NewEvent().
//	    SetSeverity("Major").
//	    SetSource("web-01").
//	    SetCheck("disk").
//	    SetDescription("/var is 95% full")
//
// String data is normalized when set: "3.14" becomes Number(3.14), "0x1f" is
// kept as Hex, and anything that does not parse becomes nil and fails
// validation.
//
// # Validation
//
// Validate checks fields in wire order and returns the first failure as a
// *errors.StructuredError with code ErrCodeInvalidRequest and the offending
// field in its context. Validate never modifies the record and may be called
// any number of times.
//
//	if err := m.Validate(); err != nil {
//	    slog.Debug("dropping metric", "field", errors.Field(err), "error", err)
//	}
//
// # Decoding
//
// MetricFrom and EventFrom build records from generic JSON objects, applying
// only the keys present. Values of the wrong JSON type do not fail decoding;
// they are reported by Validate instead. Both types implement json.Unmarshaler
// on top of these.
//
// # Helpers
//
// IsHex and ToHex work with canonical hexadecimal strings. FlattenJSON turns a
// nested JSON document into key/value pairs for its numeric leaves. DedupeKey
// derives stable event dedupe keys.
package measurement
