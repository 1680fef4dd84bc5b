// Package protocol implements the line protocol between a collector and the
// monitoring platform process that runs it.
//
// # Output
//
// Every record is written to standard output as one JSON object per line,
// tagged with its type:
//
//	{"type":"log","level":"debug","msg":"..."}
//	{"type":"metrics","value":[{...},{...}]}
//	{"type":"events","value":[{...}]}
//	{"type":"discovery","value":{"moobs":["db1"],"active":true}}
//	{"type":"config","value":{...}}
//	{"type":"result","value":...}
//
// SendMetrics and SendEvents drop invalid records with a debug log and send
// the rest. SendMetrics writes nothing when no metric survives; SendEvents
// always writes its line, even with an empty value. SendDiscovery refuses an
// invalid result as a whole and logs at error level.
//
// # Input
//
// The parent process writes a single JSON document to standard input:
//
//	{"config": {...}, "credentials": {...}}
//
// It is read once, on the first call to Config or Credentials, and cached.
// Malformed or missing input logs a warning and both accessors return empty
// maps. For local runs WithInputFile reads the document from a YAML or JSON
// file instead.
//
// # Usage
//
//	protocol.SendMetrics(
//	    measurement.NewMetric().SetName("load.1m").SetData(0.42),
//	)
//
// Tests inject a buffer:
//
//	var buf bytes.Buffer
//	t := protocol.New(protocol.WithOutput(&buf), protocol.WithInput(strings.NewReader(`{}`)))
//
// NewHandler adapts a Transport to log/slog so collector code can log with
// the standard logger and have records framed as log lines.
package protocol
