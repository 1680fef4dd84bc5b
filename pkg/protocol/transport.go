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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
	"github.com/NVIDIA/collector-sdk/pkg/measurement"
)

// Type tags the kind of record carried by an output line.
type Type string

const (
	TypeLog       Type = "log"
	TypeConfig    Type = "config"
	TypeResult    Type = "result"
	TypeDiscovery Type = "discovery"
	TypeMetrics   Type = "metrics"
	TypeEvents    Type = "events"
)

// Level is the severity of a log line.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type logLine struct {
	Type  Type   `json:"type"`
	Level Level  `json:"level"`
	Msg   string `json:"msg"`
}

type valueLine struct {
	Type  Type `json:"type"`
	Value any  `json:"value"`
}

// Transport writes tagged JSON lines for the parent process and reads the
// configuration document it injects. It is safe for concurrent use.
type Transport struct {
	mu  sync.Mutex
	out io.Writer

	in       io.Reader
	inFile   string
	loadOnce sync.Once
	input    document
}

// Option configures a Transport.
type Option func(*Transport)

// WithOutput sets where lines are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(t *Transport) {
		t.out = w
	}
}

// WithInput sets where the injected document is read from. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(t *Transport) {
		t.in = r
	}
}

// WithInputFile reads the injected document from a YAML or JSON file instead
// of standard input. Useful when running a collector by hand.
func WithInputFile(path string) Option {
	return func(t *Transport) {
		t.inFile = path
	}
}

// New creates a Transport.
func New(opts ...Option) *Transport {
	t := &Transport{}
	for _, opt := range opts {
		opt(t)
	}
	if t.out == nil {
		t.out = os.Stdout
	}
	if t.in == nil {
		t.in = os.Stdin
	}
	return t
}

// Log writes a log line. Non-string messages are JSON encoded first.
func (t *Transport) Log(level Level, msg any) error {
	return t.write(logLine{Type: TypeLog, Level: level, Msg: messageText(msg)})
}

func (t *Transport) Debug(msg any) error { return t.Log(LevelDebug, msg) }
func (t *Transport) Info(msg any) error  { return t.Log(LevelInfo, msg) }
func (t *Transport) Warn(msg any) error  { return t.Log(LevelWarn, msg) }
func (t *Transport) Error(msg any) error { return t.Log(LevelError, msg) }

// SendMetrics validates each metric and writes the valid ones as a single
// metrics line. Invalid or nil metrics are dropped with a debug log. Nothing
// is written when no metric survives.
func (t *Transport) SendMetrics(metrics ...*measurement.Metric) error {
	valid := make([]*measurement.Metric, 0, len(metrics))
	for _, m := range metrics {
		if m == nil {
			if err := t.Debug("Received element that was not a `Metric`, skipping it"); err != nil {
				return err
			}
			continue
		}
		if err := m.Validate(); err != nil {
			if werr := t.Debug(fmt.Sprintf("Received malformed metric - %s, skipping", errors.Message(err))); werr != nil {
				return werr
			}
			continue
		}
		valid = append(valid, m)
	}
	if len(valid) == 0 {
		return nil
	}
	return t.write(valueLine{Type: TypeMetrics, Value: valid})
}

// SendEvents validates each event and writes the valid ones as a single
// events line. Unlike SendMetrics, the line is written even when empty.
func (t *Transport) SendEvents(events ...*measurement.Event) error {
	valid := make([]*measurement.Event, 0, len(events))
	for _, e := range events {
		if e == nil {
			if err := t.Debug("Received element that was not an `Event`, skipping it"); err != nil {
				return err
			}
			continue
		}
		if err := e.Validate(); err != nil {
			if werr := t.Debug(fmt.Sprintf("Received malformed event - %s, skipping", errors.Message(err))); werr != nil {
				return werr
			}
			continue
		}
		valid = append(valid, e)
	}
	return t.write(valueLine{Type: TypeEvents, Value: valid})
}

// SendBatch writes the metrics of b, then its events when it has any.
func (t *Transport) SendBatch(b *measurement.Batch) error {
	if b == nil {
		return nil
	}
	if err := t.SendMetrics(b.Metrics...); err != nil {
		return err
	}
	if len(b.Events) == 0 {
		return nil
	}
	return t.SendEvents(b.Events...)
}

// SendDiscovery writes a discovery line. An invalid result is not sent and
// is reported with an error log.
func (t *Transport) SendDiscovery(d *measurement.DiscoveryResult) error {
	if d == nil {
		return t.Debug("Received null discovery result")
	}
	if err := d.Validate(); err != nil {
		return t.Error(fmt.Sprintf("Received malformed Discovery Result - %s, cannot send", errors.Message(err)))
	}
	return t.write(valueLine{Type: TypeDiscovery, Value: d})
}

// ExportConfig hands configuration back to the parent process, which
// persists it for the next run.
func (t *Transport) ExportConfig(conf any) error {
	if isNil(conf) {
		return t.Debug("Received null conf, skipping")
	}
	return t.write(valueLine{Type: TypeConfig, Value: jsonValue(conf)})
}

// SendResult writes an arbitrary result value.
func (t *Transport) SendResult(datum any) error {
	if isNil(datum) {
		return t.Debug("Received null datum, skipping")
	}
	return t.write(valueLine{Type: TypeResult, Value: jsonValue(datum)})
}

// write encodes v and writes it as one line with a single Write call.
func (t *Transport) write(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode line", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.out.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, "failed to write line", err)
	}
	return nil
}

func messageText(msg any) string {
	switch m := msg.(type) {
	case string:
		return m
	case error:
		return m.Error()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Sprintf("%v", msg)
	}
	return string(data)
}

// jsonValue embeds strings and byte slices holding valid JSON as JSON;
// everything else is used as-is.
func jsonValue(v any) any {
	switch val := v.(type) {
	case json.RawMessage:
		if json.Valid(val) {
			return val
		}
		return string(val)
	case []byte:
		if json.Valid(val) {
			return json.RawMessage(val)
		}
		return string(val)
	case string:
		if json.Valid([]byte(val)) {
			return json.RawMessage(val)
		}
		return val
	default:
		return v
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	//nolint:exhaustive // only nil-able kinds matter here
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
