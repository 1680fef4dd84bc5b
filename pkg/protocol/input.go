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
	"context"
	"encoding/json"
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/collector-sdk/pkg/defaults"
	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

const parseWarning = "Unable to parse collector config via stdin"

// document is the injected input: {"config": {...}, "credentials": {...}}.
type document struct {
	config      map[string]any
	credentials map[string]any
}

// Config returns the "config" object of the injected document. The input is
// read once, on the first call to Config or Credentials. Missing or
// malformed input yields an empty map. Each call returns a shallow copy.
func (t *Transport) Config() map[string]any {
	t.load()
	return maps.Clone(t.input.config)
}

// Credentials returns a shallow copy of the "credentials" object of the
// injected document.
func (t *Transport) Credentials() map[string]any {
	t.load()
	return maps.Clone(t.input.credentials)
}

// DecodeConfig decodes the config object into v.
func (t *Transport) DecodeConfig(v any) error {
	return remarshal(t.Config(), v)
}

// DecodeCredentials decodes the credentials object into v.
func (t *Transport) DecodeCredentials(v any) error {
	return remarshal(t.Credentials(), v)
}

func (t *Transport) load() {
	t.loadOnce.Do(func() {
		raw, err := t.readInput()
		if err != nil {
			_ = t.Warn(parseWarning)
			raw = nil
		}
		t.input = document{
			config:      member(raw, "config"),
			credentials: member(raw, "credentials"),
		}
	})
}

func (t *Transport) readInput() (map[string]any, error) {
	if t.inFile != "" {
		return readFile(t.inFile)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaults.InputReadTimeout)
	defer cancel()

	data, err := readAll(ctx, io.LimitReader(t.in, defaults.MaxInputSize))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no input provided")
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse input", err)
	}
	obj, _ := doc.(map[string]any)
	return obj, nil
}

// readAll reads r to EOF, giving up when ctx is done. A reader left blocked
// after a timeout is abandoned.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r)
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeTimeout, "timed out reading input", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read input", res.err)
		}
		return res.data, nil
	}
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to read input file", err,
			map[string]any{"path": path})
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse input file", err,
			map[string]any{"path": path})
	}
	return doc, nil
}

// member returns doc[key] when it is an object, else an empty map.
func member(doc map[string]any, key string) map[string]any {
	if obj, ok := doc[key].(map[string]any); ok && obj != nil {
		return obj
	}
	return map[string]any{}
}

func remarshal(src map[string]any, v any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode input", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode input", err)
	}
	return nil
}
