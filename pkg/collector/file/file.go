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

package file

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

const defaultMaxSize = 1 << 20

// Option configures a Parser.
type Option func(*Parser)

// Parser reads /proc style text files: entries split by a delimiter,
// optionally as key/value pairs.
type Parser struct {
	delimiter       string
	maxSize         int
	skipComments    bool
	kvDelimiter     string
	vDefault        string
	vTrimChars      string
	skipEmptyValues bool
}

// WithDelimiter sets the entry delimiter. Default is newline.
func WithDelimiter(delim string) Option {
	return func(p *Parser) {
		p.delimiter = delim
	}
}

// WithMaxSize sets the largest input accepted, in bytes. Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments drops entries starting with '#'. Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key/value separator used by Map. Default is "=".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// WithVDefault sets the value given to keys without one.
func WithVDefault(vDefault string) Option {
	return func(p *Parser) {
		p.vDefault = vDefault
	}
}

// WithVTrimChars sets characters trimmed from both ends of values, e.g. quotes.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipEmptyValues drops keys whose value ends up empty.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		delimiter:    "\n",
		maxSize:      defaultMaxSize,
		skipComments: true,
		kvDelimiter:  "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetLines reads path and returns its trimmed, non-empty entries.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "file path cannot be empty")
	}
	f, err := os.Open(path)
	if err != nil {
		code := errors.ErrCodeInternal
		if os.IsNotExist(err) {
			code = errors.ErrCodeNotFound
		} else if os.IsPermission(err) {
			code = errors.ErrCodeUnauthorized
		}
		return nil, errors.WrapWithContext(code, "failed to open file", err, map[string]any{"path": path})
	}
	defer f.Close()

	lines, err := p.Lines(f)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse file", err,
			map[string]any{"path": path})
	}
	return lines, nil
}

// GetMap reads path and returns its entries as key/value pairs.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}
	return p.toMap(lines), nil
}

// GetFields reads path and returns its whitespace separated fields.
func (p *Parser) GetFields(path string) ([]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}
	return strings.Fields(strings.Join(lines, " ")), nil
}

// Lines splits r into trimmed, non-empty entries.
func (p *Parser) Lines(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(io.LimitReader(r, int64(p.maxSize)+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to read content", err)
	}
	if len(b) > p.maxSize {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "content exceeds maximum size",
			map[string]any{"maxSize": p.maxSize})
	}
	if !utf8.Valid(b) {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "content is not valid UTF-8")
	}

	parts := bytes.Split(b, []byte(p.delimiter))
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		entry := strings.TrimSpace(string(part))
		if entry == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(entry, "#") {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// Map splits r into key/value pairs.
func (p *Parser) Map(r io.Reader) (map[string]string, error) {
	lines, err := p.Lines(r)
	if err != nil {
		return nil, err
	}
	return p.toMap(lines), nil
}

func (p *Parser) toMap(lines []string) map[string]string {
	out := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, found := strings.Cut(line, p.kvDelimiter)
		key = strings.TrimSpace(key)
		if !found {
			value = p.vDefault
		} else {
			value = strings.TrimSpace(value)
			if p.vTrimChars != "" {
				value = strings.Trim(value, p.vTrimChars)
			}
		}
		if p.skipEmptyValues && value == "" {
			slog.Debug("skipping entry with empty value", "key", key)
			continue
		}
		out[key] = value
	}
	return out
}
