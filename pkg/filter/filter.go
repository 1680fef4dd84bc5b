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

// Package filter matches names such as units, devices or mount points
// against user supplied filter lists.
//
// A pattern is either a literal, matched by equality, a regular expression
// written as /re/, or a negated expression written as !/re/ which matches
// values the expression does not match.
package filter

import (
	"log/slog"
	"regexp"
	"strings"
)

// Pattern is a single compiled filter pattern.
type Pattern struct {
	raw     string
	re      *regexp.Regexp
	negated bool
}

// Compile parses a pattern. Literals never fail to compile.
func Compile(pattern string) (*Pattern, error) {
	expr, negated, isRegex := splitPattern(pattern)
	if !isRegex {
		return &Pattern{raw: pattern}, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Pattern{raw: pattern, re: re, negated: negated}, nil
}

// Match reports whether value satisfies the pattern.
func (p *Pattern) Match(value string) bool {
	if p.re == nil {
		return value == p.raw
	}
	return p.re.MatchString(value) != p.negated
}

func (p *Pattern) String() string {
	return p.raw
}

// splitPattern returns the expression inside /re/ or !/re/.
func splitPattern(pattern string) (expr string, negated, isRegex bool) {
	s := pattern
	if strings.HasPrefix(s, "!") {
		negated = true
		s = s[1:]
	}
	if len(s) < 2 || !strings.HasPrefix(s, "/") || !strings.HasSuffix(s, "/") {
		return "", false, false
	}
	return s[1 : len(s)-1], negated, true
}

// MatchesAny reports whether value matches at least one pattern. Patterns
// that do not compile are logged and skipped.
func MatchesAny(value string, patterns []string) bool {
	for _, raw := range patterns {
		p, err := Compile(raw)
		if err != nil {
			slog.Warn("failed to compile filter", "pattern", raw, "error", err)
			continue
		}
		if p.Match(value) {
			slog.Debug("value matches filter", "value", value, "pattern", raw)
			return true
		}
	}
	return false
}

// Strings returns the values that match at least one pattern, in order.
func Strings(values, patterns []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if MatchesAny(v, patterns) {
			out = append(out, v)
		}
	}
	return out
}

// Pass reports whether value should be kept given a list of exclusion
// expressions: false when value matches any of them, true otherwise or when
// the list is empty. An invalid expression list excludes nothing.
func Pass(value string, exclusions []string) bool {
	if len(exclusions) == 0 {
		return true
	}
	re, err := regexp.Compile(strings.Join(exclusions, "|"))
	if err != nil {
		slog.Warn("failed to compile exclusion filters", "filters", exclusions, "error", err)
		return true
	}
	return !re.MatchString(value)
}
