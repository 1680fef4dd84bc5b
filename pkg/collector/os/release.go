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

package os

import (
	"context"
	"log/slog"
	"os"

	"github.com/NVIDIA/collector-sdk/pkg/collector/file"
)

var (
	filePathReleasePrimary  = "/etc/os-release"
	filePathReleaseFallback = "/usr/lib/os-release"
	fileKVDelRelease        = "="
)

// release fields copied onto metric tags
var releaseTagNames = map[string]string{
	"ID":         "os",
	"VERSION_ID": "os_version",
}

// releaseTags reads the OS release file and returns the tags stamped on every
// metric. Falls back to /usr/lib/os-release when /etc/os-release is missing.
// A missing or unreadable file yields no tags.
//
//	ID=ubuntu
//	VERSION_ID="22.04"
func (c *Collector) releaseTags(ctx context.Context) map[string]string {
	if ctx.Err() != nil {
		return nil
	}

	root := filePathReleasePrimary
	if _, err := os.Stat(root); os.IsNotExist(err) {
		root = filePathReleaseFallback
	}

	parser := file.NewParser(
		file.WithKVDelimiter(fileKVDelRelease),
		// Remove surrounding quotes if any
		file.WithVTrimChars(`"'`),
		file.WithSkipComments(true),
		// Lines without '=' parse to empty values
		file.WithSkipEmptyValues(true),
	)

	params, err := parser.GetMap(root)
	if err != nil {
		slog.Debug("os release unavailable", "path", root, "error", err)
		return nil
	}

	tags := make(map[string]string, len(releaseTagNames))
	for key, tag := range releaseTagNames {
		if v, ok := params[key]; ok {
			tags[tag] = v
		}
	}
	return tags
}
