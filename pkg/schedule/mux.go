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

package schedule

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/urfave/cli/v3"
)

// Func is a collector entrypoint. args holds the command line arguments that
// follow the entrypoint name.
type Func func(ctx context.Context, args []string) error

// Option configures a Mux.
type Option func(*Mux)

// WithExit replaces os.Exit, which Mux calls after an entrypoint returns.
func WithExit(exit func(code int)) Option {
	return func(m *Mux) {
		m.exit = exit
	}
}

// Mux dispatches a multi-entrypoint collector to the function named by its
// first argument, so a single executable can be scheduled several ways:
//
//	sysmar discover
//	sysmar collect --fast
type Mux struct {
	name     string
	commands []*cli.Command
	exit     func(code int)
}

// NewMux creates a Mux for the executable called name.
func NewMux(name string, opts ...Option) *Mux {
	m := &Mux{
		name: name,
		exit: os.Exit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds an entrypoint. Registering a name twice replaces the first.
func (m *Mux) Register(name string, fn Func) *Mux {
	cmd := &cli.Command{
		Name:            name,
		SkipFlagParsing: true,
		HideHelp:        true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return fn(ctx, cmd.Args().Slice())
		},
	}
	m.commands = slices.DeleteFunc(m.commands, func(c *cli.Command) bool { return c.Name == name })
	m.commands = append(m.commands, cmd)
	return m
}

// Names returns the registered entrypoint names.
func (m *Mux) Names() []string {
	names := make([]string, 0, len(m.commands))
	for _, c := range m.commands {
		names = append(names, c.Name)
	}
	return names
}

// Run looks at args[1] (args is typically os.Args). When it names a
// registered entrypoint, the entrypoint runs with the remaining arguments and
// the process exits: status 0 on success, 1 on error. When nothing matches,
// Run returns false and the caller carries on.
func (m *Mux) Run(ctx context.Context, args []string) bool {
	if len(args) < 2 || !slices.Contains(m.Names(), args[1]) {
		return false
	}

	root := &cli.Command{
		Name:            m.name,
		Commands:        m.commands,
		HideHelp:        true,
		HideHelpCommand: true,
		ExitErrHandler:  func(context.Context, *cli.Command, error) {},
	}

	slog.Debug("running entrypoint", "name", args[1], "args", args[2:])
	if err := root.Run(ctx, args); err != nil {
		slog.Error("entrypoint failed", "name", args[1], "error", err)
		m.exit(1)
		return true
	}
	m.exit(0)
	return true
}
