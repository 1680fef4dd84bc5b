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

package proc

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/NVIDIA/collector-sdk/pkg/defaults"
	"github.com/NVIDIA/collector-sdk/pkg/errors"
)

// Result is the outcome of a command run through the platform shell.
type Result struct {
	ExitStatus int    `json:"status"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
}

// Success reports whether the command exited with status 0.
func (r *Result) Success() bool {
	return r.ExitStatus == 0
}

func IsWindows() bool { return runtime.GOOS == "windows" }
func IsLinux() bool   { return runtime.GOOS == "linux" }
func IsMacOS() bool   { return runtime.GOOS == "darwin" }

// HasCommand reports whether name is an executable path or a command on PATH.
func HasCommand(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}

// IsProcessRunning reports whether a process matching name is running,
// using pgrep, or tasklist on Windows.
func IsProcessRunning(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, errors.New(errors.ErrCodeInvalidRequest, "process name cannot be empty")
	}
	if IsWindows() {
		return taskRunning(ctx, name)
	}

	pgrep, err := exec.LookPath("pgrep")
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeNotFound, "pgrep not found in PATH", err)
	}

	ctx, cancel := withDefaultTimeout(ctx, defaults.CommandLookupTimeout)
	defer cancel()

	err = exec.CommandContext(ctx, pgrep, "--", name).Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	if ctx.Err() != nil {
		return false, errors.Wrap(errors.ErrCodeTimeout, "pgrep timed out", ctx.Err())
	}
	return false, errors.WrapWithContext(errors.ErrCodeInternal, "failed to run pgrep", err,
		map[string]any{"process": name})
}

func taskRunning(ctx context.Context, name string) (bool, error) {
	image := strings.TrimSuffix(name, ".exe") + ".exe"
	res, err := Run(ctx, "TASKLIST", "/FI", `"STATUS eq RUNNING"`, "/FI", fmt.Sprintf(`"IMAGENAME eq %s"`, image), "/NH")
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(res.Stdout), strings.ToLower(image)), nil
}

// Run executes command with args through the platform shell (sh -c, or
// cmd /C on Windows). Arguments are joined with spaces, so shell syntax is
// honoured. A non-zero exit status is reported in the Result, not as an
// error. Without a deadline on ctx, defaults.CommandTimeout applies.
func Run(ctx context.Context, command string, args ...string) (*Result, error) {
	if strings.TrimSpace(command) == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "command cannot be empty")
	}

	ctx, cancel := withDefaultTimeout(ctx, defaults.CommandTimeout)
	defer cancel()

	line := strings.Join(append([]string{command}, args...), " ")
	var cmd *exec.Cmd
	if IsWindows() {
		cmd = exec.CommandContext(ctx, "cmd", "/C", line)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", line)
	}
	// children of the shell may keep the output pipes open after it is killed
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if ctx.Err() != nil {
		return res, errors.WrapWithContext(errors.ErrCodeTimeout, "command timed out", ctx.Err(),
			map[string]any{"command": command})
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !stderrors.As(err, &exitErr) {
			return res, errors.WrapWithContext(errors.ErrCodeInternal, "failed to run command", err,
				map[string]any{"command": command})
		}
		res.ExitStatus = exitErr.ExitCode()
	}

	slog.Debug("command completed",
		slog.String("command", command),
		slog.Int("status", res.ExitStatus),
		slog.Duration("duration", time.Since(start)))
	return res, nil
}

// MarDir returns the directory holding the running collector executable.
func MarDir() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Dir(os.Args[0])
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func withDefaultTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
