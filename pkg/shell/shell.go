// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package shell runs child processes and collects their results.
package shell

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os/exec"
	"strings"
	"time"

	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
)

// Interpreter is the shell used to run command lines.
const Interpreter = "/bin/sh"

// CommandResult is the completed-process record of one child.
type CommandResult struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Command describes a child process before it is run.
type Command struct {
	name   string
	args   []string
	input  string
	stdout io.Writer
	stderr io.Writer
}

// NewCommand prepares name with args; nothing is started until Execute.
func NewCommand(name string, args ...string) *Command {
	return &Command{name: name, args: args}
}

// NewShellCommand prepares a full command line to be interpreted by /bin/sh.
func NewShellCommand(line string) *Command {
	return NewCommand(Interpreter, "-c", line)
}

// SetInput feeds s to the child's stdin.
func (c *Command) SetInput(s string) {
	c.input = s
}

// Stream copies the child's output to stdout and stderr as it is produced,
// in addition to capturing it.
func (c *Command) Stream(stdout, stderr io.Writer) {
	c.stdout = stdout
	c.stderr = stderr
}

// String returns the command line as it would be typed.
func (c *Command) String() string {
	if c.name == Interpreter && len(c.args) == 2 && c.args[0] == "-c" {
		return c.args[1]
	}
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Execute runs the command to completion. A child that cannot be started is
// reported with exit code -1 and the start error in Stderr.
func (c *Command) Execute() CommandResult {
	cmd := exec.Command(c.name, c.args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if c.stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, c.stdout)
	}
	if c.stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, c.stderr)
	}
	if c.input != "" {
		cmd.Stdin = strings.NewReader(c.input)
	}

	logging.Debug("Executing: %s", c.String())
	res := CommandResult{Command: c.String()}
	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
		res.Stderr += err.Error()
	}
	return res
}

// ExecuteCommand runs name with args. When no args are given, name is
// treated as a full command line and run through /bin/sh.
func ExecuteCommand(name string, args ...string) CommandResult {
	if len(args) == 0 {
		return NewShellCommand(name).Execute()
	}
	return NewCommand(name, args...).Execute()
}

// RandomString generates a random lowercase string of the given length.
func RandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}
