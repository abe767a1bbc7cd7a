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

// Package jobmanager queues named shell commands and either lists them,
// hands them to a batch scheduler, or runs them locally.
package jobmanager

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cohenlabUNC/clpipe-sub001/pkg/batchconfig"
	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
	"github.com/cohenlabUNC/clpipe-sub001/pkg/shell"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// printLimit is how many jobs PrintJobs lists outside of debug mode.
const printLimit = 5

// ErrOutputDirectoryUnwritable is returned when the log directory cannot be created.
var ErrOutputDirectoryUnwritable = errors.New("output directory unwritable")

// Job is a named shell command. Name ends up in log filenames and scheduler
// flags unescaped, so callers keep it free of spaces and shell syntax.
type Job struct {
	Name    string
	Command string
}

func (j Job) String() string {
	return j.Command
}

// JobManager defines the capabilities shared by the batch and local managers.
type JobManager interface {
	// AddJob queues command under name.
	AddJob(name, command string)
	// Jobs returns a copy of the queue in enqueue order.
	Jobs() []Job
	// FormatJobs renders the queue listing printed by PrintJobs.
	FormatJobs() string
	// PrintJobs writes the queue listing without running anything.
	PrintJobs()
	// SubmitJobs runs every queued job in order and empties the queue.
	SubmitJobs() []shell.CommandResult
	// OutputDirectory is the absolute log directory.
	OutputDirectory() string
}

// Options configures the factory and both manager kinds.
type Options struct {
	// Config is an already loaded batch configuration. It takes precedence over BatchConfig.
	Config *batchconfig.Config
	// BatchConfig is a preset alias, a path, or a remote source. Empty selects local execution.
	BatchConfig     string
	OutputDirectory string
	Debug           bool

	// Resource overrides; zero values fall back to the configuration defaults.
	MemUse  string
	Time    string
	Threads int
	Email   string

	Fs     afero.Fs
	Stdout io.Writer
	Stderr io.Writer
}

type baseManager struct {
	outputDir string
	debug     bool
	queue     []Job
	fs        afero.Fs
	stdout    io.Writer
	stderr    io.Writer
}

func newBaseManager(opts Options) (baseManager, error) {
	m := baseManager{debug: opts.Debug, fs: opts.Fs, stdout: opts.Stdout, stderr: opts.Stderr}
	if m.fs == nil {
		m.fs = afero.NewOsFs()
	}
	if m.stdout == nil {
		m.stdout = os.Stdout
	}
	if m.stderr == nil {
		m.stderr = os.Stderr
	}

	dir := opts.OutputDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return m, errors.Wrap(err, "failed to determine working directory")
		}
		logging.Warn("No output directory given, logs will be written to %s", wd)
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return m, errors.Wrapf(ErrOutputDirectoryUnwritable, "%s: %v", dir, err)
	}
	if err := m.fs.MkdirAll(abs, 0755); err != nil {
		return m, errors.Wrapf(ErrOutputDirectoryUnwritable, "%s: %v", abs, err)
	}
	m.outputDir = abs
	return m, nil
}

func (m *baseManager) enqueue(name, command string) {
	m.queue = append(m.queue, Job{Name: name, Command: command})
}

func (m *baseManager) Jobs() []Job {
	return append([]Job(nil), m.queue...)
}

func (m *baseManager) OutputDirectory() string {
	return m.outputDir
}

func (m *baseManager) FormatJobs() string {
	if len(m.queue) == 0 {
		return "No jobs to run."
	}

	var b strings.Builder
	b.WriteString("Jobs to run:\n\n")
	for i, j := range m.queue {
		if i == printLimit && !m.debug {
			fmt.Fprintf(&b, "\t...and %d more.\n\n", len(m.queue)-printLimit)
			break
		}
		fmt.Fprintf(&b, "    %s\n\n", j)
	}
	return strings.TrimSuffix(b.String(), "\n\n")
}

func (m *baseManager) PrintJobs() {
	fmt.Fprintln(m.stdout, m.FormatJobs())
}

// run executes each queued job through the shell in enqueue order and
// clears the queue, whatever the exit statuses were.
func (m *baseManager) run(stream bool) []shell.CommandResult {
	results := make([]shell.CommandResult, 0, len(m.queue))
	for _, j := range m.queue {
		cmd := shell.NewShellCommand(j.Command)
		if stream {
			cmd.Stream(m.stdout, m.stderr)
		}
		res := cmd.Execute()
		logging.Debug("Job %s exited with status %d", j.Name, res.ExitCode)
		results = append(results, res)
	}
	m.queue = nil
	return results
}
