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

package jobmanager

import (
	"strconv"
	"strings"

	"github.com/cohenlabUNC/clpipe-sub001/pkg/batchconfig"
	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
	"github.com/cohenlabUNC/clpipe-sub001/pkg/shell"
)

// BatchJobManager renders jobs into scheduler submission lines.
//
// Rendering happens in two phases. The header, built once here, fills every
// resource placeholder. AddJob then fills {jobid} and {cmdwrap}. The %j marker
// in the log filename is left for the scheduler.
type BatchJobManager struct {
	baseManager
	config *batchconfig.Config
	header string
}

// NewBatchJobManager builds a manager for cfg. cfg is copied; the caller's
// value is never modified.
func NewBatchJobManager(cfg *batchconfig.Config, opts Options) (*BatchJobManager, error) {
	base, err := newBaseManager(opts)
	if err != nil {
		return nil, err
	}

	c := cfg.Clone()
	o := batchconfig.Overrides{MemUse: opts.MemUse, Time: opts.Time, Email: opts.Email}
	if opts.Threads > 0 {
		o.Threads = strconv.Itoa(opts.Threads)
	}
	c.ApplyOverrides(o)

	m := &BatchJobManager{baseManager: base, config: c}
	m.header = c.Header(base.outputDir)
	logging.Debug("Batch header: %s", m.header)
	return m, nil
}

// Config returns the resolved configuration, overrides applied.
func (m *BatchJobManager) Config() *batchconfig.Config {
	return m.config.Clone()
}

// Header returns the shared submission header with {jobid} and {cmdwrap} unfilled.
func (m *BatchJobManager) Header() string {
	return m.header
}

// payloadEscaper escapes the characters the submitting shell still interprets
// inside double quotes, so the payload reaches the scheduler unchanged.
var payloadEscaper = strings.NewReplacer(
	`\`, `\\`,
	`$`, `\$`,
	"`", "\\`",
	`"`, `\"`,
)

// AddJob queues the submission line for command under the scheduler job name.
func (m *BatchJobManager) AddJob(name, command string) {
	r := strings.NewReplacer(
		batchconfig.PlaceholderJobID, name,
		batchconfig.PlaceholderCmdWrap, payloadEscaper.Replace(command),
	)
	m.enqueue(name, r.Replace(m.header))
}

// SubmitJobs runs each submission line in order. The scheduler's output is
// passed through; exit statuses are recorded but not acted on.
func (m *BatchJobManager) SubmitJobs() []shell.CommandResult {
	results := m.run(true)
	logging.Info("Submitted %d job(s) with %s", len(results), m.config.Effective())
	return results
}
