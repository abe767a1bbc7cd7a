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
	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
	"github.com/cohenlabUNC/clpipe-sub001/pkg/shell"
)

// LocalJobManager runs jobs as child processes of the current process.
type LocalJobManager struct {
	baseManager
}

// NewLocalJobManager returns a manager that needs no scheduler.
func NewLocalJobManager(opts Options) (*LocalJobManager, error) {
	base, err := newBaseManager(opts)
	if err != nil {
		return nil, err
	}
	return &LocalJobManager{baseManager: base}, nil
}

// AddJob queues command as is.
func (m *LocalJobManager) AddJob(name, command string) {
	m.enqueue(name, command)
}

// SubmitJobs runs each job to completion, one after another, and returns
// their captured output in enqueue order.
func (m *LocalJobManager) SubmitJobs() []shell.CommandResult {
	results := m.run(false)
	logging.Info("Ran %d job(s) locally", len(results))
	return results
}
