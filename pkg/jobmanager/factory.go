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
	"github.com/cohenlabUNC/clpipe-sub001/pkg/batchconfig"
	"github.com/spf13/afero"
)

// Get returns a LocalJobManager when no batch configuration is supplied and a
// BatchJobManager otherwise. opts.BatchConfig is tried as a preset alias,
// then as a remote source, then as a file path.
func Get(opts Options) (JobManager, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		m, err := NewLocalJobManager(opts)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	m, err := NewBatchJobManager(cfg, opts)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func resolveConfig(opts Options) (*batchconfig.Config, error) {
	if opts.Config != nil {
		return opts.Config, nil
	}
	if opts.BatchConfig == "" {
		return nil, nil
	}

	registry, err := batchconfig.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	if registry.Has(opts.BatchConfig) {
		return registry.Lookup(opts.BatchConfig)
	}
	if batchconfig.IsRemoteSource(opts.BatchConfig) {
		return batchconfig.Fetch(opts.BatchConfig)
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	loader := batchconfig.Loader{Fs: fs}
	if !loader.Exists(opts.BatchConfig) {
		// Neither a preset nor a file; Lookup produces the unknown preset error with a hint.
		return registry.Lookup(opts.BatchConfig)
	}
	return loader.Load(opts.BatchConfig)
}
