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

package batchconfig

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
	getter "github.com/hashicorp/go-getter"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Loader reads configuration documents from a filesystem.
type Loader struct {
	Fs afero.Fs
}

// NewLoader returns a Loader over the OS filesystem.
func NewLoader() Loader {
	return Loader{Fs: afero.NewOsFs()}
}

// Load reads the configuration document at path.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Load reads the configuration document at path.
func (l Loader) Load(path string) (*Config, error) {
	data, err := afero.ReadFile(l.Fs, path)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "cannot read %s: %v", path, err)
	}
	return Parse(data, path)
}

// Exists reports whether path names a regular file on the loader's filesystem.
func (l Loader) Exists(path string) bool {
	fi, err := l.Fs.Stat(path)
	return err == nil && !fi.IsDir()
}

// Parse decodes a JSON or YAML configuration document. source only labels errors.
func Parse(data []byte, source string) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Config
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return nil, errors.Wrapf(ErrInvalidConfig, "%s: empty document", source)
		}
		return nil, errors.Wrapf(ErrInvalidConfig, "%s: %v", source, err)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.WithMessage(err, source)
	}
	return &c, nil
}

// IsRemoteSource reports whether src is a go-getter address rather than a
// local path, e.g. "https://host/slurm.json" or "git::https://host/repo//slurm.json".
func IsRemoteSource(src string) bool {
	return strings.Contains(src, "::") || strings.Contains(src, "://")
}

// Fetch downloads a configuration document from a remote source and parses it.
func Fetch(src string) (*Config, error) {
	dir, err := os.MkdirTemp("", "batch-config-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create download directory")
	}
	defer os.RemoveAll(dir)

	path, _, _ := strings.Cut(src, "?")
	dst := filepath.Join(dir, "config"+filepath.Ext(path))
	logging.Info("Fetching batch config from %s", src)
	if err := getter.GetFile(dst, src); err != nil {
		return nil, errors.Wrapf(ErrUnknownPreset, "cannot fetch %s: %v", src, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "cannot read fetched %s: %v", src, err)
	}
	return Parse(data, src)
}
