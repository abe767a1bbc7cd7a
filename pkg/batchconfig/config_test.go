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
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type configSuite struct {
	fs afero.Fs
}

var _ = Suite(&configSuite{})

const minimalYAML = `
SubmissionHead: sbatch
SubmissionOptions:
  - command: -n
    args: "1"
MemoryCommand: --mem={mem}
JobIDCommand: --job-name={jobid}
JobIDCommandActive: true
CommandWrapper: --wrap=
MemoryDefault: "2000"
NThreadsDefault: "2"
EmailAddressDefault: lab@example.org
`

func (s *configSuite) SetUpTest(c *C) {
	s.fs = afero.NewMemMapFs()
}

func (s *configSuite) writeFile(c *C, path, content string) {
	c.Assert(afero.WriteFile(s.fs, path, []byte(content), 0644), IsNil)
}

func (s *configSuite) TestLoadYAML(c *C) {
	s.writeFile(c, "/site/slurm.yaml", minimalYAML)

	cfg, err := Loader{Fs: s.fs}.Load("/site/slurm.yaml")
	c.Assert(err, IsNil)
	c.Check(cfg.SubmissionHead, Equals, "sbatch")
	c.Check(cfg.SubmissionOptions, DeepEquals, []Option{{Command: "-n", Args: "1"}})
	c.Check(cfg.JobIDCommandActive, Equals, true)
	c.Check(cfg.TimeCommandActive, Equals, false)
	c.Check(cfg.MemoryDefault, Equals, "2000")
}

func (s *configSuite) TestLoadJSON(c *C) {
	s.writeFile(c, "/site/slurm.json", `{"SubmissionHead": "sbatch", "MemoryCommand": "--mem={mem}", "CommandWrapper": "--wrap="}`)

	cfg, err := Loader{Fs: s.fs}.Load("/site/slurm.json")
	c.Assert(err, IsNil)
	c.Check(cfg.MemoryCommand, Equals, "--mem={mem}")
}

func (s *configSuite) TestLoadMissingFile(c *C) {
	_, err := Loader{Fs: s.fs}.Load("/site/nope.json")
	c.Check(errors.Is(err, ErrInvalidConfig), Equals, true)
}

func (s *configSuite) TestExists(c *C) {
	s.writeFile(c, "/site/slurm.yaml", minimalYAML)
	l := Loader{Fs: s.fs}
	c.Check(l.Exists("/site/slurm.yaml"), Equals, true)
	c.Check(l.Exists("/site"), Equals, false)
	c.Check(l.Exists("/site/other.yaml"), Equals, false)
}

func (s *configSuite) TestParseRejectsBadDocuments(c *C) {
	docs := map[string]string{
		"empty":              "",
		"unknown key":        "SubmissionHead: sbatch\nSubmisionHead: typo\n",
		"missing head":       "MemoryCommand: --mem={mem}\n",
		"wrong shape":        "SubmissionHead: sbatch\nSubmissionOptions: -n 1\n",
		"option no command":  "SubmissionHead: sbatch\nSubOptionsEqual:\n  - args: smp\n",
		"memory placeholder": "SubmissionHead: sbatch\nMemoryCommand: --mem=3000\n",
		"active time":        "SubmissionHead: sbatch\nTimeCommandActive: true\nTimeCommand: -t\n",
		"active output":      "SubmissionHead: sbatch\nOutputCommandActive: true\n",
		"email placeholder":  "SubmissionHead: sbatch\nEmailCommand: --mail-user\n",
	}
	for name, doc := range docs {
		_, err := Parse([]byte(doc), name)
		c.Check(errors.Is(err, ErrInvalidConfig), Equals, true, Commentf("document %q: %v", name, err))
	}
}

func (s *configSuite) TestInactiveTemplatesNeedNoPlaceholder(c *C) {
	_, err := Parse([]byte("SubmissionHead: sbatch\nTimeCommand: -t\nTimeCommandActive: false\n"), "inactive")
	c.Check(err, IsNil)
}

func (s *configSuite) TestApplyOverridesDefaults(c *C) {
	cfg, err := Parse([]byte(minimalYAML), "minimal")
	c.Assert(err, IsNil)

	cfg.ApplyOverrides(Overrides{})
	c.Check(cfg.MemUse, Equals, "2000")
	c.Check(cfg.Time, Equals, "")
	c.Check(cfg.Threads, Equals, "2")
	c.Check(cfg.Email, Equals, "lab@example.org")
	c.Check(cfg.Effective(), Equals, "mem_use=2000, time=, threads=2, email=lab@example.org")
}

func (s *configSuite) TestApplyOverridesPrecedence(c *C) {
	cfg, err := Parse([]byte(minimalYAML), "minimal")
	c.Assert(err, IsNil)

	cfg.ApplyOverrides(Overrides{MemUse: "10G", Time: "05:00:00", Threads: "4", Email: "a@b"})
	c.Check(cfg.MemUse, Equals, "10G")
	c.Check(cfg.Time, Equals, "05:00:00")
	c.Check(cfg.Threads, Equals, "4")
	c.Check(cfg.Email, Equals, "a@b")
}

func (s *configSuite) TestCloneIsIndependent(c *C) {
	cfg, err := Parse([]byte(minimalYAML), "minimal")
	c.Assert(err, IsNil)

	cp := cfg.Clone()
	cp.SubmissionOptions[0].Args = "8"
	cp.MemoryDefault = "1"
	c.Check(cfg.SubmissionOptions[0].Args, Equals, "1")
	c.Check(cfg.MemoryDefault, Equals, "2000")
}

func (s *configSuite) TestIsRemoteSource(c *C) {
	c.Check(IsRemoteSource("https://example.org/slurm.json"), Equals, true)
	c.Check(IsRemoteSource("git::https://example.org/configs.git//slurm.json"), Equals, true)
	c.Check(IsRemoteSource("/etc/clpipe/slurm.json"), Equals, false)
	c.Check(IsRemoteSource("unc"), Equals, false)
}

func (s *configSuite) TestFetchLocalSource(c *C) {
	dir := c.MkDir()
	path := filepath.Join(dir, "slurm.yaml")
	c.Assert(os.WriteFile(path, []byte(minimalYAML), 0644), IsNil)

	cfg, err := Fetch("file::" + path)
	c.Assert(err, IsNil)
	c.Check(cfg.SubmissionHead, Equals, "sbatch")
}

func (s *configSuite) TestFetchMissingSource(c *C) {
	_, err := Fetch("file::" + filepath.Join(c.MkDir(), "missing.yaml"))
	c.Check(errors.Is(err, ErrUnknownPreset), Equals, true)
}
