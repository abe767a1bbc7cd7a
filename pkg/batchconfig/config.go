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

// Package batchconfig describes the command line surface of a batch
// scheduler (SLURM, SGE, a plain workstation) and loads those descriptions
// from packaged presets, files or remote sources.
package batchconfig

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Placeholders understood in templates. PlaceholderJobID and
// PlaceholderCmdWrap survive header rendering and are filled per job.
const (
	PlaceholderMem      = "{mem}"
	PlaceholderTime     = "{time}"
	PlaceholderThreads  = "{nthreads}"
	PlaceholderJobID    = "{jobid}"
	PlaceholderOutput   = "{output}"
	PlaceholderEmail    = "{email}"
	PlaceholderCmdWrap  = "{cmdwrap}"
	SchedulerJobIDToken = "%j"
)

var (
	// ErrUnknownPreset is returned when a preset alias is not recognized.
	ErrUnknownPreset = errors.New("unknown batch config preset")
	// ErrInvalidConfig is returned when a configuration document is malformed.
	ErrInvalidConfig = errors.New("invalid batch config")
)

// Option is a scheduler flag and its argument.
type Option struct {
	Command string `yaml:"command"`
	Args    string `yaml:"args"`
}

// Config is one scheduler dialect. Field order mirrors the order in which
// the submission header is assembled.
type Config struct {
	Description string   `yaml:"Description,omitempty"`
	Aliases     []string `yaml:"Aliases,omitempty"`

	SubmissionHead    string   `yaml:"SubmissionHead"`
	SubmissionOptions []Option `yaml:"SubmissionOptions"`
	SubOptionsEqual   []Option `yaml:"SubOptionsEqual"`

	MemoryCommand       string `yaml:"MemoryCommand"`
	TimeCommand         string `yaml:"TimeCommand"`
	TimeCommandActive   bool   `yaml:"TimeCommandActive"`
	NThreadsCommand     string `yaml:"NThreadsCommand"`
	ThreadCommandActive bool   `yaml:"ThreadCommandActive"`
	JobIDCommand        string `yaml:"JobIDCommand"`
	JobIDCommandActive  bool   `yaml:"JobIDCommandActive"`
	OutputCommand       string `yaml:"OutputCommand"`
	OutputCommandActive bool   `yaml:"OutputCommandActive"`
	EmailCommand        string `yaml:"EmailCommand"`
	CommandWrapper      string `yaml:"CommandWrapper"`

	MemoryDefault       string `yaml:"MemoryDefault"`
	TimeDefault         string `yaml:"TimeDefault"`
	NThreadsDefault     string `yaml:"NThreadsDefault"`
	EmailAddressDefault string `yaml:"EmailAddressDefault"`

	// Runtime overrides, resolved once by ApplyOverrides.
	MemUse  string `yaml:"-"`
	Time    string `yaml:"-"`
	Threads string `yaml:"-"`
	Email   string `yaml:"-"`
}

// Overrides are caller supplied resource values. Empty fields fall back to
// the configuration defaults.
type Overrides struct {
	MemUse  string
	Time    string
	Threads string
	Email   string
}

var overrideFields = []struct {
	name     string
	override func(o Overrides) string
	fallback func(c *Config) string
	target   func(c *Config) *string
}{
	{"mem_use", func(o Overrides) string { return o.MemUse }, func(c *Config) string { return c.MemoryDefault }, func(c *Config) *string { return &c.MemUse }},
	{"time", func(o Overrides) string { return o.Time }, func(c *Config) string { return c.TimeDefault }, func(c *Config) *string { return &c.Time }},
	{"threads", func(o Overrides) string { return o.Threads }, func(c *Config) string { return c.NThreadsDefault }, func(c *Config) *string { return &c.Threads }},
	{"email", func(o Overrides) string { return o.Email }, func(c *Config) string { return c.EmailAddressDefault }, func(c *Config) *string { return &c.Email }},
}

// ApplyOverrides sets the runtime resource values, taking each override
// when provided and the matching default otherwise.
func (c *Config) ApplyOverrides(o Overrides) {
	for _, f := range overrideFields {
		v := f.override(o)
		if v == "" {
			v = f.fallback(c)
		}
		*f.target(c) = v
	}
}

// Effective summarizes the resolved runtime values, e.g. for log lines.
func (c *Config) Effective() string {
	parts := make([]string, 0, len(overrideFields))
	for _, f := range overrideFields {
		parts = append(parts, fmt.Sprintf("%s=%s", f.name, *f.target(c)))
	}
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy so that presets are never mutated by managers.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Aliases = append([]string(nil), c.Aliases...)
	cp.SubmissionOptions = append([]Option(nil), c.SubmissionOptions...)
	cp.SubOptionsEqual = append([]Option(nil), c.SubOptionsEqual...)
	return &cp
}

// Validate reports every missing field and every template that would be
// rendered without its placeholder.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.SubmissionHead) == "" {
		problems = append(problems, "SubmissionHead is required")
	}
	for i, o := range c.SubmissionOptions {
		if o.Command == "" {
			problems = append(problems, fmt.Sprintf("SubmissionOptions[%d] has no command", i))
		}
	}
	for i, o := range c.SubOptionsEqual {
		if o.Command == "" {
			problems = append(problems, fmt.Sprintf("SubOptionsEqual[%d] has no command", i))
		}
	}

	templates := []struct {
		field, template, placeholder string
		rendered                     bool
	}{
		{"MemoryCommand", c.MemoryCommand, PlaceholderMem, c.MemoryCommand != ""},
		{"TimeCommand", c.TimeCommand, PlaceholderTime, c.TimeCommandActive},
		{"NThreadsCommand", c.NThreadsCommand, PlaceholderThreads, c.ThreadCommandActive},
		{"JobIDCommand", c.JobIDCommand, PlaceholderJobID, c.JobIDCommandActive},
		{"OutputCommand", c.OutputCommand, PlaceholderOutput, c.OutputCommandActive},
		{"EmailCommand", c.EmailCommand, PlaceholderEmail, c.EmailCommand != ""},
	}
	for _, t := range templates {
		if t.rendered && !strings.Contains(t.template, t.placeholder) {
			problems = append(problems, fmt.Sprintf("%s %q does not contain %s", t.field, t.template, t.placeholder))
		}
	}

	if len(problems) > 0 {
		return errors.Wrap(ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
