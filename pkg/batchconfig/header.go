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
	"path/filepath"
	"strings"
)

// OutputFilePattern is the scheduler log filename. {jobid} is filled by the
// job manager, %j by the scheduler when the job is dispatched.
const OutputFilePattern = "Output-" + PlaceholderJobID + "-jobid-" + SchedulerJobIDToken + ".out"

// HeaderRule contributes tokens to a submission header when Active holds.
type HeaderRule struct {
	Name   string
	Active func(c *Config) bool
	Render func(c *Config, outputPath string) []string
}

func always(*Config) bool { return true }

// fill renders a single template with its placeholder replaced by value.
func fill(template func(c *Config) string, placeholder string, value func(c *Config, outputPath string) string) func(*Config, string) []string {
	return func(c *Config, outputPath string) []string {
		return []string{strings.ReplaceAll(template(c), placeholder, value(c, outputPath))}
	}
}

func renderOptions(options func(c *Config) []Option, sep string) func(*Config, string) []string {
	return func(c *Config, _ string) []string {
		var tokens []string
		for _, o := range options(c) {
			tokens = append(tokens, o.Command+sep+o.Args)
		}
		return tokens
	}
}

// headerRules is the assembly order of a submission header. New dialect
// features are added here.
var headerRules = []HeaderRule{
	{
		Name:   "head",
		Active: always,
		Render: func(c *Config, _ string) []string { return []string{c.SubmissionHead} },
	},
	{
		Name:   "options",
		Active: always,
		Render: renderOptions(func(c *Config) []Option { return c.SubmissionOptions }, " "),
	},
	{
		Name:   "options_equal",
		Active: always,
		Render: renderOptions(func(c *Config) []Option { return c.SubOptionsEqual }, "="),
	},
	{
		Name:   "memory",
		Active: func(c *Config) bool { return c.MemoryCommand != "" },
		Render: fill(func(c *Config) string { return c.MemoryCommand }, PlaceholderMem,
			func(c *Config, _ string) string { return c.MemUse }),
	},
	{
		Name:   "time",
		Active: func(c *Config) bool { return c.TimeCommandActive },
		Render: fill(func(c *Config) string { return c.TimeCommand }, PlaceholderTime,
			func(c *Config, _ string) string { return c.Time }),
	},
	{
		Name:   "threads",
		Active: func(c *Config) bool { return c.ThreadCommandActive },
		Render: fill(func(c *Config) string { return c.NThreadsCommand }, PlaceholderThreads,
			func(c *Config, _ string) string { return c.Threads }),
	},
	{
		Name:   "jobid",
		Active: func(c *Config) bool { return c.JobIDCommandActive },
		Render: fill(func(c *Config) string { return c.JobIDCommand }, PlaceholderJobID,
			func(*Config, string) string { return PlaceholderJobID }),
	},
	{
		Name:   "output",
		Active: func(c *Config) bool { return c.OutputCommandActive },
		Render: fill(func(c *Config) string { return c.OutputCommand }, PlaceholderOutput,
			func(_ *Config, outputPath string) string { return outputPath }),
	},
	{
		Name:   "email",
		Active: func(c *Config) bool { return c.EmailCommand != "" && c.Email != "" },
		Render: fill(func(c *Config) string { return c.EmailCommand }, PlaceholderEmail,
			func(c *Config, _ string) string { return c.Email }),
	},
	{
		Name:   "wrapper",
		Active: always,
		Render: func(c *Config, _ string) []string {
			return []string{c.CommandWrapper + `"` + PlaceholderCmdWrap + `"`}
		},
	},
}

// HeaderRules returns the ordered header contribution rules.
func HeaderRules() []HeaderRule {
	return append([]HeaderRule(nil), headerRules...)
}

// Header renders the submission header for jobs logging into outputDir.
// The result still contains {jobid} and {cmdwrap}.
func (c *Config) Header(outputDir string) string {
	outputPath := filepath.Join(outputDir, OutputFilePattern)
	var tokens []string
	for _, r := range headerRules {
		if !r.Active(c) {
			continue
		}
		for _, tok := range r.Render(c, outputPath) {
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	return strings.Join(tokens, " ")
}
