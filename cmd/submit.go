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

package cmd

import (
	"fmt"

	"github.com/cohenlabUNC/clpipe-sub001/pkg/jobmanager"
	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
	"github.com/cohenlabUNC/clpipe-sub001/pkg/shell"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	jobsFile     string
	batchConfig  string
	outputDir    string
	memUse       string
	timeLimit    string
	threads      int
	email        string
	submit       bool
	outputScript string
)

const submitHint = "Re-run with the '--submit' flag to launch these jobs."

// jobEntry is one element of the jobs document.
type jobEntry struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVarP(&jobsFile, "jobs", "j", "", "YAML file listing the jobs to queue, as a list of {name, command}. Required.")
	submitCmd.Flags().StringVarP(&batchConfig, "batch-config", "b", "", "Preset name (e.g. 'unc', 'pitt', 'sge'), path, or remote source of the batch config. If empty, jobs run locally.")
	submitCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for scheduler log files. Defaults to the working directory.")
	submitCmd.Flags().StringVar(&memUse, "mem-use", "", "Memory to request per job (e.g. '10G'). Defaults to the batch config's value.")
	submitCmd.Flags().StringVar(&timeLimit, "time", "", "Wall time to request per job (e.g. '05:00:00'). Defaults to the batch config's value.")
	submitCmd.Flags().IntVar(&threads, "threads", 0, "Threads to request per job. Defaults to the batch config's value.")
	submitCmd.Flags().StringVar(&email, "email", "", "Address notified by the scheduler on failure.")
	submitCmd.Flags().BoolVarP(&submit, "submit", "s", false, "Submit the jobs. Without this flag the jobs are only listed.")
	submitCmd.Flags().StringVar(&outputScript, "output-script", "", "Write the submission lines to this script instead of submitting them.")

	_ = submitCmd.MarkFlagRequired("jobs")
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Lists, saves or submits a batch of jobs.",
	Long: `The 'submit' command reads a list of named commands, renders each into a
submission line for the chosen batch config and prints the queue. Pass --submit
to hand the jobs to the scheduler, or --output-script to save them for later.`,
	Run: runSubmitCmd,
}

func runSubmitCmd(cmd *cobra.Command, args []string) {
	if submit && outputScript != "" {
		logging.Fatal("Cannot provide both --submit and --output-script.")
	}
	if threads < 0 {
		logging.Fatal("--threads must not be negative.")
	}

	entries, err := readJobs(appFs, jobsFile)
	if err != nil {
		logging.Fatal("Failed to read jobs: %v", err)
	}

	manager, err := jobmanager.Get(jobmanager.Options{
		BatchConfig:     batchConfig,
		OutputDirectory: outputDir,
		Debug:           debug,
		MemUse:          memUse,
		Time:            timeLimit,
		Threads:         threads,
		Email:           email,
		Fs:              appFs,
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		logging.Fatal("Failed to create job manager: %v", err)
	}

	for _, e := range entries {
		manager.AddJob(e.Name, e.Command)
	}

	switch {
	case outputScript != "":
		if err := jobmanager.WriteScript(appFs, outputScript, manager); err != nil {
			logging.Fatal("%v", err)
		}
	case submit:
		manager.SubmitJobs()
	default:
		manager.PrintJobs()
		if len(manager.Jobs()) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), submitHint)
		}
	}
}

// readJobs parses the jobs document. Entries without a name get a random one.
func readJobs(fs afero.Fs, path string) ([]jobEntry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var entries []jobEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	for i := range entries {
		if entries[i].Command == "" {
			return nil, errors.Errorf("job %d in %s has no command", i+1, path)
		}
		if entries[i].Name == "" {
			entries[i].Name = "job-" + shell.RandomString(8)
		}
	}
	return entries, nil
}
