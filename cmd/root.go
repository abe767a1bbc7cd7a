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

// Package cmd defines the clpipe-jobs command line.
package cmd

import (
	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	debug bool
	appFs = afero.NewOsFs()
)

var rootCmd = &cobra.Command{
	Use:   "clpipe-jobs",
	Short: "Queue pipeline commands and submit them to a batch scheduler or run them locally.",
	Long: `clpipe-jobs takes a list of named shell commands, typically one per subject,
renders each into a submission line for the configured scheduler (SLURM, SGE or
a plain workstation) and either lists them, saves them as a script, or submits
them. Without a batch config the commands run locally, one after another.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetDebug(debug)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Print debug logs and list every queued job.")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
