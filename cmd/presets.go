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
	"strings"
	"text/tabwriter"

	"github.com/cohenlabUNC/clpipe-sub001/pkg/batchconfig"
	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Lists the packaged batch configs.",
	Run: func(cmd *cobra.Command, args []string) {
		presets, err := batchconfig.Presets()
		if err != nil {
			logging.Fatal("Failed to load presets: %v", err)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tALIASES\tDESCRIPTION")
		for _, p := range presets {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, strings.Join(p.Aliases, ", "), p.Description)
		}
		w.Flush()
	},
}
