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
	"bytes"
	"text/template"

	"github.com/cohenlabUNC/clpipe-sub001/pkg/logging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// SubmissionScriptTemplate lays out queued submission lines as a bash script
// that can be reviewed and run later.
const SubmissionScriptTemplate = `#!/bin/bash
# {{len .Jobs}} job(s), scheduler logs in {{.OutputDirectory}}
{{- range .Jobs}}

# {{.Name}}
{{.Command}}
{{- end}}
`

// RenderScript renders the manager's queue with SubmissionScriptTemplate.
// The queue is left untouched.
func RenderScript(m JobManager) (string, error) {
	tmpl, err := template.New("submissionScript").Parse(SubmissionScriptTemplate)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse submission script template")
	}

	data := struct {
		OutputDirectory string
		Jobs            []Job
	}{
		OutputDirectory: m.OutputDirectory(),
		Jobs:            m.Jobs(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to execute submission script template")
	}
	return buf.String(), nil
}

// WriteScript saves the rendered script to path as an executable file.
func WriteScript(fs afero.Fs, path string, m JobManager) error {
	content, err := RenderScript(m)
	if err != nil {
		return err
	}
	logging.Info("Saving %d job(s) to %s", len(m.Jobs()), path)
	if err := afero.WriteFile(fs, path, []byte(content), 0755); err != nil {
		return errors.Wrapf(err, "failed to write submission script to file %s", path)
	}
	return nil
}
