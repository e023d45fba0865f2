/*
Copyright (c) YugabyteDB, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package errs

import (
	"fmt"
	"strings"
)

const (
	// flow names
	EXPORT_DATA_FLOW = "export_data"

	// step names
	CONNECT_SOURCE_STEP     = "connect_source"
	CREATE_OUTPUT_FILE_STEP = "create_output_file"
	WRITE_HEADER_STEP       = "write_header"
	QUERY_TABLE_STEP        = "query_table"
	WRITE_TABLE_STEP        = "write_table"
	CLOSE_OUTPUT_FILE_STEP  = "close_output_file"
	STAT_OUTPUT_FILE_STEP   = "stat_output_file"
)

// TableStep qualifies a per-table step: TableStep(QUERY_TABLE_STEP, "forms") == "query_table:forms".
func TableStep(step string, tableName string) string {
	return step + ":" + tableName
}

type ExportDataError struct {
	flow       string   // The main operation flow (e.g., "export_data")
	steps      []string // Steps completed so far in the flow, oldest first
	failedStep string   // The step that failed
	err        error    // The underlying error
}

func (e *ExportDataError) Error() string {
	if len(e.steps) > 0 {
		return fmt.Sprintf("error in %s at step '%s', after steps - (%s): %s",
			e.flow, e.failedStep, strings.Join(e.steps, ", "), e.err.Error())
	}
	return fmt.Sprintf("error in %s at step '%s': %s",
		e.flow, e.failedStep, e.err.Error())
}

func (e *ExportDataError) Flow() string {
	return e.flow
}

func (e *ExportDataError) Steps() []string {
	return e.steps
}

func (e *ExportDataError) FailedStep() string {
	return e.failedStep
}

func (e *ExportDataError) Unwrap() error {
	return e.err
}

// NewExportDataError creates a new error with flow context
func NewExportDataError(flow string, failedStep string, err error) *ExportDataError {
	return &ExportDataError{
		flow:       flow,
		failedStep: failedStep,
		err:        err,
	}
}

// NewExportDataErrorWithSteps creates a new error with flow context and completed steps
func NewExportDataErrorWithSteps(flow string, steps []string, failedStep string, err error) *ExportDataError {
	return &ExportDataError{
		flow:       flow,
		steps:      append([]string(nil), steps...),
		failedStep: failedStep,
		err:        err,
	}
}
