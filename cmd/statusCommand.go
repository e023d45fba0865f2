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
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/AlperAcarAI/Vespro/src/datafile"
	"github.com/AlperAcarAI/Vespro/src/utils"
)

var statusOutputFile string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the report of the last export to an output file",

	Run: func(cmd *cobra.Command, args []string) {
		report, err := datafile.OpenDescriptor(statusOutputFile)
		if err != nil {
			utils.ErrExit("%w", err)
		}
		printExportReport(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusOutputFile, "output-file", "o", datafile.DEFAULT_OUTPUT_FILE,
		"path of the SQL file whose report to show")
}

func printExportReport(out io.Writer, report *datafile.Descriptor) {
	statusColor := color.GreenString
	switch report.Status {
	case datafile.STATUS_PARTIALLY_COMPLETED:
		statusColor = color.YellowString
	case datafile.STATUS_FAILED:
		statusColor = color.RedString
	}
	fmt.Fprintf(out, "Run %s: %s\n", report.RunID, statusColor("%s", report.Status))
	if report.FailedStep != "" {
		fmt.Fprintf(out, "Failed at %s: %s\n", report.FailedStep, report.Error)
	}

	table := uitable.New()
	table.Separator = " | "
	table.AddRow("TABLE", "ROWS", "SECTION")
	for _, entry := range report.TableList {
		rows, section := "-", "not reached"
		if entry.RowCount >= 0 {
			rows = humanize.Comma(entry.RowCount)
			section = "skipped (empty)"
		}
		if entry.Written {
			section = "written"
		}
		table.AddRow(entry.TableName, rows, section)
	}
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "File %s: %s, %d lines, took %s\n", report.FilePath,
		humanize.Bytes(uint64(report.FileSize)), report.LineCount,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}
