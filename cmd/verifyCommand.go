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
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/AlperAcarAI/Vespro/src/datafile"
	"github.com/AlperAcarAI/Vespro/src/exporter"
	"github.com/AlperAcarAI/Vespro/src/sqlcheck"
	"github.com/AlperAcarAI/Vespro/src/utils"
)

var verifyOutputFile string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that an export file parses as PostgreSQL and matches its report",
	Long: `Parses the output file with the PostgreSQL parser and counts the INSERT statements per table.
If <output-file>.report.json exists, the counts are compared with the rows the export recorded.`,

	Run: func(cmd *cobra.Command, args []string) {
		err := verifyExportFile(cmd.OutOrStdout(), verifyOutputFile)
		if err != nil {
			utils.ErrExit("verify %s: %w", verifyOutputFile, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyOutputFile, "output-file", "o", datafile.DEFAULT_OUTPUT_FILE,
		"path of the SQL file to verify")
}

func verifyExportFile(out io.Writer, path string) error {
	summary, err := sqlcheck.CheckFile(path)
	if err != nil {
		return err
	}

	var report *datafile.Descriptor
	if utils.FileOrFolderExists(datafile.ReportPath(path)) {
		report, err = datafile.OpenDescriptor(path)
		if err != nil {
			return err
		}
	}

	table := uitable.New()
	table.Separator = " | "
	table.AddRow("TABLE", "INSERT STATEMENTS", "REPORTED ROWS")
	for _, name := range summary.Relations() {
		reported := "-"
		if report != nil {
			entry := report.GetTableEntry(strings.TrimPrefix(name, exporter.SCHEMA+"."))
			if entry != nil && entry.Written {
				reported = fmt.Sprint(entry.RowCount)
			}
		}
		table.AddRow(name, summary.InsertCounts[name], reported)
	}
	fmt.Fprintln(out, table)
	fmt.Fprintf(out, "%d statements parsed\n", summary.Statements)

	if report == nil {
		fmt.Fprintln(out, color.YellowString("no export report found, counts not cross-checked"))
		return nil
	}
	mismatches := summary.CompareWithReport(report, exporter.SCHEMA)
	for _, m := range mismatches {
		fmt.Fprintln(out, color.RedString("%s", m))
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d table(s) disagree with the export report", len(mismatches))
	}
	fmt.Fprintln(out, color.GreenString("%s is valid and matches run %s", path, report.RunID))
	return nil
}
