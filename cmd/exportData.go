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
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/nightlyone/lockfile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/AlperAcarAI/Vespro/src/archive"
	"github.com/AlperAcarAI/Vespro/src/datafile"
	"github.com/AlperAcarAI/Vespro/src/exporter"
	"github.com/AlperAcarAI/Vespro/src/pbreporter"
	"github.com/AlperAcarAI/Vespro/src/utils"
)

var (
	sourceDBUri     string
	outputFile      string
	batchSize       int
	excludeFileData bool
	archiveUri      string
	disablePb       bool
)

var exportDataCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vespro tables to a SQL file of INSERT statements",
	Long: `Writes forms, cost_items, materials and cost_groups (in that order) to the output file,
replacing it if it exists. A report of the run is saved next to it as <output-file>.report.json.`,

	PreRun: func(cmd *cobra.Command, args []string) {
		validateExportFlags()
	},

	Run: exportDataCommandFn,
}

func init() {
	rootCmd.AddCommand(exportDataCmd)

	exportDataCmd.Flags().StringVar(&sourceDBUri, "source-db-uri", "",
		"connection uri of the source database (default $DATABASE_URL)")

	exportDataCmd.Flags().StringVarP(&outputFile, "output-file", "o", datafile.DEFAULT_OUTPUT_FILE,
		"path of the SQL file to write")

	exportDataCmd.Flags().IntVar(&batchSize, "batch-size", 0,
		"rows fetched per query for the ordered tables (forms, cost_items); 0 reads each table at once")

	exportDataCmd.Flags().BoolVar(&excludeFileData, "exclude-file-data", false,
		"write forms.file_data as NULL to keep the output small")

	exportDataCmd.Flags().StringVar(&archiveUri, "archive-uri", "",
		"copy the finished file to object storage, e.g. s3://bucket/prefix, gs://bucket/prefix, azblob://container/prefix or file:///dir")

	exportDataCmd.Flags().BoolVar(&disablePb, "disable-pb", false,
		"disable the per-table progress bars")
}

func validateExportFlags() {
	if sourceDBUri == "" {
		utils.ErrExit("no source database: set %s or pass --source-db-uri", DATABASE_URL_ENV_VAR)
	}
	if outputFile == "" {
		utils.ErrExit("--output-file must not be empty")
	}
	if batchSize < 0 {
		utils.ErrExit("--batch-size must not be negative: %d", batchSize)
	}
	if archiveUri != "" {
		_, err := archive.ParseLocation(archiveUri)
		if err != nil {
			utils.ErrExit("invalid --archive-uri: %w", err)
		}
	}
}

func exportDataCommandFn(cmd *cobra.Command, args []string) {
	lockOutputFile(outputFile)
	defer unlockOutputFile()

	pbDisabled := disablePb || !term.IsTerminal(int(os.Stderr.Fd()))
	progress := pbreporter.NewContainer(os.Stderr, pbDisabled)

	cfg := exporter.Config{
		ConnectionString: sourceDBUri,
		OutputFile:       outputFile,
		ExcludeFileData:  excludeFileData,
		BatchSize:        batchSize,
	}
	report, err := exporter.New(cfg, exporter.WithProgress(progress.NewTableReporter)).Run(cmd.Context())
	progress.Wait()

	saveErr := report.Save()
	if saveErr != nil {
		log.Warnf("%v", saveErr)
		color.Yellow("could not save the export report: %v", saveErr)
	}
	if err != nil {
		utils.ErrExit("%s %w", color.RedString("export %s:", report.Status), err)
	}

	if archiveUri != "" {
		key, err := archive.Upload(cmd.Context(), archiveUri, outputFile)
		if err != nil {
			utils.ErrExit("archive %q: %w", outputFile, err)
		}
		utils.PrintAndLog("Archived %s to %s as %s", outputFile, archiveUri, key)
	}
}

var outputLock lockfile.Lockfile

// lockOutputFile stops two runs from writing the same file at once.
func lockOutputFile(path string) {
	lockPath, err := filepath.Abs(path + ".lck")
	if err != nil {
		utils.ErrExit("failed to get absolute path for lockfile of %q: %v", path, err)
	}
	outputLock, err = lockfile.New(lockPath)
	if err != nil {
		utils.ErrExit("failed to create lockfile %q: %v", lockPath, err)
	}
	err = outputLock.TryLock()
	if err == lockfile.ErrBusy {
		utils.ErrExit("another instance of %s is writing %s", TOOL_NAME, path)
	} else if err != nil {
		utils.ErrExit("unable to lock %q: %v", path, err)
	}
	atexit.Register(unlockOutputFile)
}

func unlockOutputFile() {
	if outputLock == "" {
		return
	}
	err := outputLock.Unlock()
	if err != nil {
		log.Warnf("unable to unlock %q: %v", string(outputLock), err)
	}
	outputLock = ""
}
