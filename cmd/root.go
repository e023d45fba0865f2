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

	"github.com/spf13/cobra"

	"github.com/AlperAcarAI/Vespro/src/config"
	"github.com/AlperAcarAI/Vespro/src/utils"
)

const (
	TOOL_NAME = "vespro-export"
)

var (
	cfgFile string
	logDir  string
)

var rootCmd = &cobra.Command{
	Use:   TOOL_NAME,
	Short: "Export the vespro schema's data as replayable SQL INSERT statements",
	Long: `Reads the forms, cost_items, materials and cost_groups tables of the vespro schema
and writes them as INSERT statements to a SQL file (insertdata.sql by default).
The connection string is taken from DATABASE_URL unless --source-db-uri is given.`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		overrides, err := initConfig(cmd)
		if err != nil {
			utils.ErrExit("failed to initialize config: %w", err)
		}
		err = config.ValidateLogLevel()
		if err != nil {
			utils.ErrExit("%w", err)
		}
		InitLogging(logDir, cmd.Name())
		logConfigOverrides(overrides)
	},

	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	registerCommonGlobalFlags(rootCmd)
}

func registerCommonGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&cfgFile, "config-file", "c", "",
		"path to a yaml config file (default $HOME/vespro-export-config.yaml)")

	cmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"directory for the rotating log file; logging is off when not set")

	cmd.PersistentFlags().StringVarP(&config.LogLevel, "log-level", "l", config.INFO,
		"log level for the log file. Possible values: (trace, debug, info, warn, error, fatal, panic)")
}
