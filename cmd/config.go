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
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Flag name prefix (used in CLI flags)
	SourceDBFlagPrefix = "source-"

	// Config key prefix (used in config file keys)
	SourceDBConfigPrefix = "source."

	CONFIG_FILE_ENV_VAR  = "VESPRO_EXPORT_CONFIG_FILE"
	CONFIG_FILE_NAME     = "vespro-export-config"
	DATABASE_URL_ENV_VAR = "DATABASE_URL"
)

var allowedGlobalConfigKeys = mapset.NewThreadUnsafeSet[string](
	"log-level", "log-dir", "source-db-uri",
)

var allowedSourceConfigKeys = mapset.NewThreadUnsafeSet[string](
	"db-uri",
)

var allowedExportConfigKeys = mapset.NewThreadUnsafeSet[string](
	"output-file", "batch-size", "exclude-file-data", "archive-uri", "disable-pb",
)

var allowedVerifyConfigKeys = mapset.NewThreadUnsafeSet[string](
	"output-file",
)

var allowedConfigSections = map[string]mapset.Set[string]{
	"source": allowedSourceConfigKeys,
	"export": allowedExportConfigKeys,
	"verify": allowedVerifyConfigKeys,
}

// ConfigFlagOverride is a flag whose value came from the config file or the
// environment rather than the command line.
type ConfigFlagOverride struct {
	FlagName  string
	ConfigKey string
	Value     string
}

/*
initConfig builds a fresh viper instance for cmd and applies it to the flags.

	1. The config file is --config-file, else $VESPRO_EXPORT_CONFIG_FILE, else
	   ~/vespro-export-config.yaml if it exists.
	2. DATABASE_URL is bound to the source-db-uri key.
	3. Keys are validated against the allowed global keys and sections.
	4. Flags not set on the command line take their value from viper.

	Precedence is CLI > environment > config file > flag default.
*/
func initConfig(cmd *cobra.Command) ([]ConfigFlagOverride, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if os.Getenv(CONFIG_FILE_ENV_VAR) != "" {
		v.SetConfigFile(os.Getenv(CONFIG_FILE_ENV_VAR))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(home)
		v.SetConfigName(CONFIG_FILE_NAME)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	err := v.BindEnv("source-db-uri", DATABASE_URL_ENV_VAR)
	if err != nil {
		return nil, err
	}

	err = validateConfigFile(v)
	if err != nil {
		return nil, err
	}

	overrides, err := bindCobraFlagsToViper(cmd, v)
	if err != nil {
		return nil, fmt.Errorf("failed to bind cobra flags to viper: %w", err)
	}
	return overrides, nil
}

// validateConfigFile rejects unknown global keys, unknown sections and
// unknown keys inside a section, printing all of them before failing.
func validateConfigFile(v *viper.Viper) error {
	invalidGlobalKeys := mapset.NewThreadUnsafeSet[string]()
	invalidSectionKeys := make(map[string]mapset.Set[string])
	invalidSections := mapset.NewThreadUnsafeSet[string]()

	for _, key := range v.AllKeys() {
		section, nestedKey, nested := strings.Cut(key, ".")
		if !nested {
			if !allowedGlobalConfigKeys.Contains(key) {
				invalidGlobalKeys.Add(key)
			}
			continue
		}
		allowedKeys, ok := allowedConfigSections[section]
		if !ok {
			invalidSections.Add(section)
			continue
		}
		if !allowedKeys.Contains(nestedKey) {
			if _, exists := invalidSectionKeys[section]; !exists {
				invalidSectionKeys[section] = mapset.NewThreadUnsafeSet[string]()
			}
			invalidSectionKeys[section].Add(nestedKey)
		}
	}

	if invalidGlobalKeys.Cardinality() == 0 && len(invalidSectionKeys) == 0 && invalidSections.Cardinality() == 0 {
		return nil
	}
	if invalidGlobalKeys.Cardinality() > 0 {
		fmt.Printf("%s [%s]\n", color.RedString("Invalid global config keys:"), strings.Join(invalidGlobalKeys.ToSlice(), ", "))
	}
	for section, keys := range invalidSectionKeys {
		fmt.Printf("%s [%s]\n", color.RedString(fmt.Sprintf("Invalid keys in section '%s':", section)), strings.Join(keys.ToSlice(), ", "))
	}
	if invalidSections.Cardinality() > 0 {
		fmt.Printf("%s [%s]\n", color.RedString("Invalid sections:"), strings.Join(invalidSections.ToSlice(), ", "))
	}
	return fmt.Errorf("found invalid configurations in config file: %s", v.ConfigFileUsed())
}

/*
bindCobraFlagsToViper sets every flag the user did not pass from viper.

	For a flag named f on command "export" the keys tried are, in order:
	export.f, f, and for source-* flags source.<rest>.
*/
func bindCobraFlagsToViper(cmd *cobra.Command, v *viper.Viper) ([]ConfigFlagOverride, error) {
	var bindErr error
	var overrides []ConfigFlagOverride

	subCmdPath := strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name())
	configKeyPrefix := strings.ReplaceAll(strings.TrimSpace(subCmdPath), " ", "-")

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || f.Changed {
			return
		}
		candidates := []string{f.Name}
		if configKeyPrefix != "" {
			candidates = append([]string{configKeyPrefix + "." + f.Name}, candidates...)
		}
		if strings.HasPrefix(f.Name, SourceDBFlagPrefix) {
			candidates = append(candidates, SourceDBConfigPrefix+strings.TrimPrefix(f.Name, SourceDBFlagPrefix))
		}
		for _, key := range candidates {
			if !v.IsSet(key) {
				continue
			}
			val := v.GetString(key)
			err := cmd.Flags().Set(f.Name, val)
			if err != nil {
				bindErr = fmt.Errorf("set flag %q from %q: %w", f.Name, key, err)
				return
			}
			overrides = append(overrides, ConfigFlagOverride{FlagName: f.Name, ConfigKey: key, Value: val})
			return
		}
	})

	return overrides, bindErr
}

func logConfigOverrides(overrides []ConfigFlagOverride) {
	for _, o := range overrides {
		val := o.Value
		if strings.Contains(o.FlagName, "uri") {
			val = redactUri(val)
		}
		log.Infof("flag %q set from config key %q: %s", o.FlagName, o.ConfigKey, val)
	}
}
