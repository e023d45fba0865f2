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
	"net/url"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AlperAcarAI/Vespro/src/config"
)

type MyFormatter struct{}

var levelList = []string{
	"PANIC",
	"FATAL",
	"ERROR",
	"WARN",
	"INFO",
	"DEBUG",
	"TRACE",
}

func (mf *MyFormatter) Format(entry *log.Entry) ([]byte, error) {
	level := levelList[int(entry.Level)]
	fileName, line := "", 0
	if entry.Caller != nil {
		fileName, line = filepath.Base(entry.Caller.File), entry.Caller.Line
	}
	// Example log line:
	// 2024-03-23 12:16:42 INFO exporter.go:27 starting export run ...
	msg := fmt.Sprintf("%s %s %s:%d %s\n",
		entry.Time.Format("2006-01-02 15:04:05"), level,
		fileName, line, entry.Message)
	return []byte(msg), nil
}

func logFilePath(logDir string, cmdName string) string {
	return filepath.Join(logDir, fmt.Sprintf("%s-%s.log", TOOL_NAME, cmdName))
}

func InitLogging(logDir string, cmdName string) {
	log.SetLevel(config.LogrusLevel())
	if logDir == "" {
		log.SetOutput(io.Discard)
		return
	}

	// lumberjack creates the directory and the file as needed.
	logRotator := &lumberjack.Logger{
		Filename:   logFilePath(logDir, cmdName),
		MaxSize:    200, // MB before rotation
		MaxBackups: 10,
	}
	log.SetOutput(logRotator)

	log.SetReportCaller(true)
	log.SetFormatter(&MyFormatter{})
	log.Info("Logging initialised.")
	log.Infof("Args: %v", redactArgs(os.Args))
	log.Infof("\n%s", getVersionInfo())
}

// redactArgs masks the password of any connection uri on the command line.
func redactArgs(args []string) []string {
	redacted := make([]string, len(args))
	for i, arg := range args {
		redacted[i] = arg
		name, value, hasValue := strings.Cut(arg, "=")
		switch {
		case hasValue && name == "--source-db-uri":
			redacted[i] = name + "=" + redactUri(value)
		case i > 0 && args[i-1] == "--source-db-uri":
			redacted[i] = redactUri(arg)
		}
	}
	return redacted
}

func redactUri(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	return u.Redacted()
}
