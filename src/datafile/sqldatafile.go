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
package datafile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	DEFAULT_OUTPUT_FILE = "insertdata.sql"
)

// Header returns the fixed preamble every export starts with.
func Header(schema string) string {
	return "-- Vespro Database Data Export\n" +
		"-- Generated for n8n Agent Integration\n" +
		"\n" +
		fmt.Sprintf("SET search_path TO %s;\n", schema) +
		"\n"
}

// SqlDataFile is the INSERT script being produced by an export run.
type SqlDataFile struct {
	FilePath string

	file         *os.File
	writer       *bufio.Writer
	bytesWritten int64
	linesWritten int64
	sections     int
	closed       bool
}

// CreateSqlDataFile creates filePath, truncating whatever was there before.
func CreateSqlDataFile(filePath string) (*SqlDataFile, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("create output file %q: %w", filePath, err)
	}
	log.Infof("created output file %q", filePath)
	return &SqlDataFile{
		FilePath: filePath,
		file:     file,
		writer:   bufio.NewWriter(file),
	}, nil
}

func (df *SqlDataFile) WriteHeader(schema string) error {
	return df.writeString(Header(schema))
}

// WriteSection writes the comment line that opens a table's block. Every
// section after the first is separated from the previous one by a blank line.
func (df *SqlDataFile) WriteSection(title string) error {
	var sb strings.Builder
	if df.sections > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("-- %s table data\n", title))
	err := df.writeString(sb.String())
	if err != nil {
		return err
	}
	df.sections++
	return nil
}

// WriteInsert writes one statement. cols and vals must already be rendered
// and of equal length.
func (df *SqlDataFile) WriteInsert(qualifiedTable string, cols []string, vals []string) error {
	if len(cols) != len(vals) {
		return fmt.Errorf("insert into %s: %d columns but %d values", qualifiedTable, len(cols), len(vals))
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);\n",
		qualifiedTable, strings.Join(cols, ", "), strings.Join(vals, ", "))
	return df.writeString(stmt)
}

func (df *SqlDataFile) writeString(s string) error {
	if df.closed {
		return fmt.Errorf("write to closed file %q", df.FilePath)
	}
	n, err := df.writer.WriteString(s)
	df.bytesWritten += int64(n)
	df.linesWritten += int64(strings.Count(s[:n], "\n"))
	if err != nil {
		return fmt.Errorf("write to %q: %w", df.FilePath, err)
	}
	return nil
}

// Close flushes buffered output and closes the file. Calling it again is a no-op.
func (df *SqlDataFile) Close() error {
	if df.closed {
		return nil
	}
	df.closed = true
	flushErr := df.writer.Flush()
	closeErr := df.file.Close()
	if flushErr != nil {
		return fmt.Errorf("flush %q: %w", df.FilePath, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %q: %w", df.FilePath, closeErr)
	}
	return nil
}

func (df *SqlDataFile) BytesWritten() int64 {
	return df.bytesWritten
}

func (df *SqlDataFile) LinesWritten() int64 {
	return df.linesWritten
}

func (df *SqlDataFile) SectionsWritten() int {
	return df.sections
}
