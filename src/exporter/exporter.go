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
package exporter

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/AlperAcarAI/Vespro/src/datafile"
	"github.com/AlperAcarAI/Vespro/src/errs"
	"github.com/AlperAcarAI/Vespro/src/pbreporter"
	"github.com/AlperAcarAI/Vespro/src/rowdata"
	"github.com/AlperAcarAI/Vespro/src/sqlvalue"
	"github.com/AlperAcarAI/Vespro/src/srcdb"
	"github.com/AlperAcarAI/Vespro/src/utils"
)

type Config struct {
	ConnectionString string
	OutputFile       string
	ExcludeFileData  bool
	// Rows per query for ordered tables; 0 reads each table in one query.
	BatchSize int
}

// DataSource is the read side of an export run.
type DataSource interface {
	QueryAll(ctx context.Context, tableName string, orderBy string) ([]rowdata.Row, error)
	Close() error
}

type Opener func(ctx context.Context, cfg Config) (DataSource, error)

type Report = datafile.Descriptor

// OpenPostgreSQL connects to cfg.ConnectionString and reads from the vespro schema.
func OpenPostgreSQL(ctx context.Context, cfg Config) (DataSource, error) {
	source := &srcdb.Source{
		Uri:       cfg.ConnectionString,
		Schema:    SCHEMA,
		BatchSize: cfg.BatchSize,
	}
	db, err := srcdb.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	version, err := db.CheckServerVersion(ctx)
	if err != nil {
		log.Warnf("could not read source server version: %v", err)
	} else {
		log.Infof("source server version: %s", version)
	}
	return db, nil
}

type Exporter struct {
	cfg      Config
	tables   []TableSpec
	opener   Opener
	progress func(tableName string) pbreporter.ExportProgressReporter
	now      func() time.Time
}

type Option func(*Exporter)

func WithOpener(opener Opener) Option {
	return func(e *Exporter) { e.opener = opener }
}

func WithProgress(newReporter func(tableName string) pbreporter.ExportProgressReporter) Option {
	return func(e *Exporter) { e.progress = newReporter }
}

func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

func New(cfg Config, opts ...Option) *Exporter {
	if cfg.OutputFile == "" {
		cfg.OutputFile = datafile.DEFAULT_OUTPUT_FILE
	}
	e := &Exporter{
		cfg:    cfg,
		tables: Tables(cfg.ExcludeFileData),
		opener: OpenPostgreSQL,
		progress: func(string) pbreporter.ExportProgressReporter {
			return pbreporter.NewExportPB(nil, "", true)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("export tables: %s", spew.Sdump(e.tables))
	}
	return e
}

func (e *Exporter) Tables() []TableSpec {
	return e.tables
}

// Run performs one export. The report is returned even on failure, with a
// status telling whether any table made it to the file. The error, if any,
// is an *errs.ExportDataError.
func (e *Exporter) Run(ctx context.Context) (*Report, error) {
	report := datafile.NewDescriptor(uuid.NewString(), e.cfg.OutputFile, TableNames(e.tables))
	report.StartedAt = e.now()
	var steps []string
	var file *datafile.SqlDataFile

	fail := func(step string, cause error) (*Report, error) {
		report.FinishedAt = e.now()
		report.FailedStep = step
		report.Error = cause.Error()
		report.Status = datafile.STATUS_FAILED
		if report.TablesWritten() > 0 {
			report.Status = datafile.STATUS_PARTIALLY_COMPLETED
		}
		if file != nil {
			report.FileSize = file.BytesWritten()
			report.LineCount = file.LinesWritten()
		}
		log.Errorf("export run %s failed at %s: %v", report.RunID, step, cause)
		return report, errs.NewExportDataErrorWithSteps(errs.EXPORT_DATA_FLOW, steps, step, cause)
	}

	log.Infof("starting export run %s to %q", report.RunID, e.cfg.OutputFile)
	source, err := e.opener(ctx, e.cfg)
	if err != nil {
		return fail(errs.CONNECT_SOURCE_STEP, err)
	}
	defer func() {
		err := source.Close()
		if err != nil {
			log.Warnf("closing source: %v", err)
		}
	}()
	steps = append(steps, errs.CONNECT_SOURCE_STEP)

	file, err = datafile.CreateSqlDataFile(e.cfg.OutputFile)
	if err != nil {
		return fail(errs.CREATE_OUTPUT_FILE_STEP, err)
	}
	defer file.Close()
	steps = append(steps, errs.CREATE_OUTPUT_FILE_STEP)

	err = file.WriteHeader(SCHEMA)
	if err != nil {
		return fail(errs.WRITE_HEADER_STEP, err)
	}
	steps = append(steps, errs.WRITE_HEADER_STEP)

	for _, spec := range e.tables {
		queryStep := errs.TableStep(errs.QUERY_TABLE_STEP, spec.Name)
		rows, err := source.QueryAll(ctx, spec.Name, spec.OrderBy)
		if err != nil {
			return fail(queryStep, err)
		}
		steps = append(steps, queryStep)
		entry := report.GetTableEntry(spec.Name)
		entry.RowCount = int64(len(rows))

		if len(rows) == 0 && !spec.AlwaysEmitSection {
			utils.PrintAndLog("%s table is empty", spec.Title)
			continue
		}
		writeStep := errs.TableStep(errs.WRITE_TABLE_STEP, spec.Name)
		err = e.writeTable(file, spec, rows)
		if err != nil {
			return fail(writeStep, err)
		}
		steps = append(steps, writeStep)
		entry.Written = true
		utils.PrintAndLog("%s exported: %d records", spec.Title, len(rows))
	}

	err = file.Close()
	if err != nil {
		return fail(errs.CLOSE_OUTPUT_FILE_STEP, err)
	}
	steps = append(steps, errs.CLOSE_OUTPUT_FILE_STEP)

	size, err := utils.GetFileSize(e.cfg.OutputFile)
	if err != nil {
		return fail(errs.STAT_OUTPUT_FILE_STEP, err)
	}

	report.FileSize = size
	report.LineCount = file.LinesWritten()
	report.Status = datafile.STATUS_COMPLETED
	report.FinishedAt = e.now()
	log.Infof("export run %s wrote %d rows, %s", report.RunID, report.TotalRows(), humanize.Bytes(uint64(size)))

	utils.PrintAndLog("\nExport completed successfully!")
	utils.PrintAndLog("File size: %d bytes", size)
	return report, nil
}

func (e *Exporter) writeTable(file *datafile.SqlDataFile, spec TableSpec, rows []rowdata.Row) error {
	pb := e.progress(spec.Name)
	pb.SetTotalRowCount(int64(len(rows)), false)
	defer pb.SetTotalRowCount(-1, true)

	err := file.WriteSection(spec.Title)
	if err != nil {
		return err
	}
	renderer := sqlvalue.NewRenderer(spec.StructuredColumns, spec.BooleanLiterals)
	qualifiedTable := srcdb.QualifiedTableName(SCHEMA, spec.Name)
	for i, row := range rows {
		for _, col := range spec.NullColumns {
			row.Set(col, rowdata.Null())
		}
		cols, vals, err := renderer.RenderRow(row)
		if err != nil {
			return fmt.Errorf("row %d of %s: %w", i+1, spec.Name, err)
		}
		for j := range cols {
			cols[j] = srcdb.QuoteIdentifierIfNeeded(cols[j])
		}
		err = file.WriteInsert(qualifiedTable, cols, vals)
		if err != nil {
			return err
		}
		pb.SetExportedRowCount(int64(i + 1))
	}
	return nil
}
