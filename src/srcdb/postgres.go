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
package srcdb

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/AlperAcarAI/Vespro/src/rowdata"
)

// jsonb arrived in 9.4.
const MIN_SUPPORTED_PG_VERSION = "9.4"

var plainIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type PostgreSQL struct {
	source *Source

	db *sql.DB
}

func newPostgreSQL(s *Source) *PostgreSQL {
	return &PostgreSQL{source: s}
}

func (pg *PostgreSQL) Connect(ctx context.Context) error {
	if pg.db != nil {
		return nil
	}
	db, err := sql.Open("pgx", pg.source.Uri)
	if err != nil {
		return fmt.Errorf("open source database: %w", err)
	}
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return fmt.Errorf("connect to source database: %w", err)
	}
	pg.db = db
	log.Infof("connected to source database")
	return nil
}

// Close releases the connection. Safe to call on an unconnected handle.
func (pg *PostgreSQL) Close() error {
	if pg.db == nil {
		return nil
	}
	err := pg.db.Close()
	pg.db = nil
	if err != nil {
		return fmt.Errorf("close source database: %w", err)
	}
	return nil
}

func (pg *PostgreSQL) GetVersion(ctx context.Context) (string, error) {
	var version string
	query := "SELECT setting from pg_settings where name = 'server_version'"
	err := pg.db.QueryRowContext(ctx, query).Scan(&version)
	if err != nil {
		return "", fmt.Errorf("run query %q on source: %w", query, err)
	}
	return version, nil
}

// CheckServerVersion records the server version on the source and warns
// when the server predates jsonb. The export still goes ahead.
func (pg *PostgreSQL) CheckServerVersion(ctx context.Context) (string, error) {
	version, err := pg.GetVersion(ctx)
	if err != nil {
		return "", err
	}
	pg.source.DBVersion = version
	supported, err := IsSupportedVersion(version)
	if err != nil {
		log.Warnf("could not parse source server version %q: %v", version, err)
		return version, nil
	}
	if !supported {
		log.Warnf("source server version %s is older than %s; jsonb casts in the output will not load there",
			version, MIN_SUPPORTED_PG_VERSION)
	}
	return version, nil
}

// IsSupportedVersion parses server_version values such as "16.2" or
// "15.4 (Debian 15.4-1.pgdg120+1)".
func IsSupportedVersion(serverVersion string) (bool, error) {
	fields := strings.Fields(serverVersion)
	if len(fields) == 0 {
		return false, fmt.Errorf("empty server version")
	}
	v, err := goversion.NewVersion(fields[0])
	if err != nil {
		return false, err
	}
	return v.GreaterThanOrEqual(goversion.Must(goversion.NewVersion(MIN_SUPPORTED_PG_VERSION))), nil
}

// QueryAll returns every row of tableName, ordered by orderBy when given.
// With a batch size set and an order column, the table is read in pages.
func (pg *PostgreSQL) QueryAll(ctx context.Context, tableName string, orderBy string) ([]rowdata.Row, error) {
	if pg.db == nil {
		return nil, fmt.Errorf("query %s: not connected", tableName)
	}
	batchSize := pg.source.BatchSize
	if batchSize <= 0 || orderBy == "" {
		return pg.queryRows(ctx, pg.buildQuery(tableName, orderBy, 0, 0))
	}

	var result []rowdata.Row
	for offset := 0; ; offset += batchSize {
		batch, err := pg.queryRows(ctx, pg.buildQuery(tableName, orderBy, batchSize, offset))
		if err != nil {
			return nil, err
		}
		result = append(result, batch...)
		log.Debugf("fetched %d rows of %s at offset %d", len(batch), tableName, offset)
		if len(batch) < batchSize {
			return result, nil
		}
	}
}

func (pg *PostgreSQL) buildQuery(tableName string, orderBy string, limit int, offset int) string {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(QualifiedTableName(pg.source.GetSchema(), tableName))
	if orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(QuoteIdentifierIfNeeded(orderBy))
	}
	if limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))
	}
	return sb.String()
}

func (pg *PostgreSQL) queryRows(ctx context.Context, query string) ([]rowdata.Row, error) {
	log.Infof("querying source: %s", query)
	rows, err := pg.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("run query %q: %w", query, err)
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("column types for %q: %w", query, err)
	}
	var result []rowdata.Row
	for rows.Next() {
		raw := make([]any, len(columnTypes))
		ptrs := make([]any, len(columnTypes))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		err = rows.Scan(ptrs...)
		if err != nil {
			return nil, fmt.Errorf("scan row of %q: %w", query, err)
		}
		row := make(rowdata.Row, len(columnTypes))
		for i, ct := range columnTypes {
			v, err := ConvertValue(ct.DatabaseTypeName(), raw[i])
			if err != nil {
				return nil, fmt.Errorf("column %s of %q: %w", ct.Name(), query, err)
			}
			row[i] = rowdata.Field{Name: ct.Name(), Value: v}
		}
		result = append(result, row)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", query, err)
	}
	return result, nil
}

// QuoteIdentifierIfNeeded leaves lower-case names bare, matching how the
// export file has always spelled them, and quotes anything else.
func QuoteIdentifierIfNeeded(name string) string {
	if plainIdentifier.MatchString(name) {
		return name
	}
	return pq.QuoteIdentifier(name)
}

func QualifiedTableName(schema string, tableName string) string {
	return QuoteIdentifierIfNeeded(schema) + "." + QuoteIdentifierIfNeeded(tableName)
}
