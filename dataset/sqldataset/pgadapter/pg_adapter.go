/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

// MaxSampleInsertionsPerStatement is the maximum number
// of samples that are allowed to be added with a single
// insert command with the AddSamples method of the adapter.
// Trying to add more will result in making more insertion commands.
const MaxSampleInsertionsPerStatement = 10

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns an
Adapter that works on the database, or an error if it fails to
connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening postgres database: %v", err)
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, numericColumns, categoricalColumns []string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS samples (")
	for _, c := range numericColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" REAL NULL, `, c))
	}
	for _, c := range categoricalColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" TEXT NULL, `, c))
	}
	createStmtBuf.WriteString(`"id" SERIAL PRIMARY KEY)`)
	_, err := a.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, rawSamples []map[string]interface{}, numericColumns, categoricalColumns []string) (int, error) {
	if len(rawSamples) == 0 {
		return 0, nil
	}
	columns := append(append([]string{}, numericColumns...), categoricalColumns...)
	if len(columns) == 0 {
		return 0, fmt.Errorf("no feature columns to store")
	}
	inserted := 0
	fullChunks := len(rawSamples) / MaxSampleInsertionsPerStatement
	if fullChunks > 0 {
		insertStmt, err := a.db.PrepareContext(ctx, insertSamplesStatement(columns, MaxSampleInsertionsPerStatement))
		if err != nil {
			return 0, fmt.Errorf("preparing insert command for %d samples: %v", MaxSampleInsertionsPerStatement, err)
		}
		for c := 0; c < fullChunks; c++ {
			chunk := rawSamples[inserted : inserted+MaxSampleInsertionsPerStatement]
			_, err = insertStmt.ExecContext(ctx, sampleArgs(chunk, columns)...)
			if err != nil {
				insertStmt.Close()
				return inserted, fmt.Errorf("inserting the %dth %d samples: %v", c+1, MaxSampleInsertionsPerStatement, err)
			}
			inserted += MaxSampleInsertionsPerStatement
		}
		err = insertStmt.Close()
		if err != nil {
			return inserted, fmt.Errorf("closing insert command for %d samples: %v", MaxSampleInsertionsPerStatement, err)
		}
	}
	lastRawSamples := rawSamples[inserted:]
	if len(lastRawSamples) > 0 {
		_, err := a.db.ExecContext(ctx, insertSamplesStatement(columns, len(lastRawSamples)), sampleArgs(lastRawSamples, columns)...)
		if err != nil {
			return inserted, fmt.Errorf("inserting the last %d samples: %v", len(lastRawSamples), err)
		}
		inserted = len(rawSamples)
	}
	return inserted, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, numericColumns, categoricalColumns []string, lambda func(int, map[string]interface{}) (bool, error)) error {
	columns := append(append([]string{}, numericColumns...), categoricalColumns...)
	if len(columns) == 0 {
		return fmt.Errorf("no feature columns to retrieve")
	}
	var queryBuf bytes.Buffer
	queryBuf.WriteString(`SELECT "`)
	queryBuf.WriteString(strings.Join(columns, `", "`))
	queryBuf.WriteString(`" FROM samples ORDER BY id`)
	rows, err := a.db.QueryContext(ctx, queryBuf.String())
	if err != nil {
		return fmt.Errorf("querying samples: %v", err)
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		numericValues := make([]sql.NullFloat64, len(numericColumns))
		categoricalValues := make([]sql.NullString, len(categoricalColumns))
		scanArgs := make([]interface{}, 0, len(columns))
		for i := range numericValues {
			scanArgs = append(scanArgs, &numericValues[i])
		}
		for i := range categoricalValues {
			scanArgs = append(scanArgs, &categoricalValues[i])
		}
		err = rows.Scan(scanArgs...)
		if err != nil {
			return fmt.Errorf("scanning sample %d: %v", n, err)
		}
		rawSample := make(map[string]interface{}, len(columns))
		for i, c := range numericColumns {
			if numericValues[i].Valid {
				rawSample[c] = numericValues[i].Float64
			} else {
				rawSample[c] = nil
			}
		}
		for i, c := range categoricalColumns {
			if categoricalValues[i].Valid {
				rawSample[c] = categoricalValues[i].String
			} else {
				rawSample[c] = nil
			}
		}
		ok, err := lambda(n, rawSample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		n++
	}
	return rows.Err()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM samples").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	return count, nil
}

func (a *adapter) CountColumnValues(ctx context.Context, column string) (map[string]int, error) {
	query := fmt.Sprintf(`SELECT "%s", COUNT(*) FROM samples WHERE "%s" IS NOT NULL GROUP BY "%s"`, column, column, column)
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying value counts of column %s: %v", column, err)
	}
	defer rows.Close()
	result := make(map[string]int)
	for rows.Next() {
		var value string
		var count int
		err = rows.Scan(&value, &count)
		if err != nil {
			return nil, fmt.Errorf("scanning value count of column %s: %v", column, err)
		}
		result[value] = count
	}
	return result, rows.Err()
}

func (a *adapter) Close() error {
	return a.db.Close()
}

func insertSamplesStatement(columns []string, n int) string {
	var stmtBuf bytes.Buffer
	stmtBuf.WriteString(`INSERT INTO samples ("`)
	stmtBuf.WriteString(strings.Join(columns, `", "`))
	stmtBuf.WriteString(`") VALUES `)
	p := 1
	for i := 0; i < n; i++ {
		if i > 0 {
			stmtBuf.WriteString(", ")
		}
		stmtBuf.WriteString("(")
		for j := 0; j < len(columns); j++ {
			if j > 0 {
				stmtBuf.WriteString(", ")
			}
			fmt.Fprintf(&stmtBuf, "$%d", p)
			p++
		}
		stmtBuf.WriteString(")")
	}
	return stmtBuf.String()
}

func sampleArgs(rawSamples []map[string]interface{}, columns []string) []interface{} {
	args := make([]interface{}, 0, len(rawSamples)*len(columns))
	for _, rs := range rawSamples {
		for _, c := range columns {
			args = append(args, rs[c])
		}
	}
	return args
}
