package sqldataset

import "context"

/*
Adapter is an interface wrapping the database-specific operations a
Set needs, so that the same dataset logic can work over different
SQL backends.

Raw samples are exchanged with adapters as maps of column name to
value: float64 for numeric columns, string for categorical ones and
nil for NULL.
*/
type Adapter interface {
	// ColumnName takes the name of a feature and returns the name
	// of the column its values are stored under, or an error if the
	// feature name cannot be used on the database.
	ColumnName(featureName string) (string, error)
	// CreateSampleTable takes a slice of numeric column names and a
	// slice of categorical column names and ensures the samples
	// table exists on the database with those columns.
	CreateSampleTable(ctx context.Context, numericColumns, categoricalColumns []string) error
	// AddSamples takes a slice of raw samples and the column names
	// their values are keyed under and stores them on the samples
	// table. It returns the number of raw samples actually inserted
	// and an error if not all could be inserted.
	AddSamples(ctx context.Context, rawSamples []map[string]interface{}, numericColumns, categoricalColumns []string) (int, error)
	// IterateOnSamples retrieves the stored samples in insertion
	// order and calls the given lambda with the index and raw sample
	// for each. The iteration stops when the lambda returns false or
	// an error, and the lambda's error is returned.
	IterateOnSamples(ctx context.Context, numericColumns, categoricalColumns []string, lambda func(n int, rawSample map[string]interface{}) (bool, error)) error
	// CountSamples returns the number of samples on the samples table.
	CountSamples(ctx context.Context) (int, error)
	// CountColumnValues takes the name of a categorical column and
	// returns the number of samples per distinct value of the
	// column, ignoring NULLs.
	CountColumnValues(ctx context.Context, column string) (map[string]int, error)
	// Close closes the underlying database connection.
	Close() error
}
