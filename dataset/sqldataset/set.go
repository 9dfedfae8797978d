/*
Package sqldataset stores datasets in SQL databases.

A dataset lives in a single samples table with one column per
feature: REAL columns for numeric features and TEXT columns for
categorical ones, plus an id primary key that fixes the read
order. NULL marks an undefined value. All access to a concrete
database goes through an Adapter; the sqlite3adapter and pgadapter
subpackages provide adapters for SQLite3 and PostgreSQL.
*/
package sqldataset

import (
	"context"
	"fmt"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
)

/*
Set is a dataset stored in a SQL database through an Adapter.
Records can be written to it and read back, either streamed or
loaded whole into a dataset.Dataset.
*/
type Set struct {
	db                 Adapter
	features           []feature.Feature
	featureColumns     map[string]string
	columnFeatures     map[string]feature.Feature
	numericColumns     []string
	categoricalColumns []string
}

/*
Create takes an Adapter to a database backend and a slice of
feature.Feature and returns a Set backed by the given adapter,
after ensuring the samples table exists on the database with a
column for every feature. An error is returned if a feature name
cannot be used as a column name or the table cannot be created.
*/
func Create(ctx context.Context, dbAdapter Adapter, features []feature.Feature) (*Set, error) {
	s := &Set{db: dbAdapter, features: features}
	err := s.initFeatureColumns()
	if err != nil {
		return nil, err
	}
	err = s.db.CreateSampleTable(ctx, s.numericColumns, s.categoricalColumns)
	if err != nil {
		return nil, fmt.Errorf("creating samples table: %v", err)
	}
	return s, nil
}

/*
Open takes an Adapter to a database backend and a slice of
feature.Feature and returns a Set backed by the given adapter.
It expects the samples table to exist already, with a column for
every feature in the slice.
*/
func Open(dbAdapter Adapter, features []feature.Feature) (*Set, error) {
	s := &Set{db: dbAdapter, features: features}
	err := s.initFeatureColumns()
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
Features returns the features whose values the set stores, in
column order.
*/
func (s *Set) Features() []feature.Feature {
	return s.features
}

/*
Write takes a slice of dataset.Record and stores them on the
database. It returns the number of records actually written and,
when not all could be written, an error describing the problem.
Values missing from a record are stored as NULL.
*/
func (s *Set) Write(ctx context.Context, records []dataset.Record) (int, error) {
	rawSamples := make([]map[string]interface{}, 0, len(records))
	for i, r := range records {
		raw, err := s.rawSample(r)
		if err != nil {
			return 0, fmt.Errorf("encoding record %d: %v", i, err)
		}
		rawSamples = append(rawSamples, raw)
	}
	n, err := s.db.AddSamples(ctx, rawSamples, s.numericColumns, s.categoricalColumns)
	if err != nil {
		return n, fmt.Errorf("writing records: %v", err)
	}
	return n, nil
}

/*
Read returns a channel over which the stored records are sent in
insertion order, and a channel over which at most one error is
sent. Both channels are closed when the read ends, whether
exhausted, failed or cancelled through the context.
*/
func (s *Set) Read(ctx context.Context) (<-chan dataset.Record, <-chan error) {
	recordc := make(chan dataset.Record)
	errc := make(chan error, 1)
	go func() {
		defer close(recordc)
		defer close(errc)
		err := s.db.IterateOnSamples(ctx, s.numericColumns, s.categoricalColumns,
			func(_ int, rawSample map[string]interface{}) (bool, error) {
				select {
				case recordc <- s.record(rawSample):
					return true, nil
				case <-ctx.Done():
					return false, ctx.Err()
				}
			})
		if err != nil {
			errc <- fmt.Errorf("reading records: %v", err)
		}
	}()
	return recordc, errc
}

/*
Dataset loads every stored record and returns them as an in-memory
dataset.Dataset with the set's features as columns. Records with
undefined values are skipped and counted on the second return value,
because the tree grower requires every record to define every column.
*/
func (s *Set) Dataset(ctx context.Context) (*dataset.Dataset, int, error) {
	var records []dataset.Record
	skipped := 0
	err := s.db.IterateOnSamples(ctx, s.numericColumns, s.categoricalColumns,
		func(_ int, rawSample map[string]interface{}) (bool, error) {
			r := s.record(rawSample)
			if len(r) < len(s.features) {
				skipped++
				return true, nil
			}
			records = append(records, r)
			return true, nil
		})
	if err != nil {
		return nil, skipped, fmt.Errorf("reading records: %v", err)
	}
	columns := make([]string, len(s.features))
	for i, f := range s.features {
		columns[i] = f.Name()
	}
	return dataset.New(columns, records), skipped, nil
}

/*
Count returns the number of records stored on the set.
*/
func (s *Set) Count(ctx context.Context) (int, error) {
	n, err := s.db.CountSamples(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting records: %v", err)
	}
	return n, nil
}

/*
CountValues takes the name of a categorical feature of the set and
returns the number of records stored per value of the feature.
Records with the value undefined are not counted.
*/
func (s *Set) CountValues(ctx context.Context, featureName string) (map[string]int, error) {
	column, ok := s.featureColumns[featureName]
	if !ok {
		return nil, fmt.Errorf("counting values: unknown feature %s", featureName)
	}
	if _, ok := s.columnFeatures[column].(*feature.CategoricalFeature); !ok {
		return nil, fmt.Errorf("counting values: feature %s is not categorical", featureName)
	}
	counts, err := s.db.CountColumnValues(ctx, column)
	if err != nil {
		return nil, fmt.Errorf("counting values of %s: %v", featureName, err)
	}
	return counts, nil
}

/*
Close closes the set's database adapter. The set cannot be used
after it has been closed.
*/
func (s *Set) Close() error {
	return s.db.Close()
}

func (s *Set) initFeatureColumns() error {
	s.featureColumns = make(map[string]string, len(s.features))
	s.columnFeatures = make(map[string]feature.Feature, len(s.features))
	for _, f := range s.features {
		column, err := s.db.ColumnName(f.Name())
		if err != nil {
			return err
		}
		if _, ok := s.columnFeatures[column]; ok {
			return fmt.Errorf("features %s and %s collide on column name %s", s.columnFeatures[column].Name(), f.Name(), column)
		}
		s.featureColumns[f.Name()] = column
		s.columnFeatures[column] = f
		if _, ok := f.(*feature.NumericFeature); ok {
			s.numericColumns = append(s.numericColumns, column)
		} else {
			s.categoricalColumns = append(s.categoricalColumns, column)
		}
	}
	return nil
}

func (s *Set) rawSample(r dataset.Record) (map[string]interface{}, error) {
	rawSample := make(map[string]interface{}, len(s.features))
	for _, f := range s.features {
		column := s.featureColumns[f.Name()]
		v, ok := r[f.Name()]
		if !ok || v == nil {
			rawSample[column] = nil
			continue
		}
		valid, err := f.Valid(v)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, fmt.Errorf("value %v is not valid for feature %s", v, f.Name())
		}
		rawSample[column] = v
	}
	return rawSample, nil
}

func (s *Set) record(rawSample map[string]interface{}) dataset.Record {
	r := make(dataset.Record, len(s.features))
	for column, v := range rawSample {
		if v == nil {
			continue
		}
		f, ok := s.columnFeatures[column]
		if !ok {
			continue
		}
		r[f.Name()] = v
	}
	return r
}
