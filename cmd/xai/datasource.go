package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/csv"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/mongodataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/sqldataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/sqldataset/pgadapter"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/sqldataset/sqlite3adapter"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature/yaml"
)

/*
datasourceCmdConfig is embedded by the configs of commands that
read a dataset through the input flag: a CSV file (or STDIN when
the flag is empty), an SQLite3 file, a PostgreSQL URL or a
MongoDB URL. The DB backends need the schema upfront, so they
require the metadata flag; for CSV it is optional and the schema
is detected from the stream when missing.
*/
type datasourceCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
}

/*
recordSet is the common surface of the DB-backed dataset
implementations the input and output flags can point to.
*/
type recordSet interface {
	Write(ctx context.Context, records []dataset.Record) (int, error)
	Read(ctx context.Context) (<-chan dataset.Record, <-chan error)
	Dataset(ctx context.Context) (*dataset.Dataset, int, error)
	Count(ctx context.Context) (int, error)
	CountValues(ctx context.Context, featureName string) (map[string]int, error)
	Close() error
}

func (dcc *datasourceCmdConfig) Validate() error {
	if dbInput(dcc.dataInput) && dcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set: reading from %s needs the schema upfront", dcc.dataInput)
	}
	return nil
}

/*
Features parses the features described on the metadata flag, or
returns nil features when the flag was not set.
*/
func (dcc *datasourceCmdConfig) Features() ([]feature.Feature, error) {
	if dcc.metadataInput == "" {
		return nil, nil
	}
	dcc.Logf("Reading features from metadata at %s...", dcc.metadataInput)
	features, err := yaml.ReadFeaturesFromFile(dcc.metadataInput)
	if err != nil {
		return nil, err
	}
	dcc.Logf("Features from metadata read")
	return features, nil
}

/*
Dataset loads the whole input into memory and returns it together
with its features: the declared ones when the metadata flag was
set, the detected ones otherwise.
*/
func (dcc *datasourceCmdConfig) Dataset() (*dataset.Dataset, []feature.Feature, error) {
	features, err := dcc.Features()
	if err != nil {
		return nil, nil, err
	}
	if dbInput(dcc.dataInput) {
		input, err := dcc.openInputSet(features)
		if err != nil {
			return nil, nil, err
		}
		defer input.Close()
		ds, skipped, err := input.Dataset(dcc.Context())
		if err != nil {
			return nil, nil, fmt.Errorf("reading dataset from %s: %v", dcc.dataInput, err)
		}
		if skipped > 0 {
			dcc.Logf("Skipped %d records with undefined values", skipped)
		}
		return ds, features, nil
	}
	var f *os.File
	if dcc.dataInput == "" {
		dcc.Logf("Reading dataset from STDIN...")
		f = os.Stdin
	} else {
		dcc.Logf("Opening %s to read dataset...", dcc.dataInput)
		f, err = os.Open(dcc.dataInput)
		if err != nil {
			return nil, nil, fmt.Errorf("opening dataset at %s: %v", dcc.dataInput, err)
		}
		defer f.Close()
	}
	var ds *dataset.Dataset
	var skipped int
	if features == nil {
		ds, features, skipped, err = csv.ReadDetect(f)
	} else {
		ds, skipped, err = csv.Read(f, features)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading dataset: %v", err)
	}
	if skipped > 0 {
		dcc.Logf("Skipped %d records with undefined values", skipped)
	}
	return ds, features, nil
}

/*
InputStream opens the input for record-by-record consumption and
returns a channel of records and a channel with the error that
stopped the stream, if any. Both channels are closed when the
stream ends.
*/
func (dcc *datasourceCmdConfig) InputStream(features []feature.Feature) (<-chan dataset.Record, <-chan error, error) {
	if dbInput(dcc.dataInput) {
		input, err := dcc.openInputSet(features)
		if err != nil {
			return nil, nil, err
		}
		recordStream, errStream := input.Read(dcc.Context())
		return recordStream, errStream, nil
	}
	var f *os.File
	if dcc.dataInput == "" {
		dcc.Logf("Reading input dataset from STDIN...")
		f = os.Stdin
	} else {
		dcc.Logf("Opening %s to read input dataset...", dcc.dataInput)
		var err error
		f, err = os.Open(dcc.dataInput)
		if err != nil {
			return nil, nil, fmt.Errorf("opening input dataset at %s: %v", dcc.dataInput, err)
		}
	}
	recordStream := make(chan dataset.Record)
	errStream := make(chan error, 1)
	go func() {
		defer close(recordStream)
		defer close(errStream)
		defer f.Close()
		_, skipped, err := csv.ReadByRecord(f, features, func(i int, r dataset.Record) (bool, error) {
			select {
			case <-dcc.Context().Done():
				return false, nil
			case recordStream <- r:
			}
			return true, nil
		})
		if err != nil {
			errStream <- err
			return
		}
		if skipped > 0 {
			dcc.Logf("Skipped %d records with undefined values", skipped)
		}
	}()
	return recordStream, errStream, nil
}

func (dcc *datasourceCmdConfig) openInputSet(features []feature.Feature) (recordSet, error) {
	return openSet(dcc.rootCmdConfig, dcc.dataInput, features, false)
}

/*
recordWriter is a destination the dataset command can copy
records into. Close flushes anything pending.
*/
type recordWriter interface {
	Write(ctx context.Context, records []dataset.Record) (int, error)
	Close() error
}

type csvRecordWriter struct {
	w csv.Writer
	f *os.File
}

func (cw *csvRecordWriter) Write(_ context.Context, records []dataset.Record) (int, error) {
	return cw.w.Write(records)
}

func (cw *csvRecordWriter) Close() error {
	if err := cw.w.Flush(); err != nil {
		return err
	}
	if cw.f == os.Stdout {
		return nil
	}
	return cw.f.Close()
}

/*
OutputWriter opens the given output for writing records: a DB
backend for SQLite3 files and PostgreSQL or MongoDB URLs, a CSV
file otherwise (STDOUT when the output is empty).
*/
func (dcc *datasourceCmdConfig) OutputWriter(output string, features []feature.Feature) (recordWriter, error) {
	if dbInput(output) {
		s, err := openSet(dcc.rootCmdConfig, output, features, true)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	var outputFile *os.File
	var err error
	if output != "" {
		dcc.Logf("Creating %s to dump the output dataset...", output)
		outputFile, err = os.Create(output)
		if err != nil {
			return nil, fmt.Errorf("creating output dataset at %s: %v", output, err)
		}
	} else {
		dcc.Logf("Using STDOUT to dump the output dataset...")
		outputFile = os.Stdout
	}
	w, err := csv.NewWriter(outputFile, features)
	if err != nil {
		return nil, err
	}
	return &csvRecordWriter{w: w, f: outputFile}, nil
}

// dbInput tells whether a value of the input or output flags
// names a DB backend rather than a CSV file or STDIN/STDOUT.
func dbInput(input string) bool {
	return strings.HasPrefix(input, "postgresql://") ||
		strings.HasPrefix(input, "mongodb://") ||
		strings.HasSuffix(input, ".db")
}

func openSet(rcc *rootCmdConfig, input string, features []feature.Feature, create bool) (recordSet, error) {
	switch {
	case strings.HasPrefix(input, "postgresql://"):
		rcc.Logf("Creating PostgreSQL adapter for url %s...", input)
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		return openSQLSet(rcc, adapter, input, features, create)
	case strings.HasPrefix(input, "mongodb://"):
		rcc.Logf("Dialing MongoDB at %s...", input)
		s, err := mongodataset.Dial(input, features)
		if err != nil {
			return nil, err
		}
		return s, nil
	case strings.HasSuffix(input, ".db"):
		rcc.Logf("Creating SQLite3 adapter for file %s...", input)
		adapter, err := sqlite3adapter.New(input)
		if err != nil {
			return nil, err
		}
		return openSQLSet(rcc, adapter, input, features, create)
	}
	return nil, fmt.Errorf("%s is not a DB backend", input)
}

func openSQLSet(rcc *rootCmdConfig, adapter sqldataset.Adapter, input string, features []feature.Feature, create bool) (recordSet, error) {
	if create {
		rcc.Logf("Creating dataset over adapter for %s...", input)
		s, err := sqldataset.Create(rcc.Context(), adapter, features)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	rcc.Logf("Opening dataset over adapter for %s...", input)
	s, err := sqldataset.Open(adapter, features)
	if err != nil {
		return nil, err
	}
	return s, nil
}
