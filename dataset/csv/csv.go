/*
Package csv reads and writes datasets as CSV streams.

The header row fixes the column order of the resulting dataset. Cells
that are empty or contain '?' mark an undefined value; records with
undefined values are skipped on reading, because the tree grower
requires every record to define every column.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
)

/*
Writer is an interface for a sink to which records
can be written.
*/
type Writer interface {
	// Write will attempt to write the given records
	// and will return the actually written number of
	// records and an error if not all could be written.
	Write([]dataset.Record) (int, error)
	// Count returns the total number of records written
	// to the writer.
	Count() int
	// Flush ensures any pending write operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count    int
	features []feature.Feature
	w        *csv.Writer
}

/*
Read takes an io.Reader for a CSV stream and a slice of features and
returns the dataset parsed from the reader, the number of records that
were skipped because of undefined values, and an error.

The header row must consist of names of features in the given slice;
the column order of the returned dataset is the header order.
*/
func Read(reader io.Reader, features []feature.Feature) (*dataset.Dataset, int, error) {
	var records []dataset.Record
	columns, skipped, err := ReadByRecord(reader, features, func(_ int, r dataset.Record) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return dataset.New(columns, records), skipped, nil
}

/*
ReadDetect takes an io.Reader for a CSV stream, infers a feature for
every header column with feature.Detect and returns the parsed dataset,
the inferred features, the number of skipped records and an error.
*/
func ReadDetect(reader io.Reader) (*dataset.Dataset, []feature.Feature, int, error) {
	r := csv.NewReader(reader)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("reading CSV: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil, 0, fmt.Errorf("reading CSV: empty stream, expected a header row")
	}
	header := rows[0]
	features, err := feature.Detect(header, rows[1:])
	if err != nil {
		return nil, nil, 0, err
	}
	var records []dataset.Record
	skipped := 0
	for l, row := range rows[1:] {
		record, err := parseRecordFromCSVRow(row, features)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("parsing line %d: %v", l+2, err)
		}
		if record == nil {
			skipped++
			continue
		}
		records = append(records, record)
	}
	return dataset.New(header, records), features, skipped, nil
}

/*
ReadByRecord takes an io.Reader for a CSV stream, a slice of features
and a lambda function on an index and a dataset.Record that returns a
boolean value. It parses the records from the reader and for each calls
the lambda with the record and its index. If the lambda returns true it
continues with the next record, otherwise it stops. Records with
undefined values are skipped and counted on the second return value.
The first return value is the header row. An error is returned if the
stream cannot be read or a record cannot be parsed.
*/
func ReadByRecord(reader io.Reader, features []feature.Feature, lambda func(int, dataset.Record) (bool, error)) ([]string, int, error) {
	featuresByName := featureSliceToMap(features)
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %v", err)
	}
	featureOrder, err := parseFeaturesFromCSVHeader(header, featuresByName)
	if err != nil {
		return nil, 0, err
	}
	skipped := 0
	read := 0
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return header, skipped, fmt.Errorf("reading body: %v", err)
		}
		record, err := parseRecordFromCSVRow(row, featureOrder)
		if err != nil {
			return header, skipped, fmt.Errorf("parsing line %d: %v", l, err)
		}
		if record == nil {
			skipped++
			continue
		}
		ok, err := lambda(read, record)
		if err != nil {
			return header, skipped, err
		}
		if !ok {
			break
		}
		read++
	}
	return header, skipped, nil
}

/*
ReadFromFilePath takes a filepath string and a slice of features, opens
the file the filepath points to (os.Stdin when the filepath is "") and
uses Read to return the parsed dataset, the skipped record count and an
error.
*/
func ReadFromFilePath(filepath string, features []feature.Feature) (*dataset.Dataset, int, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, 0, fmt.Errorf("reading dataset: %v", err)
		}
	}
	defer f.Close()
	ds, skipped, err := Read(f, features)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, skipped, err
}

/*
NewWriter takes an io.Writer and a slice of feature.Feature and returns
a Writer that will write records to the io.Writer as CSV rows, with one
column per feature in the given order. The header row is written
immediately.
*/
func NewWriter(writer io.Writer, features []feature.Feature) (Writer, error) {
	w := csv.NewWriter(writer)
	row := make([]string, len(features))
	for i, f := range features {
		row[i] = f.Name()
	}
	err := w.Write(row)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{features: features, w: w}, nil
}

/*
WriteDataset takes an io.Writer, a dataset and a slice of features and
dumps the dataset to the writer in CSV format, with one column per
feature. It returns an error if something went wrong writing to the
writer or encoding the records.
*/
func WriteDataset(writer io.Writer, ds *dataset.Dataset, features []feature.Feature) error {
	cw, err := NewWriter(writer, features)
	if err != nil {
		return err
	}
	_, err = cw.Write(ds.Records)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func parseFeaturesFromCSVHeader(header []string, features map[string]feature.Feature) ([]feature.Feature, error) {
	featureOrder := []feature.Feature{}
	for _, name := range header {
		f, ok := features[name]
		if !ok {
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		featureOrder = append(featureOrder, f)
	}
	return featureOrder, nil
}

// parseRecordFromCSVRow returns a nil record without error when the
// row has undefined cells.
func parseRecordFromCSVRow(row []string, featureOrder []feature.Feature) (dataset.Record, error) {
	if len(row) != len(featureOrder) {
		return nil, fmt.Errorf("row with %d cells, expected %d", len(row), len(featureOrder))
	}
	record := make(dataset.Record)
	for i, f := range featureOrder {
		v := row[i]
		if v == "" || v == feature.UndefinedValue {
			return nil, nil
		}
		var value interface{}
		if _, ok := f.(*feature.NumericFeature); ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("converting %s to float64: %v", v, err)
			}
			value = parsed
		} else {
			value = v
		}
		if ok, err := f.Valid(value); !ok {
			return nil, fmt.Errorf("invalid value %v of type %T for feature %s: %v", value, value, f.Name(), err)
		}
		record[f.Name()] = value
	}
	return record, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(records []dataset.Record) (int, error) {
	for n, r := range records {
		if err := cw.WriteRecord(r); err != nil {
			return n, err
		}
	}
	return len(records), nil
}

/*
WriteRecord writes a single record as a CSV row. Values the record
does not define are written as the undefined marker.
*/
func (cw *csvWriter) WriteRecord(record dataset.Record) error {
	row := make([]string, len(cw.features))
	for j, f := range cw.features {
		v, ok := record[f.Name()]
		if !ok || v == nil {
			row[j] = feature.UndefinedValue
		} else {
			row[j] = fmt.Sprintf("%v", v)
		}
	}
	err := cw.w.Write(row)
	if err != nil {
		return fmt.Errorf("writing CSV row for record %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

func featureSliceToMap(features []feature.Feature) map[string]feature.Feature {
	result := make(map[string]feature.Feature)
	for _, f := range features {
		result[f.Name()] = f
	}
	return result
}
