/*
Package json encodes and decodes single dataset records as JSON
objects. The predict and explain commands use it to read probe
inputs from a file or stdin.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
)

/*
DecodeRecord takes a slice of bytes with a JSON object mapping feature
names to values and a slice of features, and returns the record decoded
from it or an error. Values must match the declared feature types:
numbers for numeric features, known labels for categorical ones.
Referencing a feature not present in the slice is an error.
*/
func DecodeRecord(data []byte, features []feature.Feature) (dataset.Record, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding record: %v", err)
	}
	featuresByName := make(map[string]feature.Feature)
	for _, f := range features {
		featuresByName[f.Name()] = f
	}
	record := make(dataset.Record)
	for name, v := range raw {
		f, ok := featuresByName[name]
		if !ok {
			return nil, fmt.Errorf("decoding record: unknown feature %s", name)
		}
		if ok, err := f.Valid(v); !ok {
			return nil, fmt.Errorf("decoding record: %v", err)
		}
		record[name] = v
	}
	return record, nil
}

/*
EncodeRecord takes a record and returns a slice of bytes with the
record encoded as a JSON object.
*/
func EncodeRecord(record dataset.Record) ([]byte, error) {
	return json.Marshal(record)
}

/*
ReadRecord reads all of the given io.Reader and decodes its content
with DecodeRecord.
*/
func ReadRecord(r io.Reader, features []feature.Feature) (dataset.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading record: %v", err)
	}
	return DecodeRecord(data, features)
}

/*
ReadRecordFromFile opens the file at the given path (os.Stdin when the
path is "") and decodes a record from it with ReadRecord.
*/
func ReadRecordFromFile(filepath string, features []feature.Feature) (dataset.Record, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading record from %s: %v", filepath, err)
		}
		defer f.Close()
	}
	record, err := ReadRecord(f, features)
	if err != nil && filepath != "" {
		err = fmt.Errorf("parsing record from %s: %v", filepath, err)
	}
	return record, err
}
