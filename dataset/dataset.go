/*
Package dataset defines the in-memory representation of a tabular
dataset: an ordered list of columns and the records holding a value
for each column.

Datasets are assembled by the reader subpackages (csv, sqldataset,
mongodataset) and consumed read-only by the tree grower, which relies
on the column order being the declaration order of the source.
*/
package dataset

import "fmt"

/*
Record maps a column name to its value for one observation.
Values are either float64, for numeric columns, or string, for
categorical columns. Records are read-only once loaded.
*/
type Record map[string]interface{}

/*
Dataset is a collection of records sharing one column set.
The column slice fixes the enumeration order used by split search.
*/
type Dataset struct {
	Columns []string
	Records []Record
}

/*
New takes a slice of column names and a slice of records and
returns a dataset built with them.
*/
func New(columns []string, records []Record) *Dataset {
	return &Dataset{Columns: columns, Records: records}
}

/*
Count returns the number of records in the dataset.
*/
func (ds *Dataset) Count() int {
	return len(ds.Records)
}

/*
HasColumn returns whether the dataset declares the given column.
*/
func (ds *Dataset) HasColumn(name string) bool {
	for _, c := range ds.Columns {
		if c == name {
			return true
		}
	}
	return false
}

/*
ClassCounts takes a slice of records and a target column name and
returns the distinct labels observed for the target, in first-seen
order, together with the count per label. Records without a defined
value for the target are ignored. Non-string values are counted
under their string representation.
*/
func ClassCounts(records []Record, target string) ([]string, map[string]int) {
	var labels []string
	counts := make(map[string]int)
	for _, r := range records {
		v, ok := r[target]
		if !ok || v == nil {
			continue
		}
		label, ok := v.(string)
		if !ok {
			label = fmt.Sprintf("%v", v)
		}
		if counts[label] == 0 {
			labels = append(labels, label)
		}
		counts[label]++
	}
	return labels, counts
}

/*
ClassCounts on a dataset counts over all its records.
*/
func (ds *Dataset) ClassCounts(target string) ([]string, map[string]int) {
	return ClassCounts(ds.Records, target)
}
