package feature

import (
	"fmt"
	"strconv"
)

/*
UndefinedValue is the cell content that readers interpret
as an undefined feature value.
*/
const UndefinedValue = "?"

/*
Detect takes a slice of column names and a slice of raw rows, with
each row holding one string cell per column, and infers a feature
for every column: if every defined cell of a column parses as a
float64 the column becomes a *NumericFeature, otherwise it becomes
a *CategoricalFeature whose labels are the distinct defined cell
values in first-seen order.

Cells that are empty or equal to UndefinedValue are considered
undefined and ignored for inference. A column with no defined cell
at all cannot be typed and makes Detect return an error.
*/
func Detect(columns []string, rows [][]string) ([]Feature, error) {
	features := make([]Feature, 0, len(columns))
	for i, c := range columns {
		numeric := true
		var seen []string
		seenSet := make(map[string]bool)
		for _, row := range rows {
			if i >= len(row) {
				return nil, fmt.Errorf("inferring type for column %s: row with %d cells, expected %d", c, len(row), len(columns))
			}
			v := row[i]
			if v == "" || v == UndefinedValue {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numeric = false
			}
			if !seenSet[v] {
				seenSet[v] = true
				seen = append(seen, v)
			}
		}
		if len(seen) == 0 {
			return nil, fmt.Errorf("inferring type for column %s: no defined values", c)
		}
		if numeric {
			features = append(features, NewNumericFeature(c))
		} else {
			features = append(features, NewCategoricalFeature(c, seen))
		}
	}
	return features, nil
}
