package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const irisSample = `sepal,petal,species
5.1,1.4,setosa
7.0,4.7,versicolor
6.3,6.0,virginica
`

func testFeatures() []feature.Feature {
	return []feature.Feature{
		feature.NewNumericFeature("sepal"),
		feature.NewNumericFeature("petal"),
		feature.NewCategoricalFeature("species", []string{"setosa", "versicolor", "virginica"}),
	}
}

func TestReadTypedRecords(t *testing.T) {
	ds, skipped, err := Read(strings.NewReader(irisSample), testFeatures())
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, []string{"sepal", "petal", "species"}, ds.Columns)
	require.Equal(t, 3, ds.Count())
	assert.Equal(t, 5.1, ds.Records[0]["sepal"])
	assert.Equal(t, "setosa", ds.Records[0]["species"])
}

func TestReadSkipsUndefinedRecords(t *testing.T) {
	in := "sepal,petal,species\n5.1,1.4,setosa\n?,4.7,versicolor\n6.3,,virginica\n"
	ds, skipped, err := Read(strings.NewReader(in), testFeatures())
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, 1, ds.Count())
}

func TestReadRejectsUnknownHeaderColumn(t *testing.T) {
	in := "sepal,width\n5.1,2.2\n"
	_, _, err := Read(strings.NewReader(in), testFeatures())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature")
}

func TestReadRejectsUnknownCategory(t *testing.T) {
	in := "sepal,petal,species\n5.1,1.4,tulip\n"
	_, _, err := Read(strings.NewReader(in), testFeatures())
	assert.Error(t, err)
}

func TestReadByRecordStopsOnFalse(t *testing.T) {
	var got []dataset.Record
	_, _, err := ReadByRecord(strings.NewReader(irisSample), testFeatures(), func(i int, r dataset.Record) (bool, error) {
		got = append(got, r)
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReadDetect(t *testing.T) {
	ds, features, skipped, err := ReadDetect(strings.NewReader(irisSample))
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, features, 3)
	_, ok := features[0].(*feature.NumericFeature)
	assert.True(t, ok)
	cf, ok := features[2].(*feature.CategoricalFeature)
	require.True(t, ok)
	assert.Equal(t, []string{"setosa", "versicolor", "virginica"}, cf.Values())
	assert.Equal(t, 3, ds.Count())
}

func TestWriteDatasetRoundTrip(t *testing.T) {
	features := testFeatures()
	ds, _, err := Read(strings.NewReader(irisSample), features)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, ds, features))

	reread, skipped, err := Read(&buf, features)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, ds.Columns, reread.Columns)
	assert.Equal(t, ds.Records, reread.Records)
}

func TestWriterCountsRecords(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, testFeatures())
	require.NoError(t, err)
	n, err := w.Write([]dataset.Record{
		{"sepal": 5.1, "petal": 1.4, "species": "setosa"},
		{"sepal": 7.0, "petal": 4.7, "species": "versicolor"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Flush())
	assert.Equal(t, 3, len(strings.Split(strings.TrimSpace(buf.String()), "\n")))
}

func TestReadFromFilePath(t *testing.T) {
	features := []feature.Feature{
		feature.NewCategoricalFeature("outlook", []string{"sunny", "overcast", "rain"}),
		feature.NewNumericFeature("temperature"),
		feature.NewNumericFeature("humidity"),
		feature.NewCategoricalFeature("wind", []string{"weak", "strong"}),
		feature.NewCategoricalFeature("play", []string{"yes", "no"}),
	}
	ds, skipped, err := ReadFromFilePath("testdata/weather.csv", features)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, []string{"outlook", "temperature", "humidity", "wind", "play"}, ds.Columns)
	require.Equal(t, 14, ds.Count())
	assert.Equal(t, "sunny", ds.Records[0]["outlook"])
	assert.Equal(t, 85.0, ds.Records[0]["temperature"])
	assert.Equal(t, "no", ds.Records[0]["play"])
}
