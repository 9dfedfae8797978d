package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTypesColumns(t *testing.T) {
	columns := []string{"age", "color", "score"}
	rows := [][]string{
		{"34", "red", "1.5"},
		{"29", "blue", "2"},
		{"41", "red", "0.25"},
	}
	features, err := Detect(columns, rows)
	require.NoError(t, err)
	require.Len(t, features, 3)

	_, ok := features[0].(*NumericFeature)
	assert.True(t, ok, "age should be numeric")
	assert.Equal(t, "age", features[0].Name())

	cf, ok := features[1].(*CategoricalFeature)
	require.True(t, ok, "color should be categorical")
	assert.Equal(t, []string{"red", "blue"}, cf.Values())

	_, ok = features[2].(*NumericFeature)
	assert.True(t, ok, "score should be numeric")
}

func TestDetectMixedColumnIsCategorical(t *testing.T) {
	features, err := Detect([]string{"c"}, [][]string{{"1"}, {"x"}, {"2"}})
	require.NoError(t, err)
	cf, ok := features[0].(*CategoricalFeature)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "x", "2"}, cf.Values())
}

func TestDetectIgnoresUndefinedCells(t *testing.T) {
	features, err := Detect([]string{"n"}, [][]string{{"?"}, {""}, {"3.5"}})
	require.NoError(t, err)
	_, ok := features[0].(*NumericFeature)
	assert.True(t, ok)
}

func TestDetectFailsOnEmptyColumn(t *testing.T) {
	_, err := Detect([]string{"n"}, [][]string{{"?"}, {""}})
	assert.Error(t, err)
}

func TestDetectFailsOnShortRow(t *testing.T) {
	_, err := Detect([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	assert.Error(t, err)
}

func TestCategoricalFeatureValid(t *testing.T) {
	cf := NewCategoricalFeature("color", []string{"red", "blue"})
	ok, err := cf.Valid("red")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cf.Valid("green")
	assert.Error(t, err)
	assert.False(t, ok)

	ok, err = cf.Valid(3.5)
	assert.Error(t, err)
	assert.False(t, ok)

	ok, err = cf.Valid(nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNumericFeatureValid(t *testing.T) {
	nf := NewNumericFeature("age")
	ok, err := nf.Valid(3.5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = nf.Valid("3.5")
	assert.Error(t, err)
	assert.False(t, ok)
}
