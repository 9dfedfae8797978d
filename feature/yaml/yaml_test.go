package yaml

import (
	"testing"

	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetadata = `
features:
  age: numeric
  color:
    - red
    - blue
    - green
  income: numeric
`

func TestReadFeatures(t *testing.T) {
	features, err := ReadFeatures([]byte(sampleMetadata))
	require.NoError(t, err)
	require.Len(t, features, 3)

	_, ok := features[0].(*feature.NumericFeature)
	assert.True(t, ok)
	assert.Equal(t, "age", features[0].Name())

	cf, ok := features[1].(*feature.CategoricalFeature)
	require.True(t, ok)
	assert.Equal(t, "color", cf.Name())
	assert.Equal(t, []string{"red", "blue", "green"}, cf.Values())

	assert.Equal(t, "income", features[2].Name())
}

func TestReadFeaturesKeepsDeclarationOrder(t *testing.T) {
	features, err := ReadFeatures([]byte(sampleMetadata))
	require.NoError(t, err)
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"age", "color", "income"}, names)
}

func TestReadFeaturesWithoutFeatureSection(t *testing.T) {
	_, err := ReadFeatures([]byte("other: thing"))
	assert.Error(t, err)
}

func TestReadFeaturesFromFile(t *testing.T) {
	features, err := ReadFeaturesFromFile("testdata/weather.yml")
	require.NoError(t, err)
	require.Len(t, features, 5)
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"outlook", "temperature", "humidity", "wind", "play"}, names)
	cf, ok := features[4].(*feature.CategoricalFeature)
	require.True(t, ok)
	assert.Equal(t, []string{"yes", "no"}, cf.Values())
}

func TestReadFeaturesFromMissingFile(t *testing.T) {
	_, err := ReadFeaturesFromFile("testdata/nope.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading features yml file")
}

func TestWriteFeaturesRoundTrip(t *testing.T) {
	original := []feature.Feature{
		feature.NewNumericFeature("age"),
		feature.NewCategoricalFeature("color", []string{"red", "blue"}),
	}
	md, err := WriteFeatures(original)
	require.NoError(t, err)

	features, err := ReadFeatures(md)
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, "age", features[0].Name())
	cf, ok := features[1].(*feature.CategoricalFeature)
	require.True(t, ok)
	assert.Equal(t, []string{"red", "blue"}, cf.Values())
}
