package json

import (
	"testing"

	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord(t *testing.T) {
	features := []feature.Feature{
		feature.NewNumericFeature("age"),
		feature.NewCategoricalFeature("color", []string{"red", "blue"}),
	}
	record, err := DecodeRecord([]byte(`{"age": 34, "color": "red"}`), features)
	require.NoError(t, err)
	assert.Equal(t, 34.0, record["age"])
	assert.Equal(t, "red", record["color"])
}

func TestDecodeRecordRejectsUnknownFeature(t *testing.T) {
	features := []feature.Feature{feature.NewNumericFeature("age")}
	_, err := DecodeRecord([]byte(`{"height": 180}`), features)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature")
}

func TestDecodeRecordRejectsWrongType(t *testing.T) {
	features := []feature.Feature{feature.NewNumericFeature("age")}
	_, err := DecodeRecord([]byte(`{"age": "old"}`), features)
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	features := []feature.Feature{
		feature.NewNumericFeature("age"),
		feature.NewCategoricalFeature("color", []string{"red", "blue"}),
	}
	original, err := DecodeRecord([]byte(`{"age": 34, "color": "blue"}`), features)
	require.NoError(t, err)
	data, err := EncodeRecord(original)
	require.NoError(t, err)
	decoded, err := DecodeRecord(data, features)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
