package mongodataset

import (
	"testing"

	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/mgo.v2/bson"
)

func TestOpenRejectsUnusableFeatureNames(t *testing.T) {
	_, err := Open(nil, []feature.Feature{feature.NewNumericFeature("_id")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved collection field")

	_, err = Open(nil, []feature.Feature{feature.NewNumericFeature("a.b")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved characters")

	_, err = Open(nil, []feature.Feature{feature.NewCategoricalFeature("$cost", []string{"low"})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved characters")
}

func TestRecordFromDocument(t *testing.T) {
	s := &Set{features: []feature.Feature{
		feature.NewNumericFeature("age"),
		feature.NewNumericFeature("height"),
		feature.NewNumericFeature("weight"),
		feature.NewCategoricalFeature("color", []string{"red", "blue"}),
	}}

	r := s.record(bson.M{
		"age":    34.5,
		"height": 178,
		"weight": int64(70),
		"color":  "red",
		"extra":  "ignored",
	})
	assert.Equal(t, 34.5, r["age"])
	assert.Equal(t, 178.0, r["height"])
	assert.Equal(t, 70.0, r["weight"])
	assert.Equal(t, "red", r["color"])
	assert.NotContains(t, r, "extra")
}

func TestRecordSkipsUndefinedAndUnusableValues(t *testing.T) {
	s := &Set{features: []feature.Feature{
		feature.NewNumericFeature("age"),
		feature.NewCategoricalFeature("color", []string{"red", "blue"}),
	}}

	r := s.record(bson.M{"age": "not a number"})
	assert.NotContains(t, r, "age")
	assert.NotContains(t, r, "color")

	r = s.record(bson.M{"age": nil, "color": "blue"})
	assert.NotContains(t, r, "age")
	assert.Equal(t, "blue", r["color"])
}
