/*
Package json provides a compact JSON codec for feature.Feature
slices, used to bundle a feature schema together with a stored model.
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
)

type jsonFeature struct {
	Type   string   `json:"t"`
	Name   string   `json:"f"`
	Values []string `json:"vs,omitempty"`
}

/*
EncodeFeatures takes a slice of feature.Feature and returns a slice of
bytes with the features encoded as a JSON array, or an error if any
feature is of an unknown type. Feature order is preserved.
*/
func EncodeFeatures(features []feature.Feature) ([]byte, error) {
	jfs := make([]*jsonFeature, 0, len(features))
	for _, f := range features {
		switch f := f.(type) {
		case *feature.NumericFeature:
			jfs = append(jfs, &jsonFeature{Type: "numeric", Name: f.Name()})
		case *feature.CategoricalFeature:
			jfs = append(jfs, &jsonFeature{Type: "categorical", Name: f.Name(), Values: f.Values()})
		default:
			return nil, fmt.Errorf("encoding feature %s: unknown type %T", f.Name(), f)
		}
	}
	return json.Marshal(jfs)
}

/*
DecodeFeatures takes a slice of bytes with a JSON array encoded by
EncodeFeatures and returns the decoded slice of feature.Feature or an
error if the data cannot be parsed or declares an unknown feature type.
*/
func DecodeFeatures(data []byte) ([]feature.Feature, error) {
	var jfs []*jsonFeature
	err := json.Unmarshal(data, &jfs)
	if err != nil {
		return nil, fmt.Errorf("decoding features: %v", err)
	}
	features := make([]feature.Feature, 0, len(jfs))
	for _, jf := range jfs {
		switch jf.Type {
		case "numeric":
			features = append(features, feature.NewNumericFeature(jf.Name))
		case "categorical":
			features = append(features, feature.NewCategoricalFeature(jf.Name, jf.Values))
		default:
			return nil, fmt.Errorf("decoding feature %s: unknown type %q", jf.Name, jf.Type)
		}
	}
	return features, nil
}
