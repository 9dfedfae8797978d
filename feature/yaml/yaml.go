/*
Package yaml provides methods to parse feature.Feature specifications,
also known as metadata, from YAML documents, and to serialize them back.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadFeatures takes a slice of bytes with a feature specification in YML
and returns a slice of features parsed from it or an error.

The YML is expected to be an object containing a features property. The
value for this should be an object with a property for each feature with
its name and either the string value 'numeric' for numeric features or a
list of valid labels for categorical features. Features are returned in
declaration order.
*/
func ReadFeatures(md []byte) ([]feature.Feature, error) {
	metadata := struct {
		Features yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	features := []feature.Feature{}
	for _, item := range metadata.Features {
		fn := fmt.Sprintf("%v", item.Key)
		switch values := item.Value.(type) {
		case string:
			features = append(features, feature.NewNumericFeature(fn))
		case []interface{}:
			stringVs := []string{}
			for _, v := range values {
				stringVs = append(stringVs, fmt.Sprintf("%v", v))
			}
			features = append(features, feature.NewCategoricalFeature(fn, stringVs))
		case []string:
			features = append(features, feature.NewCategoricalFeature(fn, values))
		default:
			return nil, fmt.Errorf("invalid feature declaration of type %T", item.Value)
		}
	}
	return features, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]feature.Feature, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return features, err
}

/*
WriteFeatures takes a slice of features and returns a slice of bytes with
their specification in YML, in the same format ReadFeatures parses:
numeric features are declared with the string 'numeric' and categorical
features with the list of their labels. Feature order is preserved.
*/
func WriteFeatures(features []feature.Feature) ([]byte, error) {
	fs := make(yaml.MapSlice, 0, len(features))
	for _, f := range features {
		switch f := f.(type) {
		case *feature.NumericFeature:
			fs = append(fs, yaml.MapItem{Key: f.Name(), Value: "numeric"})
		case *feature.CategoricalFeature:
			fs = append(fs, yaml.MapItem{Key: f.Name(), Value: f.Values()})
		default:
			return nil, fmt.Errorf("cannot serialize feature %s of type %T", f.Name(), f)
		}
	}
	doc := struct {
		Features yaml.MapSlice `yaml:"features"`
	}{Features: fs}
	md, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("serializing yml features: %v", err)
	}
	return md, nil
}
