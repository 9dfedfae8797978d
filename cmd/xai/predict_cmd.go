package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/json"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature/yaml"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	recordInput   string
	registryURL   string
	modelRef      string
	explain       bool
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict [feature=value...]",
		Short: "Predict the target feature for a record",
		Long:  `Use a grown tree to predict the target feature for a record given as feature=value arguments, as a JSON file, or answering an interactive form`,
		Run: func(cmd *cobra.Command, args []string) {
			fileCfg, err := loadFileConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.registryURL == "" {
				config.registryURL = fileCfg.Registry
			}
			err = config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, modelFeatures, err := resolveTree(config.rootCmdConfig, config.treeInput, config.registryURL, config.modelRef)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			features, err := resolveFeatures(modelFeatures, config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			record, err := resolveRecord(config.recordInput, features, args, t.Target, true)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			prediction, err := t.Predict(record)
			if err != nil {
				fmt.Fprintf(os.Stderr, "predicting %s: %v\n", t.Target, err)
				os.Exit(6)
			}
			fmt.Printf("%s: %v\n", t.Target, prediction)
			if config.explain {
				path, err := t.Path(record)
				if err != nil {
					fmt.Fprintf(os.Stderr, "explaining prediction: %v\n", err)
					os.Exit(7)
				}
				printPath(os.Stdout, t, path)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the features the tree was grown on (enables the input flag and the interactive form)")
	cmd.PersistentFlags().StringVarP(&(config.recordInput), "input", "i", "", "path to a JSON file with the record to predict, - for STDIN")
	cmd.PersistentFlags().StringVarP(&(config.registryURL), "registry", "r", "", "redis URL of the model registry to load the model from (defaults to the registry on the config file)")
	cmd.PersistentFlags().StringVar(&(config.modelRef), "model", "", "ID or name of a registry model to predict with, instead of the tree flag")
	cmd.PersistentFlags().BoolVarP(&(config.explain), "explain", "e", false, "print the decision path behind the prediction")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	return validateTreeSource(pcc.treeInput, pcc.registryURL, pcc.modelRef)
}

/*
resolveFeatures returns the schema to interpret records with: the
one the model was grown on when loading from the registry, the
metadata file otherwise. A nil result means no schema is
available and values will be guessed from their spelling.
*/
func resolveFeatures(modelFeatures []feature.Feature, metadataInput string) ([]feature.Feature, error) {
	if modelFeatures != nil {
		return modelFeatures, nil
	}
	if metadataInput == "" {
		return nil, nil
	}
	return yaml.ReadFeaturesFromFile(metadataInput)
}

/*
resolveRecord builds the record to walk the tree with: from a
JSON file or STDIN when recordInput is set, from feature=value
arguments otherwise. With no source and form enabled, the record
is filled in answering an interactive form, which needs a schema.
*/
func resolveRecord(recordInput string, features []feature.Feature, args []string, target string, form bool) (dataset.Record, error) {
	if recordInput != "" {
		if features == nil {
			return nil, fmt.Errorf("the input flag needs a schema: set the metadata flag or load a model from the registry")
		}
		if recordInput == "-" {
			return json.ReadRecord(os.Stdin, features)
		}
		return json.ReadRecordFromFile(recordInput, features)
	}
	if len(args) > 0 {
		return parseRecordArgs(args, features)
	}
	if !form {
		return nil, nil
	}
	if features == nil {
		return nil, fmt.Errorf("no record given: give feature=value arguments, the input flag, or a schema to fill in a form")
	}
	record := dataset.Record{}
	err := fillRecordForm(features, target, record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

/*
parseRecordArgs parses feature=value arguments into a record.
With a schema, values are parsed and validated against their
feature; without one, values that read as numbers are numeric and
everything else is categorical.
*/
func parseRecordArgs(args []string, features []feature.Feature) (dataset.Record, error) {
	featuresByName := make(map[string]feature.Feature)
	for _, f := range features {
		featuresByName[f.Name()] = f
	}
	record := dataset.Record{}
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("argument %q is not a feature=value pair", arg)
		}
		name, value := parts[0], parts[1]
		var v interface{}
		switch f := featuresByName[name].(type) {
		case *feature.NumericFeature:
			number, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %s expects a number", arg, name)
			}
			v = number
		case *feature.CategoricalFeature:
			if ok, err := f.Valid(value); !ok {
				return nil, fmt.Errorf("parsing %s: %v", arg, err)
			}
			v = value
		default:
			if number, err := strconv.ParseFloat(value, 64); err == nil {
				v = number
			} else {
				v = value
			}
		}
		record[name] = v
	}
	return record, nil
}

/*
fillRecordForm asks for a value for every feature the record does
not define yet, except the target: a select for categorical
features and a validated text input for numeric ones. Features
answered as unknown are left undefined on the record.
*/
func fillRecordForm(features []feature.Feature, target string, record dataset.Record) error {
	const undefined = "?"
	var fields []huh.Field
	values := make(map[string]*string)
	numeric := make(map[string]bool)
	for _, f := range features {
		if f.Name() == target {
			continue
		}
		if _, ok := record[f.Name()]; ok {
			continue
		}
		value := new(string)
		values[f.Name()] = value
		switch f := f.(type) {
		case *feature.CategoricalFeature:
			options := append(append([]string{}, f.Values()...), undefined)
			fields = append(fields, huh.NewSelect[string]().
				Title(f.Name()).
				Description("pick ? if unknown").
				Options(huh.NewOptions(options...)...).
				Value(value))
		case *feature.NumericFeature:
			name := f.Name()
			numeric[name] = true
			fields = append(fields, huh.NewInput().
				Title(name).
				Description("a number, or empty if unknown").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.ParseFloat(s, 64); err != nil {
						return fmt.Errorf("%s must be a number", name)
					}
					return nil
				}).
				Value(value))
		}
	}
	if len(fields) == 0 {
		return nil
	}
	err := huh.NewForm(huh.NewGroup(fields...)).Run()
	if err != nil {
		return fmt.Errorf("requesting feature values: %v", err)
	}
	for name, value := range values {
		if *value == "" || *value == undefined {
			continue
		}
		if numeric[name] {
			number, err := strconv.ParseFloat(*value, 64)
			if err != nil {
				return fmt.Errorf("parsing %s value %q: %v", name, *value, err)
			}
			record[name] = number
		} else {
			record[name] = *value
		}
	}
	return nil
}
