package main

import (
	"fmt"
	"os"

	xai "github.com/farazjawedd/XAI-FINAL-PROJ"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
	treejson "github.com/farazjawedd/XAI-FINAL-PROJ/tree/json"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*datasourceCmdConfig
	output        string
	target        string
	maxDepth      int
	minSamples    int
	minLeaf       int
	minGain       float64
	maxThresholds int
	exclude       []string
	name          string
	registryURL   string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{datasourceCmdConfig: &datasourceCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a dataset",
		Long:  `Grow a decision tree from a dataset to predict a certain feature.`,
		Run: func(cmd *cobra.Command, args []string) {
			fileCfg, err := loadFileConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.applyFileConfig(cmd, fileCfg)
			err = config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			ds, features, err := config.Dataset()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			if !ds.HasColumn(config.target) {
				fmt.Fprintf(os.Stderr, "target feature '%s' is not defined\n", config.target)
				os.Exit(4)
			}
			grower := config.grower()
			config.Logf("Growing tree from a dataset with %d records and %d features to predict %s ...", ds.Count(), len(features)-1, config.target)
			t, err := grower.Grow(ds)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(5)
			}
			if t == nil {
				fmt.Fprintf(os.Stderr, "cannot grow a tree from %d records, at least %d are needed\n", ds.Count(), grower.MinSamples)
				os.Exit(6)
			}
			config.Logf("Done")
			config.Logf("%v", t)
			if config.name != "" {
				id, err := config.storeModel(t, features)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(7)
				}
				fmt.Printf("Stored model %s as %s\n", config.name, id)
				if config.output == "" {
					return
				}
			}
			err = outputTree(config.output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB URL with data to grow the tree from (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the features available on the input (required for DB inputs, otherwise detected)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.target), "target", "t", "", "name of the feature the grown tree should predict (required)")
	cmd.PersistentFlags().IntVar(&(config.maxDepth), "max-depth", xai.DefaultMaxDepth, "maximum number of decision levels on the grown tree")
	cmd.PersistentFlags().IntVar(&(config.minSamples), "min-samples", xai.DefaultMinSamples, "minimum number of records a node must have to be split further")
	cmd.PersistentFlags().IntVar(&(config.minLeaf), "min-leaf", xai.DefaultMinLeaf, "minimum number of records each side of a split must keep")
	cmd.PersistentFlags().Float64Var(&(config.minGain), "min-gain", xai.DefaultMinGain, "minimum information gain a split must exceed to be worth a decision node")
	cmd.PersistentFlags().IntVar(&(config.maxThresholds), "max-thresholds", xai.DefaultMaxThresholds, "maximum number of thresholds scanned over a numeric feature's range")
	cmd.PersistentFlags().StringSliceVarP(&(config.exclude), "exclude", "x", nil, "features never considered for splitting, such as identifier columns")
	cmd.PersistentFlags().StringVarP(&(config.name), "name", "n", "", "name under which to store the grown tree as a model on the registry")
	cmd.PersistentFlags().StringVarP(&(config.registryURL), "registry", "r", "", "redis URL of the model registry to store the grown tree in (defaults to the registry on the config file)")
	return cmd
}

func (gcc *growCmdConfig) applyFileConfig(cmd *cobra.Command, fileCfg *fileConfig) {
	flags := cmd.Flags()
	if !flags.Changed("max-depth") {
		gcc.maxDepth = fileCfg.MaxDepth
	}
	if !flags.Changed("min-samples") {
		gcc.minSamples = fileCfg.MinSamples
	}
	if !flags.Changed("min-leaf") {
		gcc.minLeaf = fileCfg.MinLeaf
	}
	if !flags.Changed("min-gain") {
		gcc.minGain = fileCfg.MinGain
	}
	if !flags.Changed("max-thresholds") {
		gcc.maxThresholds = fileCfg.MaxThresholds
	}
	gcc.exclude = append(gcc.exclude, fileCfg.Exclude...)
	if gcc.registryURL == "" {
		gcc.registryURL = fileCfg.Registry
	}
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.target == "" {
		return fmt.Errorf("required target flag was not set")
	}
	if gcc.name != "" && gcc.registryURL == "" {
		return fmt.Errorf("required registry flag was not set: storing a model needs a registry")
	}
	return gcc.datasourceCmdConfig.Validate()
}

func (gcc *growCmdConfig) grower() *xai.Grower {
	return &xai.Grower{
		Target:        gcc.target,
		MaxDepth:      gcc.maxDepth,
		MinSamples:    gcc.minSamples,
		MinLeaf:       gcc.minLeaf,
		MinGain:       gcc.minGain,
		MaxThresholds: gcc.maxThresholds,
		Excluded:      gcc.exclude,
	}
}

func (gcc *growCmdConfig) storeModel(t *tree.Tree, features []feature.Feature) (string, error) {
	store, err := openRegistry(gcc.registryURL)
	if err != nil {
		return "", err
	}
	defer store.Close(gcc.Context())
	gcc.Logf("Storing model %s on the registry at %s...", gcc.name, gcc.registryURL)
	m := &tree.Model{Name: gcc.name, Target: t.Target, Features: features, Tree: t}
	err = store.Save(gcc.Context(), m)
	if err != nil {
		return "", fmt.Errorf("storing model %s: %v", gcc.name, err)
	}
	return m.ID, nil
}

func outputTree(outputPath string, t *tree.Tree) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return treejson.WriteJSONTree(t, f)
}
