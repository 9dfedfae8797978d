package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset/csv"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature/yaml"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*rootCmdConfig
	dataInput        string
	metadataInput    string
	output           string
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset into two datasets",
		Long:  `Split a CSV dataset into an output dataset and a split dataset, assigning each record to the split dataset with the given probability. Useful to carve a test dataset out of the data before growing.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.Logf("Reading features from metadata at %s...", config.metadataInput)
			features, err := yaml.ReadFeaturesFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Features from metadata read")

			var outputFile *os.File
			if config.output != "" {
				config.Logf("Creating %s to dump the output dataset...", config.output)
				outputFile, err = os.Create(config.output)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				defer outputFile.Close()
			} else {
				config.Logf("Using STDOUT to dump the output dataset...")
				outputFile = os.Stdout
			}
			output, err := csv.NewWriter(outputFile, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}

			config.Logf("Creating %s to dump the split dataset...", config.splitOutput)
			splitOutputFile, err := os.Create(config.splitOutput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			defer splitOutputFile.Close()
			splitOutput, err := csv.NewWriter(splitOutputFile, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}

			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			randomizer := rand.New(rand.NewSource(seed))
			splitter := func(i int, r dataset.Record) (bool, error) {
				var err error
				if (100 * randomizer.Float32()) > float32(config.splitProbability) {
					err = output.WriteRecord(r)
				} else {
					err = splitOutput.WriteRecord(r)
				}
				if err != nil {
					return false, err
				}
				return true, nil
			}

			var f *os.File
			if config.dataInput == "" {
				config.Logf("Reading input dataset from STDIN and splitting it into the output and split datasets...")
				f = os.Stdin
			} else {
				config.Logf("Opening %s to read input dataset...", config.dataInput)
				f, err = os.Open(config.dataInput)
				if err != nil {
					err = fmt.Errorf("reading input dataset from %s: %v", config.dataInput, err)
					fmt.Fprintln(os.Stderr, err)
					os.Exit(7)
				}
				config.Logf("Splitting input dataset into the output and split datasets...")
			}
			defer f.Close()
			_, skipped, err := csv.ReadByRecord(f, features, splitter)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
			if skipped > 0 {
				config.Logf("Skipped %d records with undefined values", skipped)
			}
			config.Logf("Flushing output dataset...")
			err = output.Flush()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(9)
			}
			config.Logf("Flushing split dataset...")
			err = splitOutput.Flush()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(10)
			}
			config.Logf("Done")
			config.Logf("Input dataset with %d records was split into datasets with %d and %d records", output.Count()+splitOutput.Count(), output.Count(), splitOutput.Count())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV file with the dataset to split (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the features available on the input file (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to dump the output dataset (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a file to dump the split dataset (required)")
	cmd.PersistentFlags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as a percent integer that a record of the dataset will be assigned to the split dataset")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the random assignment, for reproducible splits (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be an integer between 1 and 100")
	}
	return nil
}
