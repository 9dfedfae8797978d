package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/spf13/cobra"
)

// writeBatchSize is the number of records buffered before
// flushing a batch to the output dataset.
const writeBatchSize = 100

type datasetCmdConfig struct {
	*datasourceCmdConfig
	output  string
	summary bool
	target  string
}

func datasetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &datasetCmdConfig{datasourceCmdConfig: &datasourceCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Copy and summarize datasets",
		Long:  `Copy a dataset between backends (CSV, SQLite3, PostgreSQL, MongoDB), or print a summary of it with the summary flag`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.summary {
				err = config.printSummary()
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
				return
			}
			features, err := config.Features()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			output, err := config.OutputWriter(config.output, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			recordStream, errStream, err := config.InputStream(features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			written := 0
			batch := make([]dataset.Record, 0, writeBatchSize)
			for r := range recordStream {
				batch = append(batch, r)
				if len(batch) < writeBatchSize {
					continue
				}
				_, err = output.Write(config.Context(), batch)
				if err != nil {
					config.ContextCancelFunc()()
					break
				}
				written += len(batch)
				batch = batch[:0]
			}
			if err == nil && len(batch) > 0 {
				_, err = output.Write(config.Context(), batch)
				written += len(batch)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			err = <-errStream
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(7)
			}
			config.Logf("Closing output dataset...")
			err = output.Close()
			if err != nil {
				fmt.Fprintf(os.Stderr, "closing output dataset: %v\n", err)
				os.Exit(8)
			}
			config.Logf("Done")
			config.Logf("%d records written", written)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB URL with the dataset to read (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the features available on the input (required except for CSV summaries)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB URL to dump the dataset to (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().BoolVar(&(config.summary), "summary", false, "print the record count of the dataset instead of copying it, with a per-value histogram of the target feature when set")
	cmd.PersistentFlags().StringVarP(&(config.target), "target", "t", "", "feature whose values the summary flag reports a histogram of")
	return cmd
}

func (dcc *datasetCmdConfig) Validate() error {
	if !dcc.summary && dcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if dcc.summary && dcc.output != "" {
		return fmt.Errorf("the summary flag cannot be combined with the output flag")
	}
	return dcc.datasourceCmdConfig.Validate()
}

func (dcc *datasetCmdConfig) printSummary() error {
	features, err := dcc.Features()
	if err != nil {
		return err
	}
	if dbInput(dcc.dataInput) {
		input, err := dcc.openInputSet(features)
		if err != nil {
			return err
		}
		defer input.Close()
		count, err := input.Count(dcc.Context())
		if err != nil {
			return fmt.Errorf("counting records: %v", err)
		}
		fmt.Printf("%d records\n", count)
		if dcc.target == "" {
			return nil
		}
		counts, err := input.CountValues(dcc.Context(), dcc.target)
		if err != nil {
			return fmt.Errorf("counting %s values: %v", dcc.target, err)
		}
		printHistogram(os.Stdout, counts)
		return nil
	}
	ds, _, err := dcc.Dataset()
	if err != nil {
		return err
	}
	fmt.Printf("%d records\n", ds.Count())
	if dcc.target == "" {
		return nil
	}
	if !ds.HasColumn(dcc.target) {
		return fmt.Errorf("target feature '%s' is not defined", dcc.target)
	}
	_, counts := ds.ClassCounts(dcc.target)
	printHistogram(os.Stdout, counts)
	return nil
}

/*
printHistogram prints one line per value with its count and its
share, most frequent first.
*/
func printHistogram(w io.Writer, counts map[string]int) {
	total := 0
	nameWidth := 0
	labels := make([]string, 0, len(counts))
	for l, c := range counts {
		labels = append(labels, l)
		total += c
		if len(l) > nameWidth {
			nameWidth = len(l)
		}
	}
	if total == 0 {
		return
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})
	for _, l := range labels {
		fmt.Fprintf(w, "%-*s  %d (%.1f%%)\n", nameWidth, l, counts[l], 100*float64(counts[l])/float64(total))
	}
}
