package main

import (
	"fmt"
	"os"

	xai "github.com/farazjawedd/XAI-FINAL-PROJ"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*datasourceCmdConfig
	treeInput   string
	registryURL string
	modelRef    string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{datasourceCmdConfig: &datasourceCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a labeled dataset`,
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
			t, _, err := resolveTree(config.rootCmdConfig, config.treeInput, config.registryURL, config.modelRef)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			ds, _, err := config.Dataset()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Testing tree against a dataset with %d records...", ds.Count())
			evaluation, err := xai.Evaluate(config.Context(), t, ds)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			fmt.Printf("%f success rate, failed to make a prediction for %d records\n", evaluation.Accuracy, evaluation.Failed)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB URL with the dataset to test against (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the features available on the input (required for DB inputs, otherwise detected)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON")
	cmd.PersistentFlags().StringVarP(&(config.registryURL), "registry", "r", "", "redis URL of the model registry to load the model from (defaults to the registry on the config file)")
	cmd.PersistentFlags().StringVar(&(config.modelRef), "model", "", "ID or name of a registry model to test, instead of the tree flag")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	err := validateTreeSource(tcc.treeInput, tcc.registryURL, tcc.modelRef)
	if err != nil {
		return err
	}
	return tcc.datasourceCmdConfig.Validate()
}
