package main

import (
	"fmt"
	"os"

	"github.com/farazjawedd/XAI-FINAL-PROJ/explore"
	"github.com/spf13/cobra"
)

type exploreCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	recordInput   string
	registryURL   string
	modelRef      string
	watch         bool
}

func exploreCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &exploreCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "explore [feature=value...]",
		Short: "Explore a tree interactively",
		Long:  `Walk a grown tree in the terminal: descend and ascend its decisions, toggle a feature importance chart, pin nodes, and follow the decision path of a probe record given as feature=value arguments or through the input flag`,
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
			record, err := resolveRecord(config.recordInput, features, args, t.Target, false)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			err = explore.Run(t, explore.Config{
				TreePath: config.treeInput,
				Probe:    record,
				Watch:    config.watch,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the features the tree was grown on (enables the input flag)")
	cmd.PersistentFlags().StringVarP(&(config.recordInput), "input", "i", "", "path to a JSON file with a probe record whose decision path to highlight, - for STDIN")
	cmd.PersistentFlags().StringVarP(&(config.registryURL), "registry", "r", "", "redis URL of the model registry to load the model from (defaults to the registry on the config file)")
	cmd.PersistentFlags().StringVar(&(config.modelRef), "model", "", "ID or name of a registry model to explore, instead of the tree flag")
	cmd.PersistentFlags().BoolVarP(&(config.watch), "watch", "w", false, "reload the tree whenever its file is rewritten")
	return cmd
}

func (ecc *exploreCmdConfig) Validate() error {
	err := validateTreeSource(ecc.treeInput, ecc.registryURL, ecc.modelRef)
	if err != nil {
		return err
	}
	if ecc.watch && ecc.treeInput == "" {
		return fmt.Errorf("the watch flag follows a tree file and cannot be combined with the model flag")
	}
	return nil
}
