package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type importanceCmdConfig struct {
	*rootCmdConfig
	treeInput   string
	registryURL string
	modelRef    string
	jsonOutput  bool
}

func importanceCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &importanceCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "importance",
		Short: "Rank the features of a tree by importance",
		Long:  `Rank the features a tree splits on by their share of the tree's total split quality, most important first`,
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
			weights := t.Importance()
			if config.jsonOutput {
				data, err := json.MarshalIndent(weights, "", "  ")
				if err != nil {
					fmt.Fprintf(os.Stderr, "encoding feature weights: %v\n", err)
					os.Exit(4)
				}
				fmt.Println(string(data))
				return
			}
			if len(weights) == 0 {
				fmt.Println("the tree has no decision nodes")
				return
			}
			nameWidth := len("FEATURE")
			for _, w := range weights {
				if len(w.Feature) > nameWidth {
					nameWidth = len(w.Feature)
				}
			}
			fmt.Printf("%-*s  WEIGHT\n", nameWidth, "FEATURE")
			for _, w := range weights {
				fmt.Printf("%-*s  %5.1f%%\n", nameWidth, w.Feature, 100*w.Weight)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON")
	cmd.PersistentFlags().StringVarP(&(config.registryURL), "registry", "r", "", "redis URL of the model registry to load the model from (defaults to the registry on the config file)")
	cmd.PersistentFlags().StringVar(&(config.modelRef), "model", "", "ID or name of a registry model to rank, instead of the tree flag")
	cmd.PersistentFlags().BoolVar(&(config.jsonOutput), "json", false, "print the ranking as JSON")
	return cmd
}

func (icc *importanceCmdConfig) Validate() error {
	return validateTreeSource(icc.treeInput, icc.registryURL, icc.modelRef)
}
