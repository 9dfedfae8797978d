package main

import (
	"fmt"
	"io"
	"os"

	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
	"github.com/spf13/cobra"
)

type explainCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	metadataInput string
	recordInput   string
	registryURL   string
	modelRef      string
}

func explainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &explainCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "explain [feature=value...]",
		Short: "Explain the prediction a tree makes for a record",
		Long:  `Print the decision path a tree walks to predict a record, one condition per line from the root down to the answering leaf. When the record lacks a feature some decision asks for, the path walked up to that point is printed and the command fails.`,
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
			path, err := t.Path(record)
			printPath(os.Stdout, t, path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "explaining prediction: %v\n", err)
				os.Exit(6)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the features the tree was grown on (enables the input flag and the interactive form)")
	cmd.PersistentFlags().StringVarP(&(config.recordInput), "input", "i", "", "path to a JSON file with the record to explain, - for STDIN")
	cmd.PersistentFlags().StringVarP(&(config.registryURL), "registry", "r", "", "redis URL of the model registry to load the model from (defaults to the registry on the config file)")
	cmd.PersistentFlags().StringVar(&(config.modelRef), "model", "", "ID or name of a registry model to explain, instead of the tree flag")
	return cmd
}

func (ecc *explainCmdConfig) Validate() error {
	return validateTreeSource(ecc.treeInput, ecc.registryURL, ecc.modelRef)
}

/*
printPath writes a decision path one node per line: the condition
the record satisfied for every decision taken, the prediction on
the leaf, and a stop marker when the walk could not go on.
*/
func printPath(w io.Writer, t *tree.Tree, path []*tree.Node) {
	for i, n := range path {
		switch {
		case n.IsLeaf():
			fmt.Fprintf(w, "[%d] %s = %s (confidence %.2f, samples %d)\n", i+1, t.Target, n.Label, n.Confidence, n.Samples)
		case i+1 < len(path):
			fmt.Fprintf(w, "[%d] %s (gain %.3f, samples %d)\n", i+1, n.Split.Condition(path[i+1] == n.Left), n.Confidence, n.Samples)
		default:
			fmt.Fprintf(w, "[%d] stopped at %v\n", i+1, n)
		}
	}
}
