package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose    bool
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xai",
		Short: "xai is a tool to grow and explain decision trees",
		Long:  `A tool to grow decision trees from your data, explain the predictions they make, and explore what drives them`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress to STDERR")
	rootCmd.AddCommand(versionCmd(), growCmd(config), predictCmd(config), explainCmd(config), importanceCmd(config), testCmd(config), splitCmd(config), datasetCmd(config), exploreCmd(config))
	return rootCmd
}

func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
}
