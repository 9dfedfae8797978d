package main

import (
	"fmt"
	"os"
	"path/filepath"

	xai "github.com/farazjawedd/XAI-FINAL-PROJ"
	"github.com/spf13/viper"
)

/*
fileConfig is the optional configuration read from an xai.yaml
file in the working directory or in ~/.config/xai: default
hyperparameters for growing, columns to always exclude and the
URL of the default model registry. Flags override file values,
file values override the built-in defaults.
*/
type fileConfig struct {
	MaxDepth      int      `mapstructure:"max-depth"`
	MinSamples    int      `mapstructure:"min-samples"`
	MinLeaf       int      `mapstructure:"min-leaf"`
	MinGain       float64  `mapstructure:"min-gain"`
	MaxThresholds int      `mapstructure:"max-thresholds"`
	Exclude       []string `mapstructure:"exclude"`
	Registry      string   `mapstructure:"registry"`
}

func loadFileConfig() (*fileConfig, error) {
	v := viper.New()
	v.SetConfigName("xai")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "xai"))
	}
	v.SetDefault("max-depth", xai.DefaultMaxDepth)
	v.SetDefault("min-samples", xai.DefaultMinSamples)
	v.SetDefault("min-leaf", xai.DefaultMinLeaf)
	v.SetDefault("min-gain", xai.DefaultMinGain)
	v.SetDefault("max-thresholds", xai.DefaultMaxThresholds)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %v", err)
		}
	}
	config := &fileConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("parsing config file: %v", err)
	}
	return config, nil
}
