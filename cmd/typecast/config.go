package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultConfigFile is picked up from the working directory when no
// --config flag is given.
const defaultConfigFile = ".typecast.yaml"

type config struct {
	Strategy          string `yaml:"strategy"`
	HTMLPreprocessing bool   `yaml:"html_preprocessing"`
	LogLevel          string `yaml:"log_level"`
}

func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return cfg, nil
		}
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
