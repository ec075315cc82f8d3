package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath   string // the metadata block TSV file to check
	DialectPath string // optional YAML file overriding the dialect defaults

	DeepNesting bool
	LogFormat   string
	LogLevel    string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
