package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// config holds the CLI's defaults, overridable by an optional YAML file.
// These knobs are external to the codec itself.
type config struct {
	CompressionLevel int  `yaml:"compression_level"`
	Verify           bool `yaml:"verify"`
}

func defaultConfig() config {
	return config{CompressionLevel: 3, Verify: false}
}

// loadConfig reads path as YAML, falling back to defaultConfig if the
// file does not exist.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
