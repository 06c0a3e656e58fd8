package config

import (
	"bytes"
	"fmt"
	"strings"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Load reads the embedded defaults, merges the optional YAML file at path on
// top, decodes into a Config and validates it. The returned config is meant
// to be loaded once at startup and shared read-only.
func Load(path string) (*Config, error) {
	// Skill aliases like "node.js" contain dots; viper's default "."
	// delimiter would split them into nested maps, so use one that cannot
	// appear in our keys.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return nil, fmt.Errorf("reading embedded defaults: %w", err)
	}

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building config decoder: %w", err)
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the validated embedded configuration.
func Default() (*Config, error) {
	return Load("")
}
