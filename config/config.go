// Package config loads conversion settings from YAML.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

const DefaultFile = "daeconv.yaml"

type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Texture TextureConfig `yaml:"texture"`
	Logging LoggingConfig `yaml:"logging"`
}

type ConvertConfig struct {
	Scale          float32 `yaml:"scale"` // applied after the document unit
	KeepUpAxis     bool    `yaml:"keep_up_axis"`
	ForceUnlit     bool    `yaml:"unlit"`
	SkipBrokenMesh bool    `yaml:"skip_broken_mesh"`
}

type TextureConfig struct {
	ReCompress      bool    `yaml:"recompress"`
	BytesThreshold  int64   `yaml:"bytes_threshold"`  // 0: unlimited
	ResolutionLimit int     `yaml:"resolution_limit"` // 0: unlimited
	Scale           float32 `yaml:"scale"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() *Config {
	return &Config{
		Convert: ConvertConfig{Scale: 1},
		Texture: TextureConfig{Scale: 1},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path falls back to
// DefaultFile in the working directory, if present.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if cfg.Convert.Scale == 0 {
		cfg.Convert.Scale = 1
	}
	if cfg.Texture.Scale == 0 {
		cfg.Texture.Scale = 1
	}
	return cfg, nil
}
