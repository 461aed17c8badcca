package config

// Optional YAML config file support. The file is loaded from an explicit
// path only (--config flag); there is no automatic discovery, so runs stay
// reproducible. CLI flags are applied after the file and always win.

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the subset of Config that makes sense as persistent
// defaults. Pointer fields distinguish "absent" from zero values.
type fileConfig struct {
	Mode               *string `yaml:"mode,omitempty"`
	ThumbWidth         *int    `yaml:"thumbWidth,omitempty"`
	ThumbHeight        *int    `yaml:"thumbHeight,omitempty"`
	Constrained        *bool   `yaml:"constrained,omitempty"`
	MaxItems           *int    `yaml:"maxItems,omitempty"`
	IgnorePackedAssets *bool   `yaml:"ignorePackedAssets,omitempty"`
	WriteThumbs        *bool   `yaml:"writeThumbs,omitempty"`
	Color              *string `yaml:"color,omitempty"`
	LogFile            *string `yaml:"logFile,omitempty"`
}

// LoadFile overlays settings from the YAML file at path onto cfg.
// Unknown keys are rejected so typos surface instead of silently
// falling back to defaults.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Mode != nil {
		cfg.Mode = CatalogMode(*fc.Mode)
	}
	if fc.ThumbWidth != nil {
		cfg.ThumbWidth = *fc.ThumbWidth
	}
	if fc.ThumbHeight != nil {
		cfg.ThumbHeight = *fc.ThumbHeight
	}
	if fc.Constrained != nil {
		cfg.ResourceConstrained = *fc.Constrained
	}
	if fc.MaxItems != nil {
		cfg.MaxItems = *fc.MaxItems
	}
	if fc.IgnorePackedAssets != nil {
		cfg.IgnorePackedAssets = *fc.IgnorePackedAssets
	}
	if fc.WriteThumbs != nil {
		cfg.WriteThumbs = *fc.WriteThumbs
	}
	if fc.Color != nil {
		cfg.ColorMode = ColorMode(*fc.Color)
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	return nil
}
