// Package config holds runtime configuration: defaults, CLI flag parsing,
// optional YAML config file loading, and validation.
package config

import (
	"errors"
	"fmt"
)

// --- Enum types for validated string fields ---

// CatalogMode selects how the opened container is traversed.
type CatalogMode string

const (
	ModeAuto       CatalogMode = "auto"       // Detect from the container (default).
	ModeCatalog    CatalogMode = "catalog"    // Force flat name→image catalog traversal.
	ModeThemeStore CatalogMode = "themestore" // Force keyed rendition store traversal.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by a YAML config file, and then mutated by [ParseFlags]
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	ContainerPath string
	OutputDir     string

	// Extraction settings.
	Mode                CatalogMode // Traversal mode; "auto" detects per container.
	ThumbWidth          int         // Thumbnail bounding box width. Default: 256.
	ThumbHeight         int         // Thumbnail bounding box height. Default: 256.
	ResourceConstrained bool        // Degraded mode: no encode/thumbnail work.
	MaxItems            int         // Item cap; only honored when ResourceConstrained.
	IgnorePackedAssets  bool        // Default: true. Drop internally-packed placeholder assets.

	// Output behavior.
	WriteThumbs bool // Also write thumbnail PNGs under thumbs/.
	ListOnly    bool // Print the container inventory and exit without extracting.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ConfigFile string    // Optional YAML config file path.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [LoadFile] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		Mode:               ModeAuto,
		ThumbWidth:         256,
		ThumbHeight:        256,
		IgnorePackedAssets: true,
		ColorMode:          ColorAuto,
	}
}

// Validate checks enum fields and numeric ranges, and requires a container
// path plus (unless --list) an output directory.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAuto, ModeCatalog, ModeThemeStore:
		// valid
	default:
		return errors.New("invalid mode (use 'auto', 'catalog' or 'themestore')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.ThumbWidth < 1 || c.ThumbHeight < 1 {
		return fmt.Errorf("thumbnail size must be at least 1x1 (got %dx%d)", c.ThumbWidth, c.ThumbHeight)
	}
	if c.MaxItems < 0 {
		return errors.New("max items must not be negative")
	}
	if c.MaxItems > 0 && !c.ResourceConstrained {
		return errors.New("--max-items is only honored together with --constrained")
	}

	if c.ContainerPath == "" {
		return errors.New("need a container path")
	}
	if !c.ListOnly && c.OutputDir == "" {
		return errors.New("need an output directory (or --list)")
	}
	return nil
}
