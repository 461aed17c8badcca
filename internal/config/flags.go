package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into extraction, output, and display/utility.
// A --config file is loaded before flags are applied, so flags always win.

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X ...config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses args (os.Args[1:] in production) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, missing positional args).
func ParseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("acextract", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() { printUsage(fs) }

	var showHelp, showVersion bool
	var noPackedFilter bool

	defineExtractionFlags(fs, cfg, &noPackedFilter)
	defineOutputFlags(fs, cfg)
	defineDisplayFlags(fs, cfg)
	fs.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help and exit")

	// The config file path must be known before other flags are applied,
	// since flags override file values. Scan for it, load, then parse the
	// full set on top.
	if path := peekConfigFlag(args); path != "" {
		cfg.ConfigFile = path
		if err := LoadFile(cfg, path); err != nil {
			return err
		}
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "acextract v"+version)
		os.Exit(0)
	}

	if noPackedFilter {
		cfg.IgnorePackedAssets = false
	}

	return parsePositionalArgs(fs, cfg)
}

// defineExtractionFlags registers --mode, --thumb-size, --constrained,
// --max-items, --keep-packed.
func defineExtractionFlags(fs *pflag.FlagSet, cfg *Config, noPackedFilter *bool) {
	fs.VarP(&catalogModeValue{&cfg.Mode}, "mode", "m", "Traversal mode: auto | catalog | themestore")
	fs.IntVar(&cfg.ThumbWidth, "thumb-width", cfg.ThumbWidth, "Thumbnail bounding box width")
	fs.IntVar(&cfg.ThumbHeight, "thumb-height", cfg.ThumbHeight, "Thumbnail bounding box height")
	fs.BoolVar(&cfg.ResourceConstrained, "constrained", false, "Resource-constrained mode (skip encode and thumbnails)")
	fs.IntVar(&cfg.MaxItems, "max-items", 0, "Item cap in constrained mode (0 = no cap)")
	fs.BoolVar(noPackedFilter, "keep-packed", false, "Keep internally-packed placeholder assets")
}

// defineOutputFlags registers --thumbs and --list.
func defineOutputFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.WriteThumbs, "thumbs", "t", false, "Also write thumbnail PNGs under thumbs/")
	fs.BoolVarP(&cfg.ListOnly, "list", "L", false, "List container contents and exit")
}

// defineDisplayFlags registers --color, --verbose, --log, --config.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color", "Color output: auto | always | never")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "YAML config file with default settings")
}

// peekConfigFlag scans raw args for --config/-c without a full parse.
// Returns "" when the flag is absent.
func peekConfigFlag(args []string) string {
	for i, a := range args {
		switch {
		case a == "--config" || a == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		}
	}
	return ""
}

// parsePositionalArgs sets ContainerPath and OutputDir from the positional
// args. The output directory is optional with --list.
func parsePositionalArgs(fs *pflag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 2:
		cfg.ContainerPath = args[0]
		cfg.OutputDir = strings.TrimRight(args[1], "/")
		if cfg.OutputDir == "" {
			cfg.OutputDir = "/"
		}
		return nil
	case 1:
		cfg.ContainerPath = args[0]
		if cfg.ListOnly {
			return nil
		}
		return fmt.Errorf("need an output directory (or --list)")
	default:
		return fmt.Errorf("need exactly container path and output directory")
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `acextract v%s — asset container extractor

  acextract [OPTIONS] <container> <output_dir>
  acextract --list <container>

Extraction
  -m, --mode <auto|catalog|themestore>  Traversal mode (default: auto)
      --thumb-width <px>                Thumbnail bounding box width (default: 256)
      --thumb-height <px>               Thumbnail bounding box height (default: 256)
      --constrained                     Skip encode and thumbnail work, honor --max-items
      --max-items <n>                   Item cap in constrained mode
      --keep-packed                     Keep internally-packed placeholder assets

Output
  -t, --thumbs                          Also write thumbnail PNGs under thumbs/
  -L, --list                            List container contents and exit

Display & utility
      --color <auto|always|never>       Color output (default: auto)
  -v, --verbose                         Verbose output
  -l, --log <path>                      Append logs to file
  -c, --config <path>                   YAML config file with default settings
  -V, --version                         Print version and exit
  -h, --help                            Show this help and exit
`, version)
}

// pflag.Value adapters so we can use enum types (CatalogMode, ColorMode) with fs.Var.

type catalogModeValue struct{ p *CatalogMode }

func (c *catalogModeValue) String() string { return string(*c.p) }
func (c *catalogModeValue) Type() string   { return "mode" }
func (c *catalogModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ModeAuto
	case "catalog":
		*c.p = ModeCatalog
	case "themestore":
		*c.p = ModeThemeStore
	default:
		return fmt.Errorf("invalid mode %q (use 'auto', 'catalog' or 'themestore')", s)
	}
	return nil
}

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
