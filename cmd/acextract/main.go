// Command acextract is the entrypoint for the asset container extractor CLI.
// It parses flags, validates config and paths, and either lists the container
// inventory (--list) or runs the extraction pipeline and writes the results.
package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Asura19/AssetCatalogTinkerer/internal/carchive"
	"github.com/Asura19/AssetCatalogTinkerer/internal/config"
	"github.com/Asura19/AssetCatalogTinkerer/internal/display"
	"github.com/Asura19/AssetCatalogTinkerer/internal/extract"
	"github.com/Asura19/AssetCatalogTinkerer/internal/logging"
)

func main() {
	// 1. Load config from defaults, optional config file, and CLI flags.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "acextract: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "acextract: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "acextract: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	display.PrintBanner()

	// 2. List mode: print the container inventory and exit.
	if cfg.ListOnly {
		if err := listContainer(&cfg, log); err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Error("Cannot create output directory: %s", cfg.OutputDir)
		os.Exit(1)
	}
	if cfg.WriteThumbs {
		if err := os.MkdirAll(filepath.Join(cfg.OutputDir, "thumbs"), 0755); err != nil {
			log.Error("Cannot create thumbs directory: %v", err)
			os.Exit(1)
		}
	}

	log.Info("In:  %s", cfg.ContainerPath)
	log.Info("Out: %s", cfg.OutputDir)
	if cfg.ResourceConstrained {
		log.Warn("Resource-constrained mode")
	}

	// 3. Run extraction; Ctrl-C cancels cooperatively and keeps the partial
	// result.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := extract.NewRunner(&cfg, log)
	runner.OnProgress = func(fraction float64) {
		fmt.Fprintf(os.Stdout, "\r%s", display.ProgressBar(fraction, 30))
	}

	result, err := runner.RunFile(ctx, cfg.ContainerPath)
	fmt.Fprint(os.Stdout, "\r\033[K")
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	// 4. Write descriptors to disk and print the summary.
	written, err := writeResult(&cfg, log, result)
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	images, documents := 0, 0
	for _, d := range result.Descriptors {
		if d.Type == extract.AssetImage {
			images++
		} else {
			documents++
		}
	}
	log.Success("Extracted %d assets (%d images, %d documents), %s written",
		len(result.Descriptors), images, documents, display.FormatBytes(written))

	if result.Cancelled {
		log.Warn("Run was interrupted; output is partial")
		os.Exit(130)
	}
}

// listContainer prints one inventory line per stored rendition.
func listContainer(cfg *config.Config, log *logging.Logger) error {
	raw, err := os.ReadFile(cfg.ContainerPath)
	if err != nil {
		return err
	}
	r, err := carchive.Open(raw)
	if err != nil {
		return err
	}
	defer r.Close()

	log.Info("%s: %d entries", cfg.ContainerPath, r.EntryCount())
	for i := 0; i < r.EntryCount(); i++ {
		fmt.Fprintln(os.Stdout, "  "+r.Describe(i))
	}
	return nil
}

// writeResult persists every descriptor under the output directory and
// returns the total bytes written. In resource-constrained mode descriptors
// carry no pre-encoded bytes, so images are encoded one at a time here.
func writeResult(cfg *config.Config, log *logging.Logger, result *extract.Result) (int64, error) {
	var written int64
	for _, d := range result.Descriptors {
		path := filepath.Join(cfg.OutputDir, d.Filename)

		var payload []byte
		switch {
		case d.PNGData != nil:
			payload = d.PNGData
		case d.Image != nil:
			f, err := os.Create(path)
			if err != nil {
				return written, err
			}
			if err := png.Encode(f, d.Image); err != nil {
				f.Close()
				return written, fmt.Errorf("encode %s: %w", d.Filename, err)
			}
			if fi, err := f.Stat(); err == nil {
				written += fi.Size()
			}
			if err := f.Close(); err != nil {
				return written, err
			}
			log.Debug("Wrote %s (%s)", d.Filename, display.FormatDimensions(d.Image))
			continue
		default:
			payload = d.Data
		}

		if err := os.WriteFile(path, payload, 0644); err != nil {
			return written, err
		}
		written += int64(len(payload))
		log.Debug("Wrote %s", d.Filename)

		if cfg.WriteThumbs && d.Thumbnail != nil {
			n, err := writeThumb(cfg.OutputDir, d.Filename, d)
			if err != nil {
				return written, err
			}
			written += n
		}
	}
	return written, nil
}

// writeThumb writes the descriptor's thumbnail as PNG under thumbs/,
// swapping the extension for documents.
func writeThumb(outputDir, filename string, d extract.AssetDescriptor) (int64, error) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	path := filepath.Join(outputDir, "thumbs", stem+".png")

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := png.Encode(f, d.Thumbnail); err != nil {
		f.Close()
		return 0, fmt.Errorf("encode thumbnail for %s: %w", filename, err)
	}
	var size int64
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}
	return size, f.Close()
}
