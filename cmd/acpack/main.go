// Command acpack builds an asset container from a directory of loose files,
// the inverse of acextract. PNGs become raster entries (density parsed from
// an "@Nx" filename suffix), PDFs become vector entries, and everything else
// is stored as opaque data.
package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Asura19/AssetCatalogTinkerer/internal/carchive"
	"github.com/Asura19/AssetCatalogTinkerer/internal/display"
)

func main() {
	fs := pflag.NewFlagSet("acpack", pflag.ContinueOnError)
	fs.SortFlags = false
	keyed := fs.Bool("keyed", false, "Build a keyed (theme-store style) archive")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: acpack [--keyed] <input_dir> <output.carchive>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "acpack: %v\n", err)
		os.Exit(1)
	}
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(1)
	}
	inputDir, outputPath := fs.Arg(0), fs.Arg(1)

	w := carchive.NewWriter(*keyed)
	count, err := packDir(w, inputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "acpack: %v\n", err)
		os.Exit(1)
	}
	if count == 0 {
		fmt.Fprintf(os.Stderr, "acpack: no files to pack in %s\n", inputDir)
		os.Exit(1)
	}

	if err := w.Save(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "acpack: %v\n", err)
		os.Exit(1)
	}
	fi, err := os.Stat(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "acpack: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Packed %d entries into %s (%s)\n", count, outputPath, display.FormatBytes(fi.Size()))
}

// packDir adds every regular file under dir to the writer, in sorted path
// order so repeated runs produce identical archives.
func packDir(w *carchive.Writer, dir string) (int, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	sort.Strings(paths)

	count := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return count, err
		}
		if err := packFile(w, dir, path, data); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// packFile classifies one file by extension and adds the matching entry kind.
func packFile(w *carchive.Writer, dir, path string, data []byte) error {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	ext := strings.ToLower(filepath.Ext(rel))
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))

	switch ext {
	case ".png":
		name, scale := splitScaleSuffix(stem)
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		return w.AddImage(name, scale, "", img)
	case ".pdf":
		w.AddVector(stem, "", 0, "", data)
		return nil
	default:
		w.AddData(stem, data)
		return nil
	}
}

// splitScaleSuffix strips a trailing "@Nx" density marker from a filename
// stem. Without one the scale is 1.
func splitScaleSuffix(stem string) (string, int) {
	at := strings.LastIndex(stem, "@")
	if at < 0 || !strings.HasSuffix(stem, "x") {
		return stem, 1
	}
	n, err := strconv.Atoi(stem[at+1 : len(stem)-1])
	if err != nil || n < 1 {
		return stem, 1
	}
	return stem[:at], n
}
