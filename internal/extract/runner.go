// Package extract drives a single extraction run: mode selection, dual-mode
// traversal, per-entry classification and materialization, progress and
// cancellation, and the ordered result set.
package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/Asura19/AssetCatalogTinkerer/internal/carchive"
	"github.com/Asura19/AssetCatalogTinkerer/internal/config"
	"github.com/Asura19/AssetCatalogTinkerer/internal/logging"
	"github.com/Asura19/AssetCatalogTinkerer/internal/naming"
	"github.com/Asura19/AssetCatalogTinkerer/internal/source"
)

// maxScale is the highest density variant requested per logical name.
const maxScale = 3

// Runner executes extraction runs. One Runner may serve multiple runs;
// per-run state lives in runState and is discarded when the run ends.
type Runner struct {
	cfg *config.Config
	log *logging.Logger

	// OnProgress, when set, receives loaded/total fractions in [0,1].
	// Delivery is decoupled from the extraction worker; a slow consumer
	// drops intermediate updates instead of blocking the run.
	OnProgress func(fraction float64)
}

// NewRunner creates a runner bound to a config and logger.
func NewRunner(cfg *config.Config, log *logging.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// runState is the mutable per-run state, exclusively owned by the worker
// for the run's duration.
type runState struct {
	src       source.Source
	total     int
	loaded    int
	hasRetina *bool // lazily computed: any variant with scale > 1?
	uniq      *naming.Uniquifier
}

func (st *runState) progress() float64 {
	return float64(st.loaded) / float64(st.total)
}

// RunFile opens the container at path and extracts it. An empty path fails
// with ErrContainerPathUnresolved before any open attempt.
func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		return nil, ErrContainerPathUnresolved
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContainerOpen, err)
	}
	src, err := carchive.Open(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContainerOpen, err)
	}
	defer src.Close()

	return r.Run(ctx, raw, src)
}

// Run extracts all assets from an opened source. The raw container bytes
// are needed for the restricted-format marker scan. Terminal outcomes are
// exactly one of: a result (possibly cancelled), or an error.
func (r *Runner) Run(ctx context.Context, raw []byte, src source.Source) (*Result, error) {
	mode, err := source.SelectMode(raw, src, r.cfg)
	if err != nil {
		return nil, err
	}
	r.log.Debug("Traversal mode: %s", mode)

	notify := newNotifier(r.OnProgress)
	defer notify.stop()

	st := &runState{src: src, uniq: naming.NewUniquifier()}
	result := &Result{}

	switch mode {
	case source.ModeThemeStore:
		r.runThemeStore(ctx, src, st, result, notify)
	default:
		r.runFlat(ctx, src, st, result, notify)
	}

	if result.Cancelled {
		return result, nil
	}
	if len(result.Descriptors) == 0 {
		return nil, ErrNoAssets
	}
	return result, nil
}

// --- Flat-catalog traversal ---

func (r *Runner) runFlat(ctx context.Context, src source.Source, st *runState, result *Result, notify *notifier) {
	names := src.Names()
	st.total = capTotal(len(names), r.cfg)
	if st.total == 0 {
		return
	}

	for _, name := range names {
		if ctx.Err() != nil {
			result.Cancelled = true
			return
		}
		if r.cfg.ResourceConstrained && st.loaded >= st.total {
			break
		}
		notify.report(st.progress())

		for scale := 1; scale <= maxScale; scale++ {
			if ctx.Err() != nil {
				result.Cancelled = true
				return
			}

			v, err := src.Image(name, scale)
			if err != nil {
				r.log.Warn("Skipping %s@%dx: %v", name, scale, err)
				st.loaded++
				continue
			}
			if v == nil {
				continue // scale not present for this name
			}
			if r.processFlatVariant(ctx, v, st, result) {
				result.Cancelled = true
				return
			}
		}
	}
}

// processFlatVariant handles one returned variant in ascending scale order.
// Returns true when cancellation was observed.
func (r *Runner) processFlatVariant(ctx context.Context, v *source.Variant, st *runState, result *Result) bool {
	// Opaque non-image payload routes to document handling.
	if v.Image == nil && !v.Layered() && len(v.Data) > 0 {
		return r.processDocument(ctx, v.Name, v.Data, st, result)
	}

	img := v.Image
	if v.Layered() {
		if len(v.Layers) == 0 {
			r.log.Debug("Skipping %s@%dx: empty layer stack", v.Name, v.Scale)
			st.loaded++
			return false
		}
		img = flattenLayers(v.Layers)
	}
	if img == nil {
		r.log.Debug("Skipping %s@%dx: no decodable image", v.Name, v.Scale)
		st.loaded++
		return false
	}

	// In resource-constrained mode, low-density variants are skipped when
	// the container carries any higher-density content. These skips do not
	// count as loaded items.
	if r.cfg.ResourceConstrained && v.Scale < 2 && r.containerHasRetina(st) {
		return false
	}

	if ctx.Err() != nil {
		return true
	}

	filename := st.uniq.Uniquify(naming.ImageFilename(v.Name, v.State, v.Scale))
	desc, err := r.materializeImage(v.Name, filename, img)
	if err != nil {
		r.log.Warn("Skipping %s: %v", v.Name, err)
		st.loaded++
		return false
	}

	if ctx.Err() != nil {
		return true
	}
	result.append(desc)
	st.loaded++
	return false
}

// --- Theme-store traversal ---

func (r *Runner) runThemeStore(ctx context.Context, src source.Source, st *runState, result *Result, notify *notifier) {
	keys := src.Keys()
	st.total = capTotal(len(keys), r.cfg)
	if st.total == 0 {
		return
	}

	for _, key := range keys {
		if ctx.Err() != nil {
			result.Cancelled = true
			return
		}
		if r.cfg.ResourceConstrained && st.loaded >= st.total {
			break
		}
		notify.report(st.progress())

		v, err := src.Rendition(key)
		if err != nil {
			// One bad rendition never unwinds the run.
			r.log.Warn("Skipping rendition %s: %v", key, err)
			st.loaded++
			continue
		}

		if r.cfg.ResourceConstrained && v.Scale < 2 && rasterBacked(v) && r.containerHasRetina(st) {
			continue // low-density skip, not counted
		}

		if r.processRendition(ctx, v, st, result) {
			result.Cancelled = true
			return
		}
	}
}

// processRendition classifies one resolved rendition and dispatches it.
// Returns true when cancellation was observed.
func (r *Runner) processRendition(ctx context.Context, v *source.Variant, st *runState, result *Result) bool {
	switch {
	case len(v.Vector) > 0:
		return r.processVector(ctx, v, st, result)

	case v.Image != nil || (v.Layered() && len(v.Layers) > 0):
		img := v.Image
		if img == nil {
			img = flattenLayers(v.Layers)
		}
		base := naming.ImageFilename(v.Name, v.State, v.Scale)
		if r.cfg.IgnorePackedAssets && naming.IsPackedAsset(base) {
			r.log.Debug("Dropping packed asset %s", base)
			st.loaded++
			return false
		}

		if ctx.Err() != nil {
			return true
		}
		filename := st.uniq.Uniquify(base)
		desc, err := r.materializeImage(v.Name, filename, img)
		if err != nil {
			r.log.Warn("Skipping %s: %v", v.Name, err)
			st.loaded++
			return false
		}
		if ctx.Err() != nil {
			return true
		}
		result.append(desc)
		st.loaded++
		return false

	case len(v.Data) > 0:
		return r.processDocument(ctx, v.Name, v.Data, st, result)

	default:
		// Likely a non-visual effect or material entry.
		r.log.Debug("Skipping %s: no extractable content", v.Name)
		st.loaded++
		return false
	}
}

// processVector builds a document descriptor for a vector rendition.
func (r *Runner) processVector(ctx context.Context, v *source.Variant, st *runState, result *Result) bool {
	if ctx.Err() != nil {
		return true
	}
	base := naming.VectorFilename(v.Name, v.FontWeight, v.PointSize, v.RenderingMode)
	filename := st.uniq.Uniquify(base)
	desc := r.materializeDocument(v.Name, v.Vector, filename, "pdf")
	if ctx.Err() != nil {
		return true
	}
	result.append(desc)
	st.loaded++
	return false
}

// processDocument sniffs, names, and appends an opaque data payload.
// Returns true when cancellation was observed.
func (r *Runner) processDocument(ctx context.Context, name string, data []byte, st *runState, result *Result) bool {
	if ctx.Err() != nil {
		return true
	}
	ext := sniffExtension(data, name)
	filename := st.uniq.Uniquify(naming.DocumentFilename(name, ext))
	desc := r.materializeDocument(name, data, filename, ext)
	if ctx.Err() != nil {
		return true
	}
	result.append(desc)
	st.loaded++
	return false
}

// --- Helpers ---

// capTotal applies the configured item cap in resource-constrained mode.
func capTotal(count int, cfg *config.Config) int {
	if cfg.ResourceConstrained && cfg.MaxItems > 0 && count > cfg.MaxItems {
		return cfg.MaxItems
	}
	return count
}

// rasterBacked reports whether a rendition would extract as a raster image,
// the only shape the low-density skip applies to.
func rasterBacked(v *source.Variant) bool {
	return v.Image != nil || (v.Layered() && len(v.Layers) > 0)
}

// containerHasRetina reports whether any variant in the container has a
// scale above 1. Computed once per run and memoized in runState.
func (r *Runner) containerHasRetina(st *runState) bool {
	if st.hasRetina != nil {
		return *st.hasRetina
	}

	found := false
	if names := st.src.Names(); len(names) > 0 {
		for _, name := range names {
			for scale := 2; scale <= maxScale && !found; scale++ {
				if v, err := st.src.Image(name, scale); err == nil && v != nil {
					found = true
				}
			}
			if found {
				break
			}
		}
	} else {
		for _, key := range st.src.Keys() {
			if v, err := st.src.Rendition(key); err == nil && v.Scale > 1 {
				found = true
				break
			}
		}
	}

	st.hasRetina = &found
	return found
}
