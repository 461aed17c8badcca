package source

import (
	"bytes"
	"errors"

	"github.com/Asura19/AssetCatalogTinkerer/internal/config"
)

// Mode tags the traversal strategy for an opened container.
type Mode int

const (
	ModeFlatCatalog Mode = iota // Direct name→image lookup per scale.
	ModeThemeStore              // Keyed rendition enumeration.
)

func (m Mode) String() string {
	if m == ModeThemeStore {
		return "themestore"
	}
	return "catalog"
}

// ErrRestrictedFormat marks a container in the restricted "pro" variant,
// which is rejected outright rather than decoded.
var ErrRestrictedFormat = errors.New("source: restricted container format is not supported")

// restrictedMarker is the fixed 18-byte token embedded in restricted-format
// containers. Its presence anywhere in the raw bytes rejects the container
// before any extraction work.
var restrictedMarker = []byte("ProThemeDefinition")

// SelectMode decides, once per run, how the container is traversed.
// The raw container bytes are scanned for the restricted-format marker
// first; an explicit override in cfg bypasses the heuristic but not the
// marker scan.
func SelectMode(raw []byte, src Source, cfg *config.Config) (Mode, error) {
	if bytes.Contains(raw, restrictedMarker) {
		return 0, ErrRestrictedFormat
	}

	switch cfg.Mode {
	case config.ModeCatalog:
		return ModeFlatCatalog, nil
	case config.ModeThemeStore:
		return ModeThemeStore, nil
	}

	names := src.Names()
	if len(names) == 0 {
		return ModeThemeStore, nil
	}
	if _, err := src.Image(names[0], 1); errors.Is(err, ErrNoDirectLookup) {
		return ModeThemeStore, nil
	}
	return ModeFlatCatalog, nil
}
