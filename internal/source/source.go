// Package source defines the rendition source contract consumed by the
// extraction pipeline, and the mode selection that decides how an opened
// container is traversed.
//
// A rendition source yields, per logical asset name, zero or more scale and
// state variants. Two incompatible enumeration models exist in the wild: a
// flat name→image catalog with direct name+scale lookup, and a legacy keyed
// rendition store ("theme store") addressed by composite keys. Backends
// implement both methods; a backend without direct lookup returns
// [ErrNoDirectLookup] and is traversed through its keys.
package source

import (
	"errors"
	"image"
)

// ErrNoDirectLookup is returned by backends that cannot answer a name+scale
// image lookup. It drives mode selection toward the theme-store traversal.
var ErrNoDirectLookup = errors.New("source: no direct name+scale lookup")

// Variant is one concrete rendition of a logical asset name: a specific
// scale/state/layer combination with its decoded payloads and metadata.
type Variant struct {
	Name  string // Logical asset name.
	Scale int    // Density multiplier: 1, 2 or 3.
	State string // Presentation state ("" = normal, e.g. "selected").

	Image  image.Image   // Decoded raster, nil when the variant has none.
	Layers []image.Image // Ordered layer stack, bottom first; nil unless layered.
	Vector []byte        // Vector document payload, nil when absent.
	Data   []byte        // Raw opaque payload, nil when absent.

	// Font descriptors, populated for vector renditions only.
	FontWeight    string
	PointSize     int
	RenderingMode string
}

// Layered reports whether the variant carries an ordered layer stack.
func (v *Variant) Layered() bool { return v.Layers != nil }

// Source is the container decoder boundary. Implementations own all byte
// format knowledge; the pipeline never inspects container internals beyond
// the restricted-format marker scan.
type Source interface {
	// Names enumerates logical asset names in source order. Empty for
	// keyed stores without directly addressable names.
	Names() []string

	// Image resolves a name+scale lookup. A nil variant with nil error
	// means the scale does not exist for that name. Backends without
	// direct lookup return ErrNoDirectLookup.
	Image(name string, scale int) (*Variant, error)

	// Keys enumerates composite rendition keys in source order.
	Keys() []string

	// Rendition resolves one keyed rendition.
	Rendition(key string) (*Variant, error)

	Close() error
}
