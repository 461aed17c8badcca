package extract

import "image"

// AssetType distinguishes the two descriptor shapes.
type AssetType int

const (
	AssetImage    AssetType = iota // Raster asset.
	AssetDocument                  // Opaque data or vector document.
)

func (t AssetType) String() string {
	if t == AssetDocument {
		return "document"
	}
	return "image"
}

// AssetDescriptor is the unit of output: one successfully extracted asset,
// immutable once appended to a Result. Filenames are unique across a run.
type AssetDescriptor struct {
	Name     string
	Filename string
	Type     AssetType

	// Image assets. PNGData and Thumbnail stay nil in
	// resource-constrained mode.
	Image     image.Image
	PNGData   []byte
	Thumbnail image.Image

	// Document assets. Thumbnail (above) holds the synthesized
	// placeholder outside resource-constrained mode.
	Data      []byte
	Extension string
}

// Result is the ordered, append-only collection of descriptors handed to
// the caller at completion.
type Result struct {
	Descriptors []AssetDescriptor

	// Cancelled marks a cooperative early termination: not an error,
	// just an incomplete result.
	Cancelled bool
}

func (r *Result) append(d AssetDescriptor) {
	r.Descriptors = append(r.Descriptors, d)
}
