package naming

import (
	"fmt"
	"strings"
)

// CleanName flattens a logical asset name into something safe for a flat
// output directory: path separators become dashes, whitespace collapses to
// single spaces, and leading/trailing separators are trimmed.
func CleanName(name string) string {
	s := strings.ReplaceAll(name, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, " -")
	if s == "" {
		return "unnamed"
	}
	return s
}

// ImageFilename builds the output filename for a raster variant:
// name, optional presentation state, and an "@Nx" suffix for scales above 1.
func ImageFilename(name, state string, scale int) string {
	base := CleanName(name)
	if state != "" {
		base += "-" + state
	}
	if scale > 1 {
		base += fmt.Sprintf("@%dx", scale)
	}
	return base + ".png"
}

// VectorFilename builds the output filename for a vector rendition from the
// cleaned name and the optional font descriptors (weight, point size,
// rendering mode).
func VectorFilename(name, weight string, size int, renderingMode string) string {
	base := CleanName(name)
	if weight != "" {
		base += "-" + weight
	}
	if size > 0 {
		base += fmt.Sprintf("-%d", size)
	}
	if renderingMode != "" {
		base += "-" + renderingMode
	}
	return base + ".pdf"
}

// DocumentFilename builds the output filename for an opaque data payload.
func DocumentFilename(name, extension string) string {
	return CleanName(name) + "." + extension
}

// packedAssetPrefix marks assets the container packs internally as atlas
// placeholders. They carry no standalone pixels worth extracting.
const packedAssetPrefix = "ZZZZPackedAsset"

// IsPackedAsset reports whether a synthesized filename belongs to an
// internally-packed placeholder asset.
func IsPackedAsset(filename string) bool {
	return strings.HasPrefix(filename, packedAssetPrefix)
}
