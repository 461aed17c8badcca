package extract

// Rendition materialization: turning one classified variant into a
// descriptor. Image variants are re-encoded to PNG and decoded back so the
// descriptor always carries a canonical raster representation; documents
// get a sniffed extension and a synthesized placeholder preview.

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/Asura19/AssetCatalogTinkerer/internal/sniff"
	"github.com/Asura19/AssetCatalogTinkerer/internal/thumb"
)

// materializeImage builds an image descriptor. In resource-constrained mode
// the descriptor carries only the decoded raster; full mode adds lossless
// PNG bytes, a canonical re-decoded image, and a thumbnail.
func (r *Runner) materializeImage(name, filename string, img image.Image) (AssetDescriptor, error) {
	if r.cfg.ResourceConstrained {
		return AssetDescriptor{
			Name:     name,
			Filename: filename,
			Type:     AssetImage,
			Image:    img,
		}, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return AssetDescriptor{}, fmt.Errorf("encode %q: %w", name, err)
	}
	encoded := buf.Bytes()
	if len(encoded) == 0 {
		return AssetDescriptor{}, fmt.Errorf("encode %q: empty output", name)
	}

	// Decode the encoded bytes back so the descriptor's raster has a
	// canonical representation regardless of the source pixel format.
	canonical, err := png.Decode(bytes.NewReader(encoded))
	if err != nil {
		return AssetDescriptor{}, fmt.Errorf("re-decode %q: %w", name, err)
	}

	return AssetDescriptor{
		Name:      name,
		Filename:  filename,
		Type:      AssetImage,
		Image:     canonical,
		PNGData:   encoded,
		Thumbnail: thumb.Constrain(canonical, r.cfg.ThumbWidth, r.cfg.ThumbHeight),
	}, nil
}

// materializeDocument builds a document descriptor from an opaque payload.
// The extension is content-sniffed; the placeholder thumbnail is skipped in
// resource-constrained mode.
func (r *Runner) materializeDocument(name string, data []byte, filename, extension string) AssetDescriptor {
	d := AssetDescriptor{
		Name:      name,
		Filename:  filename,
		Type:      AssetDocument,
		Data:      data,
		Extension: extension,
	}
	if !r.cfg.ResourceConstrained {
		d.Thumbnail = thumb.DocumentPlaceholder(extension, r.cfg.ThumbWidth, r.cfg.ThumbHeight)
	}
	return d
}

// sniffExtension is a small indirection point over the sniffer.
func sniffExtension(data []byte, name string) string {
	return sniff.ExtensionFor(data, name)
}

// flattenLayers composites an ordered layer stack (bottom first) into one
// raster. The canvas is the union of all layer bounds, translated to the
// origin.
func flattenLayers(layers []image.Image) image.Image {
	union := layers[0].Bounds()
	for _, layer := range layers[1:] {
		union = union.Union(layer.Bounds())
	}

	out := image.NewRGBA(image.Rect(0, 0, union.Dx(), union.Dy()))
	for _, layer := range layers {
		b := layer.Bounds()
		dst := b.Sub(union.Min)
		draw.Draw(out, dst, layer, b.Min, draw.Over)
	}
	return out
}
