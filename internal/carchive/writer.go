package carchive

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/zeebo/blake3"
)

// Writer accumulates entries and serializes them into a carchive document.
// Not safe for concurrent use; build the archive from one goroutine.
type Writer struct {
	doc document
}

// NewWriter creates an empty writer. keyed marks the archive as a
// theme-store-style container (no direct name+scale lookup).
func NewWriter(keyed bool) *Writer {
	return &Writer{doc: document{Keyed: keyed}}
}

// AddImage appends a raster entry. The image is encoded to PNG and stored
// uncompressed (PNG is already entropy-coded).
func (w *Writer) AddImage(name string, scale int, state string, img image.Image) error {
	payload, err := encodePNG(img)
	if err != nil {
		return fmt.Errorf("add image %q: %w", name, err)
	}
	w.addPayload(entry{Name: name, Scale: scale, State: state, Kind: KindImage}, payload, CompressionNone)
	return nil
}

// AddLayered appends a layered entry from an ordered image stack (bottom
// first). An empty stack is stored as-is; the extraction pipeline treats it
// as a skippable variant.
func (w *Writer) AddLayered(name string, scale int, layers []image.Image) error {
	e := entry{Name: name, Scale: scale, Kind: KindLayered}
	for i, layer := range layers {
		data, err := encodePNG(layer)
		if err != nil {
			return fmt.Errorf("add layered %q layer %d: %w", name, i, err)
		}
		e.Layers = append(e.Layers, data)
	}
	w.doc.Entries = append(w.doc.Entries, e)
	return nil
}

// AddVector appends a vector document entry with its font descriptors.
func (w *Writer) AddVector(name, weight string, pointSize int, renderingMode string, payload []byte) {
	e := entry{
		Name:          name,
		Scale:         1,
		Kind:          KindVector,
		FontWeight:    weight,
		PointSize:     pointSize,
		RenderingMode: renderingMode,
	}
	w.addPayloadAuto(e, payload)
}

// AddData appends an opaque data entry.
func (w *Writer) AddData(name string, payload []byte) {
	w.addPayloadAuto(entry{Name: name, Scale: 1, Kind: KindData}, payload)
}

// AddEffect appends a non-visual effect/material entry with no payload.
func (w *Writer) AddEffect(name string) {
	w.doc.Entries = append(w.doc.Entries, entry{Name: name, Scale: 1, Kind: KindEffect})
}

func (w *Writer) addPayloadAuto(e entry, payload []byte) {
	compressed, tag, err := compressAuto(payload)
	if err != nil {
		// compressAuto only fails on internal misconfiguration; store raw.
		compressed, tag = payload, CompressionNone
	}
	e.Compression = tag
	e.RawSize = len(payload)
	e.Payload = compressed
	digest := blake3.Sum256(payload)
	e.Digest = digest[:]
	w.doc.Entries = append(w.doc.Entries, e)
}

func (w *Writer) addPayload(e entry, payload []byte, tag CompressionTag) {
	e.Compression = tag
	e.RawSize = len(payload)
	e.Payload = payload
	digest := blake3.Sum256(payload)
	e.Digest = digest[:]
	w.doc.Entries = append(w.doc.Entries, e)
}

// Bytes serializes the archive: magic header plus the CBOR manifest.
func (w *Writer) Bytes() ([]byte, error) {
	body, err := encMode.Marshal(&w.doc)
	if err != nil {
		return nil, fmt.Errorf("encode archive: %w", err)
	}
	out := make([]byte, 0, len(Magic)+len(body))
	out = append(out, Magic...)
	out = append(out, body...)
	return out, nil
}

// Save writes the serialized archive to path.
func (w *Writer) Save(path string) error {
	data, err := w.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
