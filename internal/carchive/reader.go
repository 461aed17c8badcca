package carchive

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/zeebo/blake3"

	"github.com/Asura19/AssetCatalogTinkerer/internal/source"
)

// Reader is an opened carchive. It implements [source.Source]: flat-catalog
// lookups for regular archives, key enumeration for keyed ones.
type Reader struct {
	doc    document
	names  []string       // unique logical names in manifest order
	keys   []string       // composite rendition keys in manifest order
	byKey  map[string]int // key → entry index
	lookup map[nameScale][]int
}

type nameScale struct {
	name  string
	scale int
}

// Open decodes a serialized carchive.
func Open(raw []byte) (*Reader, error) {
	if !bytes.HasPrefix(raw, Magic) {
		return nil, fmt.Errorf("not a carchive (bad magic)")
	}

	r := &Reader{
		byKey:  make(map[string]int),
		lookup: make(map[nameScale][]int),
	}
	if err := decMode.Unmarshal(raw[len(Magic):], &r.doc); err != nil {
		return nil, fmt.Errorf("decode archive manifest: %w", err)
	}

	seen := make(map[string]bool)
	for i := range r.doc.Entries {
		e := &r.doc.Entries[i]
		if !seen[e.Name] {
			seen[e.Name] = true
			r.names = append(r.names, e.Name)
		}

		key := entryKey(e, i)
		r.keys = append(r.keys, key)
		r.byKey[key] = i

		ns := nameScale{e.Name, e.Scale}
		r.lookup[ns] = append(r.lookup[ns], i)
	}
	return r, nil
}

// entryKey builds the composite rendition key: name, scale, state, kind and
// manifest position, so duplicate name+scale combinations stay addressable.
func entryKey(e *entry, index int) string {
	return fmt.Sprintf("%s@%dx/%s/%s#%d", e.Name, e.Scale, e.State, e.Kind, index)
}

// Names enumerates logical names in manifest order. Keyed archives expose
// none, which sends mode selection down the theme-store path.
func (r *Reader) Names() []string {
	if r.doc.Keyed {
		return nil
	}
	return r.names
}

// Image resolves a name+scale lookup for flat-catalog archives.
func (r *Reader) Image(name string, scale int) (*source.Variant, error) {
	if r.doc.Keyed {
		return nil, source.ErrNoDirectLookup
	}
	indices := r.lookup[nameScale{name, scale}]
	if len(indices) == 0 {
		return nil, nil
	}
	return r.decodeEntry(&r.doc.Entries[indices[0]])
}

// Keys enumerates composite rendition keys in manifest order.
func (r *Reader) Keys() []string { return r.keys }

// Rendition resolves one keyed rendition.
func (r *Reader) Rendition(key string) (*source.Variant, error) {
	i, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("no rendition for key %q", key)
	}
	return r.decodeEntry(&r.doc.Entries[i])
}

// Close releases nothing today; the archive is fully in memory.
func (r *Reader) Close() error { return nil }

// EntryCount returns the number of stored renditions.
func (r *Reader) EntryCount() int { return len(r.doc.Entries) }

// Describe returns a one-line inventory description for entry i, used by
// the CLI --list mode.
func (r *Reader) Describe(i int) string {
	e := &r.doc.Entries[i]
	return fmt.Sprintf("%-8s %s@%dx state=%q size=%d compression=%s",
		e.Kind, e.Name, e.Scale, e.State, e.RawSize, e.Compression)
}

// decodeEntry materializes one entry into a source variant, verifying the
// payload digest and size.
func (r *Reader) decodeEntry(e *entry) (*source.Variant, error) {
	v := &source.Variant{
		Name:          e.Name,
		Scale:         e.Scale,
		State:         e.State,
		FontWeight:    e.FontWeight,
		PointSize:     e.PointSize,
		RenderingMode: e.RenderingMode,
	}

	switch e.Kind {
	case KindLayered:
		v.Layers = make([]image.Image, 0, len(e.Layers))
		for i, data := range e.Layers {
			img, err := decodePNG(data)
			if err != nil {
				return nil, fmt.Errorf("entry %q layer %d: %w", e.Name, i, err)
			}
			v.Layers = append(v.Layers, img)
		}
		return v, nil

	case KindEffect:
		return v, nil
	}

	payload, err := r.payload(e)
	if err != nil {
		return nil, err
	}

	switch e.Kind {
	case KindImage:
		img, err := decodePNG(payload)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		v.Image = img
	case KindVector:
		v.Vector = payload
	case KindData:
		v.Data = payload
	default:
		return nil, fmt.Errorf("entry %q: unknown kind %d", e.Name, e.Kind)
	}
	return v, nil
}

// payload decompresses and digest-verifies an entry's payload.
func (r *Reader) payload(e *entry) ([]byte, error) {
	raw, err := decompress(e.Payload, e.Compression, e.RawSize)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", e.Name, err)
	}
	digest := blake3.Sum256(raw)
	if !bytes.Equal(digest[:], e.Digest) {
		return nil, fmt.Errorf("entry %q: payload digest mismatch", e.Name)
	}
	return raw, nil
}

func decodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}
