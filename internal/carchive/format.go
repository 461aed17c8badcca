// Package carchive implements the project's archive container format and a
// rendition source backend on top of it.
//
// A carchive file is an 8-byte magic header followed by one CBOR document
// (core deterministic encoding, so identical content always produces
// identical bytes). Entry payloads are individually compressed and carry a
// BLAKE3 digest of the uncompressed bytes, verified on every read.
package carchive

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Magic identifies a carchive file. Version is part of the magic; a format
// change bumps the trailing digit.
var Magic = []byte("ACARCHV1")

// EntryKind tags what an archive entry holds. Stored in the manifest;
// protocol constants, do not renumber.
type EntryKind uint8

const (
	KindImage   EntryKind = 0 // Payload is an encoded PNG raster.
	KindVector  EntryKind = 1 // Payload is a vector document (PDF bytes).
	KindData    EntryKind = 2 // Payload is an opaque byte blob.
	KindLayered EntryKind = 3 // Layers hold an ordered PNG stack, bottom first.
	KindEffect  EntryKind = 4 // Non-visual effect/material entry, no payload.
)

func (k EntryKind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVector:
		return "vector"
	case KindData:
		return "data"
	case KindLayered:
		return "layered"
	case KindEffect:
		return "effect"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// document is the CBOR manifest holding all entries inline.
type document struct {
	// Keyed marks theme-store-style archives: no direct name+scale
	// lookup, renditions addressed by composite keys only.
	Keyed   bool    `cbor:"keyed"`
	Entries []entry `cbor:"entries"`
}

// entry is one stored rendition.
type entry struct {
	Name  string    `cbor:"name"`
	Scale int       `cbor:"scale"`
	State string    `cbor:"state,omitempty"`
	Kind  EntryKind `cbor:"kind"`

	// Font descriptors for vector entries.
	FontWeight    string `cbor:"weight,omitempty"`
	PointSize     int    `cbor:"size,omitempty"`
	RenderingMode string `cbor:"mode,omitempty"`

	// Payload framing. Digest is BLAKE3 over the uncompressed payload.
	Compression CompressionTag `cbor:"compression"`
	RawSize     int            `cbor:"rawSize"`
	Digest      []byte         `cbor:"digest,omitempty"`
	Payload     []byte         `cbor:"payload,omitempty"`

	// Layer stack for layered entries, each an uncompressed PNG.
	Layers [][]byte `cbor:"layers,omitempty"`
}

// encMode is the CBOR encoder configured with Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items.
var encMode cbor.EncMode

// decMode accepts standard CBOR; unknown fields are ignored for forward
// compatibility.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("carchive: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("carchive: CBOR decoder initialization failed: " + err.Error())
	}
}
