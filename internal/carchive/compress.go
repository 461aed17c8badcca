package carchive

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the per-entry payload compression algorithm.
// Stored in the manifest (protocol constants, do not renumber).
type CompressionTag uint8

const (
	// CompressionNone stores the payload as-is. Used for payloads that are
	// already compressed (PNG, PDF) where recompression only burns CPU.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 is the fast default for binary payloads.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd gives better ratios on text-like payloads.
	CompressionZstd CompressionTag = 2
)

func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(tag))
	}
}

// zstdEncoder and zstdDecoder are reused across calls; both are safe for
// concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("carchive: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("carchive: zstd decoder initialization failed: " + err.Error())
	}
}

var errIncompressible = fmt.Errorf("data is incompressible")

// compress applies tag to data. Returns errIncompressible when the output
// would not be smaller than the input; callers fall back to CompressionNone.
func compress(data []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil

	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(data))
		dst := make([]byte, bound)
		written, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if written == 0 || written >= len(data) {
			return nil, errIncompressible
		}
		return dst[:written], nil

	case CompressionZstd:
		out := zstdEncoder.EncodeAll(data, nil)
		if len(out) >= len(data) {
			return nil, errIncompressible
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// decompress reverses compress. uncompressedSize must match the original
// payload length exactly; a mismatch returns an error.
func decompress(data []byte, tag CompressionTag, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(data) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match expected %d",
				len(data), uncompressedSize)
		}
		return data, nil

	case CompressionLZ4:
		dst := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
		}
		return dst, nil

	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(data, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(out) != uncompressedSize {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(out), uncompressedSize)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// selectCompression probes data with zstd: ratios above 1.5x pick zstd,
// above 1.1x pick LZ4, anything below stays uncompressed.
func selectCompression(data []byte) CompressionTag {
	if len(data) == 0 {
		return CompressionNone
	}
	probe := zstdEncoder.EncodeAll(data, nil)
	ratio := float64(len(data)) / float64(len(probe))
	switch {
	case ratio >= 1.5:
		return CompressionZstd
	case ratio >= 1.1:
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// compressAuto compresses data with the probed best algorithm, falling back
// to CompressionNone for incompressible payloads.
func compressAuto(data []byte) ([]byte, CompressionTag, error) {
	tag := selectCompression(data)
	out, err := compress(data, tag)
	if err != nil {
		if err == errIncompressible {
			return data, CompressionNone, nil
		}
		return nil, 0, err
	}
	return out, tag, nil
}
