package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// valueSize is the encoded width of one value.
const valueSize = 8

// EncodeValues encodes raw feature values into a BLOB: a little-endian
// sequence of IEEE 754 float64 values with no length prefix. An empty slice
// encodes to an empty, non-nil BLOB so a present-but-empty frame survives a
// round trip; nil encodes to nil.
func EncodeValues(values []float64) []byte {
	if values == nil {
		return nil
	}
	out := make([]byte, 0, len(values)*valueSize)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
	}
	return out
}

// DecodeValues decodes a BLOB produced by EncodeValues.
func DecodeValues(b []byte) ([]float64, error) {
	if b == nil {
		return nil, nil
	}
	if len(b)%valueSize != 0 {
		return nil, fmt.Errorf("vector: invalid values blob length %d (not multiple of %d)", len(b), valueSize)
	}
	values := make([]float64, len(b)/valueSize)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*valueSize:]))
	}
	return values, nil
}

// EncodeFrames encodes a sequence of value frames. Each frame is written as
// a uint32 value count followed by its EncodeValues bytes.
func EncodeFrames(frames [][]float64) []byte {
	size := 0
	for _, f := range frames {
		size += 4 + valueSize*len(f)
	}
	out := make([]byte, 0, size)
	for _, f := range frames {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(f)))
		out = append(out, EncodeValues(f)...)
	}
	return out
}

// DecodeFrames decodes a BLOB produced by EncodeFrames.
func DecodeFrames(b []byte) ([][]float64, error) {
	var frames [][]float64
	for off := 0; off < len(b); {
		if len(b)-off < 4 {
			return nil, fmt.Errorf("vector: truncated frame header at %d", off)
		}
		n := uint64(binary.LittleEndian.Uint32(b[off:]))
		off += 4
		if n > uint64((len(b)-off)/valueSize) {
			return nil, fmt.Errorf("vector: truncated frame of %d values at %d", n, off)
		}
		end := off + int(n)*valueSize
		values, err := DecodeValues(b[off:end])
		if err != nil {
			return nil, err
		}
		frames = append(frames, values)
		off = end
	}
	return frames, nil
}
