package vector

import "testing"

func TestEncodeDecodeValues_RoundTrip(t *testing.T) {
	orig := []float64{99, 1.5, -2.25, 3.75}

	decoded, err := DecodeValues(EncodeValues(orig))
	if err != nil {
		t.Fatalf("DecodeValues failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if got, want := decoded[i], orig[i]; got != want {
			t.Fatalf("decoded[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeDecodeValues_NilAndEmpty(t *testing.T) {
	if b := EncodeValues(nil); b != nil {
		t.Fatalf("expected nil blob for nil slice, got len=%d", len(b))
	}
	b := EncodeValues([]float64{})
	if b == nil || len(b) != 0 {
		t.Fatalf("expected empty non-nil blob for empty slice, got %v", b)
	}
	values, err := DecodeValues(b)
	if err != nil {
		t.Fatalf("DecodeValues(empty) failed: %v", err)
	}
	if values == nil || len(values) != 0 {
		t.Fatalf("expected empty non-nil values, got %v", values)
	}
}

func TestDecodeValues_InvalidLength(t *testing.T) {
	if _, err := DecodeValues([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for 3-byte blob")
	}
}

func TestEncodeDecodeFrames(t *testing.T) {
	frames := [][]float64{{0, 1, 2}, {}, {5}}

	decoded, err := DecodeFrames(EncodeFrames(frames))
	if err != nil {
		t.Fatalf("DecodeFrames failed: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("decoded %d frames, want 3", len(decoded))
	}
	if len(decoded[0]) != 3 || decoded[0][2] != 2 {
		t.Fatalf("frame 0 = %v, want [0 1 2]", decoded[0])
	}
	if len(decoded[1]) != 0 {
		t.Fatalf("frame 1 = %v, want empty", decoded[1])
	}
	if len(decoded[2]) != 1 || decoded[2][0] != 5 {
		t.Fatalf("frame 2 = %v, want [5]", decoded[2])
	}

	if frames, err := DecodeFrames(nil); err != nil || len(frames) != 0 {
		t.Fatalf("DecodeFrames(nil) = %v, %v; want empty, nil", frames, err)
	}
	if _, err := DecodeFrames([]byte{3, 0, 0, 0, 1, 2}); err == nil {
		t.Fatalf("expected truncation error")
	}
}

func TestEncodeDecodeValues_FullPrecision(t *testing.T) {
	orig := []float64{1e39, 0.1000001, 0.1000002}

	decoded, err := DecodeValues(EncodeValues(orig))
	if err != nil {
		t.Fatalf("DecodeValues failed: %v", err)
	}
	for i := range orig {
		if decoded[i] != orig[i] {
			t.Fatalf("decoded[%d] = %v, want %v", i, decoded[i], orig[i])
		}
	}
}

func TestDecodeFrames_OversizedCount(t *testing.T) {
	blob := []byte{0xff, 0xff, 0xff, 0xff, 1, 2, 3, 4, 5, 6, 7, 8}
	if _, err := DecodeFrames(blob); err == nil {
		t.Fatalf("expected error for frame count exceeding blob")
	}
}
