package zkboo

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/zkboo-go/zkboo/internal/testcircuits"
)

func TestProofEncodeDecodeRoundTrip(t *testing.T) {
	proof, output := provenSingleAND(t)
	b := proof.Encode()
	decoded, err := Decode[uint32](b, testParams(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded.Encode(), b) {
		t.Fatal("re-encoded proof differs from original bytes")
	}
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	if err := v.Verify(context.Background(), decoded, output); err != nil {
		t.Fatalf("Verify(decoded): %v", err)
	}
}

func TestDecodeRejectsTruncatedBytes(t *testing.T) {
	proof, _ := provenSingleAND(t)
	b := proof.Encode()
	for _, cut := range []int{1, 5, len(b) / 2, len(b) - 1} {
		if _, err := Decode[uint32](b[:len(b)-cut], testParams(), 1); !errors.Is(err, ErrSerialization) {
			t.Fatalf("cut %d: expected ErrSerialization, got %v", cut, err)
		}
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	proof, _ := provenSingleAND(t)
	b := append(proof.Encode(), 0x00)
	if _, err := Decode[uint32](b, testParams(), 1); !errors.Is(err, ErrSerialization) {
		t.Fatalf("expected ErrSerialization, got %v", err)
	}
}

func TestDecodeRejectsOversizedLengthPrefix(t *testing.T) {
	proof, _ := provenSingleAND(t)
	b := proof.Encode()
	// The first length prefix follows the raw public output words.
	off := 4
	for i := 0; i < 8; i++ {
		b[off+i] = 0xFF
	}
	if _, err := Decode[uint32](b, testParams(), 1); !errors.Is(err, ErrSerialization) {
		t.Fatalf("expected ErrSerialization, got %v", err)
	}
}

// Any single-byte mutation of an encoded proof must be rejected, either
// at decode time (length prefixes, trit range) or at verify time
// (everything that feeds the reconstructed transcript).
func TestEncodedProofTamperRejection(t *testing.T) {
	proof, output := provenSingleAND(t)
	b := proof.Encode()
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)

	for i := 0; i < len(b); i++ {
		mutated := append([]byte(nil), b...)
		mutated[i] ^= 0x01
		decoded, err := Decode[uint32](mutated, testParams(), 1)
		if err != nil {
			continue
		}
		if err := v.Verify(context.Background(), decoded, output); err == nil {
			t.Fatalf("byte %d: mutation survived decode and verify", i)
		}
	}
}
