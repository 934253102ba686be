package zkboo

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestShareWitnessReconstructs(t *testing.T) {
	witness := []uint32{0x11223344, 0, 0xFFFFFFFF, 0xAABBCCDD}
	s0, s1, s2, err := ShareWitness[uint32](witness, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	for i := range witness {
		got := s0[i] ^ s1[i] ^ s2[i]
		if got != witness[i] {
			t.Errorf("word %d: reconstructed %#x, want %#x", i, got, witness[i])
		}
	}
}

func TestShareWitnessIndependentShares(t *testing.T) {
	witness := []uint32{0x12345678}
	s0a, s1a, _, err := ShareWitness[uint32](witness, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	s0b, s1b, _, err := ShareWitness[uint32](witness, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if s0a[0] == s0b[0] && s1a[0] == s1b[0] {
		t.Error("two independent sharings produced identical share0/share1 (astronomically unlikely)")
	}
}

func TestShareWitnessEmpty(t *testing.T) {
	s0, s1, s2, err := ShareWitness[uint8](nil, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if len(s0) != 0 || len(s1) != 0 || len(s2) != 0 {
		t.Error("expected empty shares for empty witness")
	}
}

func TestShareWitnessPropagatesReaderError(t *testing.T) {
	_, _, _, err := ShareWitness[uint32]([]uint32{1}, bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected error when randomness source is exhausted")
	}
}
