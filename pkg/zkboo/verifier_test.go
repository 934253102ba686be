package zkboo

import (
	"context"
	"errors"
	"testing"

	"github.com/zkboo-go/zkboo/internal/testcircuits"
)

func provenSingleAND(t *testing.T) (*Proof[uint32], []uint32) {
	t.Helper()
	circ := testcircuits.SingleAND[uint32]{}
	witness := []uint32{0xFFFFFFFF, 0xFFFFFFFF}
	output := []uint32{0xFFFFFFFF}
	pr := NewProver[uint32](testParams(), circ)
	proof, err := pr.Prove(context.Background(), witness, output)
	if err != nil {
		t.Fatal(err)
	}
	return proof, output
}

func TestVerifyRejectsWrongPublicOutput(t *testing.T) {
	proof, _ := provenSingleAND(t)
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	wrongOutput := []uint32{0}
	err := v.Verify(context.Background(), proof, wrongOutput)
	if !errors.Is(err, ErrFiatShamirMismatch) {
		t.Fatalf("expected ErrFiatShamirMismatch, got %v", err)
	}
}

func TestVerifyRejectsTamperedCommitment(t *testing.T) {
	proof, output := provenSingleAND(t)
	proof.Commitments[0][0] ^= 0xFF
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	err := v.Verify(context.Background(), proof, output)
	if !errors.Is(err, ErrFiatShamirMismatch) {
		t.Fatalf("expected ErrFiatShamirMismatch, got %v", err)
	}
}

func TestVerifyRejectsTamperedViewMessage(t *testing.T) {
	proof, output := provenSingleAND(t)
	for j := range proof.Views {
		if len(proof.Views[j].Messages) > 0 {
			proof.Views[j].Messages[0] ^= 1
			break
		}
	}
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	err := v.Verify(context.Background(), proof, output)
	if !errors.Is(err, ErrFiatShamirMismatch) {
		t.Fatalf("expected ErrFiatShamirMismatch, got %v", err)
	}
}

func TestVerifyRejectsTamperedPartyInput(t *testing.T) {
	proof, output := provenSingleAND(t)
	proof.PartyInputs[0][0] ^= 0x01
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	if err := v.Verify(context.Background(), proof, output); err == nil {
		t.Fatal("expected Verify to reject a tampered party input")
	}
}

func TestVerifyRejectsTamperedKey(t *testing.T) {
	proof, output := provenSingleAND(t)
	proof.Keys[0][0] ^= 0x01
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	if err := v.Verify(context.Background(), proof, output); err == nil {
		t.Fatal("expected Verify to reject a tampered key")
	}
}

func TestVerifyRejectsTamperedTrit(t *testing.T) {
	proof, output := provenSingleAND(t)
	proof.Trits[0] = (proof.Trits[0] + 1) % 3
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	if err := v.Verify(context.Background(), proof, output); err == nil {
		t.Fatal("expected Verify to reject a tampered trit")
	}
}

func TestVerifyRejectsShortViewMessages(t *testing.T) {
	proof, output := provenSingleAND(t)
	proof.Views[0].Messages = proof.Views[0].Messages[:0]
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	err := v.Verify(context.Background(), proof, output)
	if !errors.Is(err, ErrOutputReconstruction) {
		t.Fatalf("expected ErrOutputReconstruction, got %v", err)
	}
}

func TestVerifyRejectsWrongRepetitionCount(t *testing.T) {
	proof, output := provenSingleAND(t)
	proof.PartyInputs = proof.PartyInputs[:len(proof.PartyInputs)-1]
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	err := v.Verify(context.Background(), proof, output)
	if !errors.Is(err, ErrRepetitionCount) {
		t.Fatalf("expected ErrRepetitionCount, got %v", err)
	}
}

func TestVerifyRejectsWrongKeyCount(t *testing.T) {
	proof, output := provenSingleAND(t)
	proof.Keys = proof.Keys[:len(proof.Keys)-1]
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	err := v.Verify(context.Background(), proof, output)
	if !errors.Is(err, ErrRepetitionCount) {
		t.Fatalf("expected ErrRepetitionCount, got %v", err)
	}
}

func TestVerifyRejectsShortCommitment(t *testing.T) {
	proof, output := provenSingleAND(t)
	proof.Commitments[0] = proof.Commitments[0][:16]
	circ := testcircuits.SingleAND[uint32]{}
	v := NewVerifier[uint32](testParams(), circ)
	err := v.Verify(context.Background(), proof, output)
	var hlErr *HashLenError
	if !errors.As(err, &hlErr) {
		t.Fatalf("expected HashLenError, got %v", err)
	}
	if hlErr.Expected != 32 || hlErr.Got != 16 {
		t.Fatalf("HashLenError = %+v, want expected 32 got 16", hlErr)
	}
}

func TestVerifyRejectsMismatchedParams(t *testing.T) {
	proof, output := provenSingleAND(t)
	circ := testcircuits.SingleAND[uint32]{}
	differentParams := testParams()
	differentParams.SoundnessBits = 30
	v := NewVerifier[uint32](differentParams, circ)
	if err := v.Verify(context.Background(), proof, output); err == nil {
		t.Fatal("expected Verify to reject a proof produced under different params")
	}
}

func TestVerifyRejectsDifferentDomainSeed(t *testing.T) {
	proof, output := provenSingleAND(t)
	circ := testcircuits.SingleAND[uint32]{}
	differentParams := testParams()
	differentParams.DomainSeed = 0x01
	v := NewVerifier[uint32](differentParams, circ)
	err := v.Verify(context.Background(), proof, output)
	if !errors.Is(err, ErrFiatShamirMismatch) {
		t.Fatalf("expected ErrFiatShamirMismatch, got %v", err)
	}
}
