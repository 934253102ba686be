package zkboo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pion/logging"

	"github.com/zkboo-go/zkboo/pkg/circuit"
	"github.com/zkboo-go/zkboo/pkg/commitment"
	"github.com/zkboo-go/zkboo/pkg/fiatshamir"
	"github.com/zkboo-go/zkboo/pkg/party"
	"github.com/zkboo-go/zkboo/pkg/tape"
	"github.com/zkboo-go/zkboo/pkg/view"
	"github.com/zkboo-go/zkboo/pkg/word"
)

// Verifier checks a Proof against a circuit and a claimed public output.
type Verifier[W word.Uint] struct {
	Params  Params
	Circuit circuit.Circuit[W]

	// LoggerFactory builds the per-session logger; nil falls back to
	// pion's default factory, which stays quiet below its error level.
	LoggerFactory logging.LoggerFactory
}

// NewVerifier returns a Verifier for the given params and circuit.
func NewVerifier[W word.Uint](params Params, circ circuit.Circuit[W]) *Verifier[W] {
	return &Verifier[W]{Params: params, Circuit: circ}
}

func (v *Verifier[W]) logger() logging.LeveledLogger {
	if v.LoggerFactory == nil {
		return logging.NewDefaultLoggerFactory().NewLogger("zkboo")
	}
	return v.LoggerFactory.NewLogger("zkboo")
}

// Verify checks proof against the claimed publicOutput. It reconstructs
// the two opened parties of every repetition, re-simulates the circuit,
// derives the hidden party's output share from the claimed output,
// recomputes the two open commitments, and finally re-derives the
// Fiat–Shamir challenge from the fully reconstructed transcript. A nil
// return means the re-derived challenge matched the claimed trits; a
// cheating prover survives that check with probability at most
// (2/3)^R.
func (v *Verifier[W]) Verify(ctx context.Context, proof *Proof[W], publicOutput []W) error {
	sessionID := uuid.New()
	log := v.logger()
	log.Infof("zkboo: starting verify session %s", sessionID)

	if err := v.Params.Validate(); err != nil {
		return err
	}

	r := v.Params.Repetitions()
	if len(proof.PartyInputs) != r {
		return fmt.Errorf("%w: %d party inputs, want %d", ErrRepetitionCount, len(proof.PartyInputs), r)
	}
	if len(proof.Views) != r {
		return fmt.Errorf("%w: %d views, want %d", ErrRepetitionCount, len(proof.Views), r)
	}
	if len(proof.Commitments) != r {
		return fmt.Errorf("%w: %d commitments, want %d", ErrRepetitionCount, len(proof.Commitments), r)
	}
	if len(proof.Trits) != r {
		return fmt.Errorf("%w: %d trits, want %d", ErrRepetitionCount, len(proof.Trits), r)
	}
	if len(proof.Keys) != 2*r {
		return fmt.Errorf("%w: %d keys, want %d", ErrRepetitionCount, len(proof.Keys), 2*r)
	}
	for j, c := range proof.Commitments {
		if len(c) != v.Params.HashLen {
			return fmt.Errorf("repetition %d: %w", j, &HashLenError{Expected: v.Params.HashLen, Got: len(c)})
		}
	}

	outLen := v.Circuit.OutputLen()
	if len(publicOutput) != outLen {
		return fmt.Errorf("%w: claimed output has %d words, circuit declares %d", ErrOutputReconstruction, len(publicOutput), outLen)
	}
	if len(proof.PublicOutput) != outLen {
		return fmt.Errorf("%w: proof output has %d words, circuit declares %d", ErrFiatShamirMismatch, len(proof.PublicOutput), outLen)
	}
	for j := range publicOutput {
		if proof.PublicOutput[j] != publicOutput[j] {
			return fmt.Errorf("%w: proof carries a different public output (word %d)", ErrFiatShamirMismatch, j)
		}
	}

	gates := v.Circuit.NumMulGates()

	// Reconstructed transcript, in the same global slots the prover
	// filled: commits[j][k] and outs[j][k] belong to party k of
	// repetition j regardless of which trit rotated the opening.
	commits := make([][3][]byte, r)
	outs := make([][3][]W, r)

	for j := 0; j < r; j++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		t := int(proof.Trits[j])
		if t > 2 {
			return fmt.Errorf("%w: repetition %d trit %d out of range", ErrSerialization, j, t)
		}
		next := word.Next3(t)
		hidden := word.Prev3(t)

		fullShare, err := word.Words[W](proof.PartyInputs[j])
		if err != nil {
			return fmt.Errorf("%w: repetition %d party input: %v", ErrSerialization, j, err)
		}
		replayShare, err := word.Words[W](proof.Views[j].Input)
		if err != nil {
			return fmt.Errorf("%w: repetition %d view input: %v", ErrSerialization, j, err)
		}
		if len(proof.Views[j].Messages) != gates {
			return fmt.Errorf("%w: repetition %d view has %d messages, circuit visits %d gates", ErrOutputReconstruction, j, len(proof.Views[j].Messages), gates)
		}

		fullTape, err := tape.New[W](proof.Keys[2*j], gates)
		if err != nil {
			return fmt.Errorf("zkboo: repetition %d: rebuild tape for party %d: %w", j, t, err)
		}
		replayTape, err := tape.New[W](proof.Keys[2*j+1], gates)
		if err != nil {
			return fmt.Errorf("zkboo: repetition %d: rebuild tape for party %d: %w", j, next, err)
		}

		fullParty := party.NewVerifierFull[W](t, fullShare, proof.PartyInputs[j], fullTape)
		replayView := view.FromMessages[W](proof.Views[j].Input, proof.Views[j].Messages)
		replayParty := party.NewVerifierReplay[W](next, replayShare, replayTape, replayView)

		outFull, outReplay, err := v.Circuit.SimulateTwoParties(fullParty, replayParty)
		if err != nil {
			return fmt.Errorf("%w: repetition %d: %v", ErrOutputReconstruction, j, err)
		}
		if len(outFull) != outLen || len(outReplay) != outLen {
			return fmt.Errorf("%w: repetition %d: circuit returned %d/%d output words, want %d", ErrOutputReconstruction, j, len(outFull), len(outReplay), outLen)
		}

		// The hidden party's transcript was never opened; its output
		// share is whatever makes the three shares reconstruct the
		// claimed output.
		outHidden := make([]W, outLen)
		for k := 0; k < outLen; k++ {
			outHidden[k] = word.Xor(word.Xor(outFull[k], outReplay[k]), publicOutput[k])
		}

		cFull, err := commitment.Commit[W](proof.Keys[2*j], fullParty.View, v.Params.HashLen)
		if err != nil {
			return fmt.Errorf("zkboo: repetition %d: commit party %d: %w", j, t, err)
		}
		cReplay, err := commitment.Commit[W](proof.Keys[2*j+1], replayView, v.Params.HashLen)
		if err != nil {
			return fmt.Errorf("zkboo: repetition %d: commit party %d: %w", j, next, err)
		}

		commits[j][t] = cFull
		commits[j][next] = cReplay
		commits[j][hidden] = proof.Commitments[j]
		outs[j][t] = outFull
		outs[j][next] = outReplay
		outs[j][hidden] = outHidden
	}

	partyOutputs := make([][]byte, 0, 3*r)
	for j := 0; j < r; j++ {
		for p := 0; p < 3; p++ {
			partyOutputs = append(partyOutputs, word.EncodeWords(outs[j][p]))
		}
	}
	oracle := fiatshamir.New(v.Params.DomainSeed)
	if err := oracle.AbsorbPublicInput(fiatshamir.PublicInput{
		HashLen:       v.Params.HashLen,
		SoundnessBits: v.Params.SoundnessBits,
		Output:        fiatshamir.EncodeOutput(publicOutput),
		PartyOutputs:  partyOutputs,
	}); err != nil {
		return fmt.Errorf("zkboo: absorb public input: %w", err)
	}
	for j := 0; j < r; j++ {
		if err := oracle.AbsorbCommitments(commits[j][0], commits[j][1], commits[j][2]); err != nil {
			return fmt.Errorf("zkboo: absorb commitments for repetition %d: %w", j, err)
		}
	}
	derived, err := oracle.Challenge(r)
	if err != nil {
		return fmt.Errorf("zkboo: derive challenge: %w", err)
	}
	for j := 0; j < r; j++ {
		if derived[j] != proof.Trits[j] {
			return fmt.Errorf("%w: repetition %d: derived %d, claimed %d", ErrFiatShamirMismatch, j, derived[j], proof.Trits[j])
		}
	}

	log.Infof("zkboo: verify session %s succeeded (%d repetitions)", sessionID, r)
	return nil
}
