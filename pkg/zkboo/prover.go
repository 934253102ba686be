package zkboo

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pion/logging"
	"golang.org/x/sync/errgroup"

	"github.com/zkboo-go/zkboo/pkg/circuit"
	"github.com/zkboo-go/zkboo/pkg/commitment"
	"github.com/zkboo-go/zkboo/pkg/fiatshamir"
	"github.com/zkboo-go/zkboo/pkg/party"
	"github.com/zkboo-go/zkboo/pkg/tape"
	"github.com/zkboo-go/zkboo/pkg/view"
	"github.com/zkboo-go/zkboo/pkg/word"
)

// Prover drives Prove for one circuit under one set of Params. Its zero
// value is not ready to use; construct with NewProver.
type Prover[W word.Uint] struct {
	Params  Params
	Circuit circuit.Circuit[W]
	Keys    *KeyManager

	// Rand seeds witness sharing; defaults to crypto/rand.Reader.
	Rand io.Reader

	// Workers bounds how many repetitions are computed concurrently.
	// Zero or one means sequential, matching the teacher's default of
	// not spinning up a pool unless the caller asks for one. All
	// randomness is drawn sequentially before the pool starts, so the
	// proof bytes do not depend on the worker count.
	Workers int

	// LoggerFactory builds the per-session logger; nil falls back to
	// pion's default factory, which stays quiet below its error level.
	LoggerFactory logging.LoggerFactory
}

// NewProver returns a Prover with a fresh KeyManager drawing from
// crypto/rand.Reader.
func NewProver[W word.Uint](params Params, circ circuit.Circuit[W]) *Prover[W] {
	return &Prover[W]{
		Params:  params,
		Circuit: circ,
		Keys:    NewKeyManager(),
		Rand:    rand.Reader,
	}
}

func (pr *Prover[W]) logger() logging.LeveledLogger {
	if pr.LoggerFactory == nil {
		return logging.NewDefaultLoggerFactory().NewLogger("zkboo")
	}
	return pr.LoggerFactory.NewLogger("zkboo")
}

type repResult[W word.Uint] struct {
	keys    [3]tape.Key
	views   [3]*view.View[W]
	commits [3][]byte
	outs    [3][]W
}

// Prove produces a non-interactive proof that witness satisfies
// pr.Circuit against the claimed publicOutput.
func (pr *Prover[W]) Prove(ctx context.Context, witness []W, publicOutput []W) (*Proof[W], error) {
	sessionID := uuid.New()
	log := pr.logger()
	log.Infof("zkboo: starting proof session %s (sigma=%d, hashLen=%d)", sessionID, pr.Params.SoundnessBits, pr.Params.HashLen)

	if err := pr.Params.Validate(); err != nil {
		return nil, err
	}
	if len(publicOutput) != pr.Circuit.OutputLen() {
		return nil, fmt.Errorf("%w: public output has %d words, circuit declares %d", ErrOutputMismatch, len(publicOutput), pr.Circuit.OutputLen())
	}
	r := pr.Params.Repetitions()

	keyTriples, err := pr.Keys.Draw(r)
	if err != nil {
		return nil, fmt.Errorf("zkboo: draw keys: %w", err)
	}

	rng := pr.Rand
	if rng == nil {
		rng = rand.Reader
	}

	// All share randomness is drawn here, before any repetition runs, so
	// a deterministic Rand yields byte-identical proofs regardless of
	// how repetitions are later scheduled across workers.
	shares := make([][3][]W, r)
	for i := 0; i < r; i++ {
		s0, s1, s2, err := ShareWitness[W](witness, rng)
		if err != nil {
			return nil, fmt.Errorf("zkboo: repetition %d: share witness: %w", i, err)
		}
		shares[i] = [3][]W{s0, s1, s2}
	}

	results := make([]repResult[W], r)
	gates := pr.Circuit.NumMulGates()

	computeOne := func(i int) error {
		keys := keyTriples[i]
		var parties [3]*party.Party[W]
		for p := 0; p < 3; p++ {
			tp, err := tape.New[W](keys[p], gates)
			if err != nil {
				return fmt.Errorf("repetition %d: tape %d: %w", i, p, err)
			}
			s := shares[i][p]
			parties[p] = party.NewProver[W](p, s, word.EncodeWords(s), tp)
		}

		out0, out1, out2, err := pr.Circuit.Compute23Decomposition(parties[0], parties[1], parties[2])
		if err != nil {
			return fmt.Errorf("repetition %d: evaluate circuit: %w", i, err)
		}
		if len(out0) != len(publicOutput) || len(out1) != len(publicOutput) || len(out2) != len(publicOutput) {
			return fmt.Errorf("repetition %d: circuit returned %d/%d/%d output words, want %d: %w",
				i, len(out0), len(out1), len(out2), len(publicOutput), ErrOutputMismatch)
		}

		for j := range publicOutput {
			reconstructed := word.Xor(word.Xor(out0[j], out1[j]), out2[j])
			if reconstructed != publicOutput[j] {
				return fmt.Errorf("repetition %d word %d: %w", i, j, ErrOutputMismatch)
			}
		}

		res := repResult[W]{keys: keys, outs: [3][]W{out0, out1, out2}}
		for p := 0; p < 3; p++ {
			res.views[p] = parties[p].View
			c, err := commitment.Commit[W](keys[p], parties[p].View, pr.Params.HashLen)
			if err != nil {
				return fmt.Errorf("repetition %d: commit party %d: %w", i, p, err)
			}
			res.commits[p] = c
		}
		results[i] = res
		return nil
	}

	if pr.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(pr.Workers)
		for i := 0; i < r; i++ {
			i := i
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				return computeOne(i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < r; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := computeOne(i); err != nil {
				return nil, err
			}
		}
	}

	// Commitments and outputs enter the oracle in repetition-ascending,
	// then party-ascending order, regardless of how workers finished.
	partyOutputs := make([][]byte, 0, 3*r)
	for _, res := range results {
		for p := 0; p < 3; p++ {
			partyOutputs = append(partyOutputs, word.EncodeWords(res.outs[p]))
		}
	}
	oracle := fiatshamir.New(pr.Params.DomainSeed)
	if err := oracle.AbsorbPublicInput(fiatshamir.PublicInput{
		HashLen:       pr.Params.HashLen,
		SoundnessBits: pr.Params.SoundnessBits,
		Output:        fiatshamir.EncodeOutput(publicOutput),
		PartyOutputs:  partyOutputs,
	}); err != nil {
		return nil, fmt.Errorf("zkboo: absorb public input: %w", err)
	}
	for i, res := range results {
		if err := oracle.AbsorbCommitments(res.commits[0], res.commits[1], res.commits[2]); err != nil {
			return nil, fmt.Errorf("zkboo: absorb commitments for repetition %d: %w", i, err)
		}
	}
	trits, err := oracle.Challenge(r)
	if err != nil {
		return nil, fmt.Errorf("zkboo: derive challenge: %w", err)
	}

	proof := &Proof[W]{
		PublicOutput: append([]W(nil), publicOutput...),
		PartyInputs:  make([][]byte, r),
		Views:        make([]OpenedView[W], r),
		Keys:         make([]tape.Key, 2*r),
		Commitments:  make([][]byte, r),
		Trits:        trits,
	}
	for i, res := range results {
		t := int(trits[i])
		next := word.Next3(t)
		hiddenIdx := word.Prev3(t)
		proof.PartyInputs[i] = res.views[t].Input
		proof.Views[i] = OpenedView[W]{
			Input:    res.views[next].Input,
			Messages: res.views[next].Messages,
		}
		proof.Keys[2*i] = res.keys[t]
		proof.Keys[2*i+1] = res.keys[next]
		proof.Commitments[i] = res.commits[hiddenIdx]
	}

	log.Infof("zkboo: finished proof session %s (%d repetitions)", sessionID, r)

	return proof, nil
}
