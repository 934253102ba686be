// Package party implements the (2,3)-decomposition party: the pairing of a
// view, a tape, and an input share that the circuit evaluator drives
// through XOR, AND, rotate and shift gates.
//
// Party is the object a Circuit implementation is written against (see
// package circuit); it has no knowledge of repetitions, commitments, or
// Fiat–Shamir — it only ever sees itself and, for AND gates, the cyclic
// neighbor whose correlated randomness it must read.
package party

import (
	"fmt"

	"github.com/zkboo-go/zkboo/pkg/tape"
	"github.com/zkboo-go/zkboo/pkg/view"
	"github.com/zkboo-go/zkboo/pkg/word"
)

// Party pairs one (2,3)-decomposition party's share, view and tape.
type Party[W word.Uint] struct {
	// Index is this party's position, 0, 1 or 2.
	Index int
	Share []W
	View  *view.View[W]
	Tape  *tape.Tape[W]
}

// NewProver builds a party ready to drive compute_23_decomposition: it has
// its own tape (so it can compute fresh AND-gate outputs) and starts with
// an empty view.
func NewProver[W word.Uint](index int, share []W, input []byte, tp *tape.Tape[W]) *Party[W] {
	return &Party[W]{
		Index: index,
		Share: share,
		View:  view.New[W](input),
		Tape:  tp,
	}
}

// NewVerifierFull reconstructs the opened party t_j: it has its own share
// (from the opened party_input bytes) and its own tape (from its opened
// key), so its AND-gate outputs can be recomputed fresh exactly as the
// prover computed them.
func NewVerifierFull[W word.Uint](index int, share []W, input []byte, tp *tape.Tape[W]) *Party[W] {
	return NewProver[W](index, share, input, tp)
}

// NewVerifierReplay reconstructs the next party t_j+1: it carries a Share
// (decoded from the opened view's input bytes, so the full party's And
// can read its neighbor's plaintext-share inputs) and a tape re-derived
// from its opened key (so the full party can peek its correlated
// randomness), but its own AND-gate outputs are not recomputed — they are
// replayed from the opened view, which is the witness of the absent third
// party's contribution.
func NewVerifierReplay[W word.Uint](index int, share []W, tp *tape.Tape[W], v *view.View[W]) *Party[W] {
	return &Party[W]{
		Index: index,
		Share: share,
		Tape:  tp,
		View:  v,
	}
}

// Xor is pure-local: no view or tape interaction.
func (p *Party[W]) Xor(a, b W) W { return word.Xor(a, b) }

// XorConst is pure-local XOR with a public constant.
func (p *Party[W]) XorConst(a W, c W) W { return word.Xor(a, c) }

// RotL, RotR, ShiftL, ShiftR are pure-local linear unary gates.
func (p *Party[W]) RotL(a W, n int) (W, error)  { return word.RotL(a, n) }
func (p *Party[W]) RotR(a W, n int) (W, error)  { return word.RotR(a, n) }
func (p *Party[W]) ShiftL(a W, n int) (W, error) { return word.ShiftL(a, n) }
func (p *Party[W]) ShiftR(a W, n int) (W, error) { return word.ShiftR(a, n) }

// And computes this party's (index i) share of an AND-gate output:
//
//	z_i = a_i·b_i  xor  a_{i+1}·b_i  xor  a_i·b_{i+1}  xor  r_i  xor  r_{i+1}
//
// where a, b are this party's shares of the gate's two input wires,
// aNext, bNext are the cyclic neighbor's shares of the same two wires, and
// r_i, r_{i+1} are this party's and the neighbor's next tape words. The
// neighbor's tape is read via a non-mutating peek (Tape.At) at this
// party's own pre-advance cursor position — by construction every party's
// tape cursor advances exactly once per AND gate in the same relative
// call order, so the peeked index always lines up with the index the
// neighbor will independently advance to on its own And call for the same
// gate.
//
// The computed z_i is appended to this party's view.
func (p *Party[W]) And(a, b, aNext, bNext W, next *Party[W]) (W, error) {
	if p.Tape == nil {
		return 0, fmt.Errorf("party %d: And called on a replay-only party with no tape", p.Index)
	}
	if next.Tape == nil {
		return 0, fmt.Errorf("party %d: And called with a neighbor that has no tape", p.Index)
	}
	idx := p.Tape.Cursor()
	r := p.Tape.Next()
	rNext, err := next.Tape.At(idx)
	if err != nil {
		return 0, fmt.Errorf("party %d: peek neighbor tape at %d: %w", p.Index, idx, err)
	}

	z := word.Xor(word.Xor(word.And(a, b), word.And(aNext, b)), word.Xor(word.And(a, bNext), word.Xor(r, rNext)))
	p.View.Append(z)
	return z, nil
}

// ReplayAnd consumes this party's next recorded view message as the
// output of an AND gate, for use when this party's contribution is being
// trusted from an opened view rather than recomputed (the "next party" in
// simulate_two_parties).
func (p *Party[W]) ReplayAnd() (W, error) {
	z, err := p.View.Next()
	if err != nil {
		return 0, fmt.Errorf("party %d: %w", p.Index, err)
	}
	return z, nil
}

// Output packages this party's final wire shares as its contribution to
// the plaintext output, satisfying out1 xor out2 xor out3 = C(w).
func Output[W word.Uint](shares ...W) []W {
	out := make([]W, len(shares))
	copy(out, shares)
	return out
}
