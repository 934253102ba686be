// Package circuit defines the boolean-circuit contract that a statement
// must implement to be proved: how many multiplication gates it visits
// (fixing every party's tape length), and the two ways it can be
// evaluated — fully, across all three parties, and partially, across the
// two parties a verifier reconstructs for one repetition.
package circuit

import (
	"github.com/zkboo-go/zkboo/pkg/party"
	"github.com/zkboo-go/zkboo/pkg/word"
)

// Circuit is implemented once per statement (for example "SHA-256
// preimage" or "this specific boolean formula") and driven by the prover
// and verifier without either needing to know the circuit's internal gate
// graph.
type Circuit[W word.Uint] interface {
	// NumMulGates returns the number of multiplication (AND) gates the
	// circuit visits in one full evaluation. This fixes the length of
	// every party's pseudorandom tape.
	NumMulGates() int

	// OutputLen returns the number of output words the circuit produces.
	OutputLen() int

	// Compute23Decomposition drives all three parties through the
	// circuit's gates in lockstep, each party recording its
	// multiplication-gate messages into its own view, and returns each
	// party's share of the circuit's output.
	Compute23Decomposition(p0, p1, p2 *party.Party[W]) (out0, out1, out2 []W, err error)

	// SimulateTwoParties re-evaluates the circuit for exactly two
	// parties: p recomputes its output shares fresh from its own share
	// and tape, while pNext's multiplication-gate outputs are replayed
	// from its already-opened view rather than recomputed, since pNext's
	// own tape-neighbor (the unopened third party) is not available to
	// the verifier.
	SimulateTwoParties(p, pNext *party.Party[W]) (outP, outPNext []W, err error)
}
