// Package fiatshamir implements the non-interactive challenge derivation
// that replaces the verifier's random coin: a SHAKE256 extendable-output
// function (golang.org/x/crypto/sha3) absorbing a domain seed, the public
// input, and every repetition's three commitments, then squeezed for a
// uniform trit per repetition via rejection sampling.
//
// An XOF is used instead of repeated fixed-output hashing with a counter
// because the oracle's two operations, "absorb an arbitrary-length
// transcript" and "squeeze an arbitrary number of challenge trits", are
// exactly what SHAKE256's Write/Read interface already provides.
package fiatshamir

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/zkboo-go/zkboo/pkg/word"
)

// rejectionBound is the largest multiple of 3 below 256; bytes at or
// above it are discarded so the surviving range maps onto {0,1,2}
// uniformly.
const rejectionBound = 252

// PublicInput is everything about the statement being proven that must be
// bound into the challenge, so a proof cannot be replayed against a
// different circuit or claimed output. PartyOutputs carries every party's
// output share across every repetition, flattened in repetition-ascending
// then party-ascending order; the verifier reconstructs the same list
// (two shares re-simulated, the third derived from the claimed output)
// before re-deriving the challenge.
type PublicInput struct {
	HashLen       int
	SoundnessBits int
	Output        []byte
	PartyOutputs  [][]byte
}

// Oracle accumulates an absorbed transcript and derives challenge trits
// from it.
type Oracle struct {
	state sha3.ShakeHash
}

// New creates an oracle seeded with domainSeed, a single byte that
// separates this proof system's challenge derivation from any other use
// of SHAKE256 sharing the same process.
func New(domainSeed byte) *Oracle {
	o := &Oracle{state: sha3.NewShake256()}
	o.state.Write([]byte{domainSeed})
	return o
}

// AbsorbPublicInput feeds the statement's public parameters and claimed
// output into the transcript, length-prefixed so the encoding is
// unambiguous.
func (o *Oracle) AbsorbPublicInput(pi PublicInput) error {
	var hdr [8]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(pi.HashLen))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(pi.SoundnessBits))
	if _, err := o.state.Write(hdr[:]); err != nil {
		return fmt.Errorf("fiatshamir: absorb public input header: %w", err)
	}
	if err := o.absorbBytes(pi.Output); err != nil {
		return fmt.Errorf("fiatshamir: absorb public input output: %w", err)
	}
	var cnt [8]byte
	binary.LittleEndian.PutUint64(cnt[:], uint64(len(pi.PartyOutputs)))
	if _, err := o.state.Write(cnt[:]); err != nil {
		return fmt.Errorf("fiatshamir: absorb party output count: %w", err)
	}
	for i, out := range pi.PartyOutputs {
		if err := o.absorbBytes(out); err != nil {
			return fmt.Errorf("fiatshamir: absorb party output %d: %w", i, err)
		}
	}
	return nil
}

// AbsorbCommitments feeds one repetition's three party commitments into
// the transcript, in canonical party order. Call once per repetition, in
// repetition order.
func (o *Oracle) AbsorbCommitments(c0, c1, c2 []byte) error {
	for i, c := range [][]byte{c0, c1, c2} {
		if err := o.absorbBytes(c); err != nil {
			return fmt.Errorf("fiatshamir: absorb commitment %d: %w", i, err)
		}
	}
	return nil
}

func (o *Oracle) absorbBytes(b []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
	if _, err := o.state.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := o.state.Write(b)
	return err
}

// Challenge squeezes r uniform trits (values 0, 1 or 2, one per
// repetition) from the absorbed transcript via rejection sampling: bytes
// in [0,252) are reduced mod 3; bytes in [252,256) are discarded and the
// next byte is tried. Calling Challenge finalizes absorption — no further
// Absorb calls are valid on this oracle afterward.
func (o *Oracle) Challenge(r int) ([]uint8, error) {
	if r < 0 {
		return nil, fmt.Errorf("fiatshamir: negative trit count %d", r)
	}
	out := make([]uint8, 0, r)
	var buf [1]byte
	for len(out) < r {
		if _, err := io.ReadFull(o.state, buf[:]); err != nil {
			return nil, fmt.Errorf("fiatshamir: squeeze: %w", err)
		}
		if buf[0] >= rejectionBound {
			continue
		}
		out = append(out, buf[0]%3)
	}
	return out, nil
}

// EncodeOutput serializes a party's output words into the canonical byte
// form fed to AbsorbPublicInput, ensuring identical prover and verifier
// encodings.
func EncodeOutput[W word.Uint](out []W) []byte {
	return word.EncodeWords(out)
}
