// Package tape implements the per-party pseudorandom tape consumed at
// multiplication gates: a keyed, extendable sequence of words that is a
// pure function of its seed key, so the prover and any verifier re-derive
// byte-identical tapes from the same key on any platform.
//
// The extendable output is HKDF-SHA256 (golang.org/x/crypto/hkdf), the same
// KDF the teacher codebase uses for its own key schedule, keyed by the
// tape's Key and a fixed, width-qualified info string so tapes of
// different word widths can never collide even if accidentally derived
// from the same key.
package tape

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/zkboo-go/zkboo/pkg/word"
)

// KeySize is the length in bytes of a tape seed key.
const KeySize = 32

// Key seeds a Tape's PRG.
type Key [KeySize]byte

// Tape is the fully materialized pseudorandom word sequence derived from a
// Key, with length fixed to the circuit's multiplication-gate count at
// construction time.
type Tape[W word.Uint] struct {
	words  []W
	cursor int
}

// New derives a Tape of exactly length words from key. length is normally
// the circuit's NumMulGates(); deriving it up front makes "equal keys yield
// equal tapes" (the Tape invariant) a property of construction rather than
// of careful streaming bookkeeping.
func New[W word.Uint](key Key, length int) (*Tape[W], error) {
	if length < 0 {
		return nil, fmt.Errorf("tape: negative length %d", length)
	}
	bw := word.ByteWidth[W]()
	raw := make([]byte, length*bw)
	if len(raw) > 0 {
		info := []byte(fmt.Sprintf("zkboo-tape-v1-w%d", word.Width[W]()))
		r := hkdf.New(sha256.New, key[:], nil, info)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, fmt.Errorf("tape: hkdf expand: %w", err)
		}
	}
	words := make([]W, length)
	for i := 0; i < length; i++ {
		w, err := word.FromBytes[W](raw[i*bw : (i+1)*bw])
		if err != nil {
			return nil, fmt.Errorf("tape: decode word %d: %w", i, err)
		}
		words[i] = w
	}
	return &Tape[W]{words: words}, nil
}

// Len returns the tape's declared length.
func (t *Tape[W]) Len() int { return len(t.words) }

// Next returns the next word in sequence and advances the cursor. Reading
// past Len() indicates the circuit's NumMulGates() disagrees with its own
// gate-visit count — a construction bug, not a verifier-reachable
// condition — and fails loudly by panicking, per the "exhaustion is a bug"
// invariant.
func (t *Tape[W]) Next() W {
	if t.cursor >= len(t.words) {
		panic(fmt.Sprintf("tape: exhausted after %d words", len(t.words)))
	}
	w := t.words[t.cursor]
	t.cursor++
	return w
}

// At returns the word at index i without mutating the read cursor. This is
// the "peek" a party uses to read its cyclic neighbor's correlated
// randomness at the neighbor's current gate position without disturbing
// the neighbor's own independent Next() calls.
func (t *Tape[W]) At(i int) (W, error) {
	if i < 0 || i >= len(t.words) {
		return 0, fmt.Errorf("tape: index %d out of range [0,%d)", i, len(t.words))
	}
	return t.words[i], nil
}

// Cursor returns the number of words already consumed via Next.
func (t *Tape[W]) Cursor() int { return t.cursor }
