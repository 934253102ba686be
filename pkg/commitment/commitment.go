// Package commitment implements the per-party, per-repetition binding
// commitment: a keyed BLAKE2b hash of the party's tape key, its input
// share, and every message it recorded in its view, in that fixed order.
//
// BLAKE2b (golang.org/x/crypto/blake2b) is used directly rather than
// through an HMAC construction because it natively supports both keyed
// operation and a configurable digest length, which is exactly the shape
// the commitment needs: Commit(key, input, messages) -> hashLen bytes.
package commitment

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/zkboo-go/zkboo/pkg/tape"
	"github.com/zkboo-go/zkboo/pkg/view"
	"github.com/zkboo-go/zkboo/pkg/word"
)

// MinHashLen and MaxHashLen bound the configurable digest length, matching
// BLAKE2b's own supported output range for a keyed hash.
const (
	MinHashLen = 1
	MaxHashLen = blake2b.Size // 64
)

// HashLenError reports a hashLen argument outside BLAKE2b's supported
// range.
type HashLenError struct {
	Got int
}

func (e *HashLenError) Error() string {
	return fmt.Sprintf("commitment: hash length %d out of range [%d,%d]", e.Got, MinHashLen, MaxHashLen)
}

// Commit computes the commitment for one party's view under the given
// tape key, truncated/expanded to hashLen bytes. The view's read cursor is
// intentionally excluded from the preimage: only the recorded Input and
// Messages are committed to, never replay state.
func Commit[W word.Uint](key tape.Key, v *view.View[W], hashLen int) ([]byte, error) {
	if hashLen < MinHashLen || hashLen > MaxHashLen {
		return nil, &HashLenError{Got: hashLen}
	}
	h, err := blake2b.New(hashLen, key[:])
	if err != nil {
		return nil, fmt.Errorf("commitment: new blake2b: %w", err)
	}
	if _, err := h.Write(v.Input); err != nil {
		return nil, fmt.Errorf("commitment: write input share: %w", err)
	}
	for _, m := range v.Messages {
		if _, err := h.Write(word.Bytes(m)); err != nil {
			return nil, fmt.Errorf("commitment: write message: %w", err)
		}
	}
	return h.Sum(nil), nil
}

// Verify recomputes the commitment and reports whether it matches want.
// Comparison is not required to be constant-time here: both commit and
// want are public values derived from data the verifier already holds (an
// opened key and an opened view), so there is no secret-dependent branch
// to protect against timing analysis.
func Verify[W word.Uint](key tape.Key, v *view.View[W], hashLen int, want []byte) (bool, error) {
	got, err := Commit[W](key, v, hashLen)
	if err != nil {
		return false, err
	}
	if len(got) != len(want) {
		return false, nil
	}
	for i := range got {
		if got[i] != want[i] {
			return false, nil
		}
	}
	return true, nil
}
