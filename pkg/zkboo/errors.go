package zkboo

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Prove and Verify. Callers should use
// errors.Is against these, since concrete errors are always wrapped with
// additional context via fmt.Errorf's %w verb.
var (
	// ErrInvalidParams is returned when a Params value is out of range
	// (non-positive soundness bits, or a hash length BLAKE2b cannot
	// produce).
	ErrInvalidParams = errors.New("zkboo: invalid params")

	// ErrOutputMismatch is returned by Prove when the witness does not
	// satisfy the circuit against the claimed public output.
	ErrOutputMismatch = errors.New("zkboo: witness does not reconstruct claimed output")

	// ErrSerialization is returned by Decode when the wire bytes are
	// malformed, truncated, or carry trailing garbage.
	ErrSerialization = errors.New("zkboo: malformed proof encoding")

	// ErrRepetitionCount is returned by Verify when any of the proof's
	// per-repetition slices disagrees with the repetition count Params
	// demands.
	ErrRepetitionCount = errors.New("zkboo: repetition count does not match params")

	// ErrOutputReconstruction is returned by Verify when an opened
	// repetition cannot be replayed: a view runs short of recorded
	// messages, a share fails to decode, or the circuit reports a
	// structural inconsistency.
	ErrOutputReconstruction = errors.New("zkboo: output reconstruction failed")

	// ErrFiatShamirMismatch is returned by Verify when the re-derived
	// challenge trits differ from the trits claimed in the proof. In the
	// non-interactive flow this is the dominant failure mode: a wrong
	// witness, a tampered view, or a tampered commitment all perturb the
	// reconstructed transcript and surface here.
	ErrFiatShamirMismatch = errors.New("zkboo: re-derived challenge does not match claimed challenge")
)

// HashLenError reports a commitment whose byte length disagrees with the
// hash length the proof's parameters declare.
type HashLenError struct {
	Expected int
	Got      int
}

func (e *HashLenError) Error() string {
	return fmt.Sprintf("zkboo: commitment length %d, want %d", e.Got, e.Expected)
}
