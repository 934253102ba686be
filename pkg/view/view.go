// Package view implements the per-party transcript of one repetition: a
// fixed input share plus the ordered multiplication-gate output messages a
// party contributed, and the read cursor the verifier uses to replay those
// messages during re-simulation.
//
// The message log and the cursor are deliberately kept in the same struct
// but serve two different roles — a written record (fed into the
// commitment preimage) and a replay source (consumed only by the
// verifier) — the cursor itself must never enter the commitment preimage.
package view

import (
	"fmt"

	"github.com/zkboo-go/zkboo/pkg/word"
)

// View is one party's transcript for a single repetition.
type View[W word.Uint] struct {
	Input    []byte
	Messages []W
	cursor   int
}

// New creates an empty view over the given input share bytes.
func New[W word.Uint](input []byte) *View[W] {
	in := make([]byte, len(input))
	copy(in, input)
	return &View[W]{Input: in}
}

// FromMessages reconstructs a view already carrying recorded messages, as
// done when decoding an opened view from a proof. The read cursor starts
// at 0.
func FromMessages[W word.Uint](input []byte, messages []W) *View[W] {
	v := New[W](input)
	v.Messages = append(v.Messages, messages...)
	return v
}

// Append records the next multiplication-gate output message in canonical
// gate-visit order.
func (v *View[W]) Append(m W) {
	v.Messages = append(v.Messages, m)
}

// Len returns the number of recorded messages.
func (v *View[W]) Len() int { return len(v.Messages) }

// Cursor returns the number of messages already consumed by Next.
func (v *View[W]) Cursor() int { return v.cursor }

// Next consumes and returns the next message in insertion order, advancing
// the cursor. It returns an error rather than panicking because, unlike a
// tape, a view's length is attacker-controlled (it arrives inside a
// proof) — running out here is a legitimate, verifier-reachable
// reconstruction failure, not a programmer bug.
func (v *View[W]) Next() (W, error) {
	if v.cursor >= len(v.Messages) {
		return 0, fmt.Errorf("view: replay ran short: consumed %d of %d messages", v.cursor, len(v.Messages))
	}
	m := v.Messages[v.cursor]
	v.cursor++
	return m, nil
}

// Reset rewinds the read cursor to 0, without discarding recorded
// messages. Used when the same view must be replayed more than once.
func (v *View[W]) Reset() { v.cursor = 0 }
