package party

import (
	"crypto/rand"
	"testing"

	"github.com/zkboo-go/zkboo/pkg/tape"
	"github.com/zkboo-go/zkboo/pkg/view"
)

func randomKey(t *testing.T) tape.Key {
	t.Helper()
	var k tape.Key
	if _, err := rand.Read(k[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return k
}

func newProverTrio(t *testing.T, gates int) [3]*Party[uint32] {
	t.Helper()
	var keys [3]tape.Key
	var parties [3]*Party[uint32]
	for i := 0; i < 3; i++ {
		keys[i] = randomKey(t)
	}
	for i := 0; i < 3; i++ {
		tp, err := tape.New[uint32](keys[i], gates)
		if err != nil {
			t.Fatal(err)
		}
		parties[i] = NewProver[uint32](i, []uint32{0}, []byte{byte(i)}, tp)
	}
	return parties
}

// TestAndCallOrderIndependence checks that the three parties' shares of one
// AND gate reconstruct (by XOR) the plaintext AND of the shared bits,
// regardless of which order And is invoked in, as long as each party is
// called exactly once with the correct neighbor.
func TestAndCallOrderIndependence(t *testing.T) {
	a0, a1, a2 := uint32(1), uint32(0), uint32(1) // shares of bit a = 0
	b0, b1, b2 := uint32(1), uint32(1), uint32(0) // shares of bit b = 0

	a := [3]uint32{a0, a1, a2}
	b := [3]uint32{b0, b1, b2}
	run := func(t *testing.T, order []int) uint32 {
		parties := newProverTrio(t, 1)
		var z [3]uint32
		for _, i := range order {
			n := (i + 1) % 3
			zi, err := parties[i].And(a[i], b[i], a[n], b[n], parties[n])
			if err != nil {
				t.Fatal(err)
			}
			z[i] = zi
		}
		return z[0] ^ z[1] ^ z[2]
	}

	wantA := a0 ^ a1 ^ a2
	wantB := b0 ^ b1 ^ b2
	want := wantA & wantB
	for _, order := range [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}} {
		z := run(t, order)
		if z != want {
			t.Errorf("order %v: reconstructed AND = %d, want %d", order, z, want)
		}
	}
}

func TestAndRecordsViewMessage(t *testing.T) {
	parties := newProverTrio(t, 1)
	z, err := parties[0].And(1, 1, 0, 1, parties[1])
	if err != nil {
		t.Fatal(err)
	}
	if parties[0].View.Len() != 1 {
		t.Fatalf("view len = %d, want 1", parties[0].View.Len())
	}
	got, err := parties[0].View.Next()
	if err != nil {
		t.Fatal(err)
	}
	if got != z {
		t.Errorf("recorded message = %d, want %d", got, z)
	}
}

func TestAndWithoutTapeErrors(t *testing.T) {
	full := newProverTrio(t, 1)[0]
	replay := NewVerifierReplay[uint32](1, nil, nil, view.New[uint32](nil))
	if _, err := full.And(1, 1, 0, 0, replay); err == nil {
		t.Fatal("expected error when neighbor has no tape")
	}
	if _, err := replay.And(1, 1, 0, 0, full); err == nil {
		t.Fatal("expected error when caller has no tape")
	}
}

func TestReplayAndConsumesInOrder(t *testing.T) {
	v := view.FromMessages[uint32](nil, []uint32{10, 20})
	p := NewVerifierReplay[uint32](1, nil, nil, v)
	z1, err := p.ReplayAnd()
	if err != nil {
		t.Fatal(err)
	}
	z2, err := p.ReplayAnd()
	if err != nil {
		t.Fatal(err)
	}
	if z1 != 10 || z2 != 20 {
		t.Errorf("got %d, %d want 10, 20", z1, z2)
	}
	if _, err := p.ReplayAnd(); err == nil {
		t.Error("expected error on replay underrun")
	}
}

func TestLinearGatesPureLocal(t *testing.T) {
	p := NewVerifierReplay[uint32](0, nil, nil, view.New[uint32](nil))
	if got := p.Xor(0b1100, 0b1010); got != 0b0110 {
		t.Errorf("Xor = %b, want %b", got, 0b0110)
	}
	rot, err := p.RotL(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if rot != 1<<4 {
		t.Errorf("RotL = %#x, want %#x", rot, uint32(1)<<4)
	}
	if p.View.Len() != 0 {
		t.Error("linear gates must not touch the view")
	}
}
