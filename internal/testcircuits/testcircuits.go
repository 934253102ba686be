// Package testcircuits provides small, hand-verifiable Circuit
// implementations used only by tests: they exercise zero-AND-gate,
// single-AND-gate, and chained-AND-gate evaluation paths without pulling
// in a real statement like a hash preimage.
package testcircuits

import (
	"fmt"

	"github.com/zkboo-go/zkboo/pkg/party"
)

type uintW interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Identity passes its single input share straight through a linear gate,
// visiting zero multiplication gates. It exercises the degenerate
// zero-AND-gate case: an all-zero-length tape for every party.
type Identity[W uintW] struct{}

func (Identity[W]) NumMulGates() int { return 0 }
func (Identity[W]) OutputLen() int   { return 1 }

func (Identity[W]) Compute23Decomposition(p0, p1, p2 *party.Party[W]) (out0, out1, out2 []W, err error) {
	var zero W
	return []W{p0.XorConst(p0.Share[0], zero)},
		[]W{p1.XorConst(p1.Share[0], zero)},
		[]W{p2.XorConst(p2.Share[0], zero)},
		nil
}

func (Identity[W]) SimulateTwoParties(p, pNext *party.Party[W]) (outP, outPNext []W, err error) {
	var zero W
	return []W{p.XorConst(p.Share[0], zero)}, []W{pNext.XorConst(pNext.Share[0], zero)}, nil
}

// XorConst computes x XOR K for a fixed public constant K, visiting zero
// multiplication gates. The constant is folded into party 0's share only,
// so the three output shares still XOR to the plaintext result.
type XorConst[W uintW] struct{ K W }

func (XorConst[W]) NumMulGates() int { return 0 }
func (XorConst[W]) OutputLen() int   { return 1 }

func (c XorConst[W]) Compute23Decomposition(p0, p1, p2 *party.Party[W]) (out0, out1, out2 []W, err error) {
	var zero W
	return []W{p0.XorConst(p0.Share[0], c.K)},
		[]W{p1.XorConst(p1.Share[0], zero)},
		[]W{p2.XorConst(p2.Share[0], zero)},
		nil
}

func (c XorConst[W]) SimulateTwoParties(p, pNext *party.Party[W]) (outP, outPNext []W, err error) {
	apply := func(pp *party.Party[W]) W {
		if pp.Index == 0 {
			return pp.XorConst(pp.Share[0], c.K)
		}
		var zero W
		return pp.XorConst(pp.Share[0], zero)
	}
	return []W{apply(p)}, []W{apply(pNext)}, nil
}

// SingleAND computes the bitwise AND of its two input shares, visiting
// exactly one multiplication gate. Each party's Share must hold [a, b].
type SingleAND[W uintW] struct{}

func (SingleAND[W]) NumMulGates() int { return 1 }
func (SingleAND[W]) OutputLen() int   { return 1 }

func (SingleAND[W]) Compute23Decomposition(p0, p1, p2 *party.Party[W]) (out0, out1, out2 []W, err error) {
	if len(p0.Share) < 2 || len(p1.Share) < 2 || len(p2.Share) < 2 {
		return nil, nil, nil, fmt.Errorf("testcircuits: SingleAND needs a 2-word share per party")
	}
	z0, err := p0.And(p0.Share[0], p0.Share[1], p1.Share[0], p1.Share[1], p1)
	if err != nil {
		return nil, nil, nil, err
	}
	z1, err := p1.And(p1.Share[0], p1.Share[1], p2.Share[0], p2.Share[1], p2)
	if err != nil {
		return nil, nil, nil, err
	}
	z2, err := p2.And(p2.Share[0], p2.Share[1], p0.Share[0], p0.Share[1], p0)
	if err != nil {
		return nil, nil, nil, err
	}
	return []W{z0}, []W{z1}, []W{z2}, nil
}

func (SingleAND[W]) SimulateTwoParties(p, pNext *party.Party[W]) (outP, outPNext []W, err error) {
	if len(p.Share) < 2 || len(pNext.Share) < 2 {
		return nil, nil, fmt.Errorf("testcircuits: SingleAND needs a 2-word share per party")
	}
	zP, err := p.And(p.Share[0], p.Share[1], pNext.Share[0], pNext.Share[1], pNext)
	if err != nil {
		return nil, nil, err
	}
	zNext, err := pNext.ReplayAnd()
	if err != nil {
		return nil, nil, err
	}
	return []W{zP}, []W{zNext}, nil
}

// MulChain computes ((a AND b) AND c), visiting two multiplication gates
// in sequence. Each party's Share must hold [a, b, c].
type MulChain[W uintW] struct{}

func (MulChain[W]) NumMulGates() int { return 2 }
func (MulChain[W]) OutputLen() int   { return 1 }

func (MulChain[W]) Compute23Decomposition(p0, p1, p2 *party.Party[W]) (out0, out1, out2 []W, err error) {
	for _, p := range []*party.Party[W]{p0, p1, p2} {
		if len(p.Share) < 3 {
			return nil, nil, nil, fmt.Errorf("testcircuits: MulChain needs a 3-word share per party")
		}
	}
	g1_0, err := p0.And(p0.Share[0], p0.Share[1], p1.Share[0], p1.Share[1], p1)
	if err != nil {
		return nil, nil, nil, err
	}
	g1_1, err := p1.And(p1.Share[0], p1.Share[1], p2.Share[0], p2.Share[1], p2)
	if err != nil {
		return nil, nil, nil, err
	}
	g1_2, err := p2.And(p2.Share[0], p2.Share[1], p0.Share[0], p0.Share[1], p0)
	if err != nil {
		return nil, nil, nil, err
	}

	g2_0, err := p0.And(g1_0, p0.Share[2], g1_1, p1.Share[2], p1)
	if err != nil {
		return nil, nil, nil, err
	}
	g2_1, err := p1.And(g1_1, p1.Share[2], g1_2, p2.Share[2], p2)
	if err != nil {
		return nil, nil, nil, err
	}
	g2_2, err := p2.And(g1_2, p2.Share[2], g1_0, p0.Share[2], p0)
	if err != nil {
		return nil, nil, nil, err
	}

	return []W{g2_0}, []W{g2_1}, []W{g2_2}, nil
}

func (MulChain[W]) SimulateTwoParties(p, pNext *party.Party[W]) (outP, outPNext []W, err error) {
	if len(p.Share) < 3 {
		return nil, nil, fmt.Errorf("testcircuits: MulChain needs a 3-word share per party")
	}
	g1P, err := p.And(p.Share[0], p.Share[1], pNext.Share[0], pNext.Share[1], pNext)
	if err != nil {
		return nil, nil, err
	}
	g1Next, err := pNext.ReplayAnd()
	if err != nil {
		return nil, nil, err
	}

	g2P, err := p.And(g1P, p.Share[2], g1Next, pNext.Share[2], pNext)
	if err != nil {
		return nil, nil, err
	}
	g2Next, err := pNext.ReplayAnd()
	if err != nil {
		return nil, nil, err
	}

	return []W{g2P}, []W{g2Next}, nil
}
