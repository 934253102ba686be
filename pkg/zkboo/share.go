package zkboo

import (
	"fmt"
	"io"

	"github.com/zkboo-go/zkboo/pkg/word"
)

// ShareWitness splits a witness into a 3-out-of-3 XOR secret sharing:
// share0 and share1 are drawn fresh from rng, and share2 is whatever
// value makes share0 xor share1 xor share2 equal the witness, word by
// word. Any one or two shares reveal nothing about the witness; all
// three reconstruct it exactly.
func ShareWitness[W word.Uint](witness []W, rng io.Reader) (share0, share1, share2 []W, err error) {
	n := len(witness)
	share0 = make([]W, n)
	share1 = make([]W, n)
	share2 = make([]W, n)

	bw := word.ByteWidth[W]()
	buf := make([]byte, n*bw)

	if n > 0 {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, nil, nil, fmt.Errorf("zkboo: draw share0 randomness: %w", err)
		}
		for i := 0; i < n; i++ {
			w, err := word.FromBytes[W](buf[i*bw : (i+1)*bw])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("zkboo: decode share0 word %d: %w", i, err)
			}
			share0[i] = w
		}
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, nil, nil, fmt.Errorf("zkboo: draw share1 randomness: %w", err)
		}
		for i := 0; i < n; i++ {
			w, err := word.FromBytes[W](buf[i*bw : (i+1)*bw])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("zkboo: decode share1 word %d: %w", i, err)
			}
			share1[i] = w
		}
	}

	for i := 0; i < n; i++ {
		share2[i] = word.Xor(word.Xor(witness[i], share0[i]), share1[i])
	}

	return share0, share1, share2, nil
}
