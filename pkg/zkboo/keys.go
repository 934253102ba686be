package zkboo

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/zkboo-go/zkboo/pkg/tape"
)

// KeyManager draws fresh tape keys for every party in every repetition.
// It defaults to crypto/rand.Reader but accepts an injected io.Reader so
// tests can run against a deterministic source, mirroring the same
// overridable-randomness pattern the teacher codebase uses for its own
// session key generation.
type KeyManager struct {
	Random io.Reader
}

// NewKeyManager returns a KeyManager drawing from crypto/rand.Reader.
func NewKeyManager() *KeyManager {
	return &KeyManager{Random: rand.Reader}
}

// SetRandom overrides the randomness source, for deterministic testing.
func (km *KeyManager) SetRandom(r io.Reader) {
	km.Random = r
}

// Draw generates repetitions*3 independent tape keys, one triple per
// repetition, in party order.
func (km *KeyManager) Draw(repetitions int) ([][3]tape.Key, error) {
	if repetitions < 0 {
		return nil, fmt.Errorf("zkboo: negative repetition count %d", repetitions)
	}
	r := km.Random
	if r == nil {
		r = rand.Reader
	}
	keys := make([][3]tape.Key, repetitions)
	for i := 0; i < repetitions; i++ {
		for j := 0; j < 3; j++ {
			if _, err := io.ReadFull(r, keys[i][j][:]); err != nil {
				return nil, fmt.Errorf("zkboo: draw key for repetition %d party %d: %w", i, j, err)
			}
		}
	}
	return keys, nil
}
