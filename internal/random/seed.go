// Package random provides seed generation and RNG construction helpers.
//
// It uses crypto/rand to generate high-entropy seeds suitable for
// initializing pseudo-random number generators in deterministic systems:
// a match seeded with the same value replays identically.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a PRNG seeded with the given value. A zero seed asks for a
// fresh crypto-random one; if entropy is unavailable it falls back to a
// fixed seed rather than failing (callers wanting the error use NewSeed).
func New(seed int64) *rand.Rand {
	if seed == 0 {
		s, err := NewSeed()
		if err == nil {
			seed = s
		} else {
			seed = 1
		}
	}
	return rand.New(rand.NewSource(seed))
}
