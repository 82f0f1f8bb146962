package exercise

import (
	"math/rand/v2"
	"unicode/utf16"
)

// LCG parameters for SeededShuffle. Changing them changes every gap layout
// learners have already seen, so they are fixed.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Hash returns a non-cryptographic 32-bit hash of s.
//
// It is the classic multiply-by-31 rolling hash over UTF-16 code units with
// signed 32-bit wraparound, folded to its absolute value. The result is only
// used as a shuffle seed.
func Hash(s string) uint32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}

// lcg is a linear-congruential generator yielding floats in [0, 1).
type lcg struct {
	state uint64
}

func newLCG(seed uint32) *lcg {
	return &lcg{state: uint64(seed)}
}

func (g *lcg) next() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.state) / lcgModulus
}

// SeededShuffle returns a Fisher-Yates permutation of items driven by an LCG
// seeded with seed. The input slice is not modified. The same items and seed
// always produce the same order.
func SeededShuffle[T any](items []T, seed uint32) []T {
	out := make([]T, len(items))
	copy(out, items)

	g := newLCG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(g.next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Shuffle returns a random permutation of items without touching the input.
// A nil r uses the global math/rand/v2 source. Use it only where a stable
// order is not required.
func Shuffle[T any](items []T, r *rand.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)

	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if r == nil {
		rand.Shuffle(len(out), swap)
	} else {
		r.Shuffle(len(out), swap)
	}
	return out
}
