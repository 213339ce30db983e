package zodiac

import (
	"math"
	"unicode/utf16"
)

// Hash derives a 32-bit signed seed from text using the same accumulation
// the web client shipped with: h = (h << 5) - h + codeUnit, truncated to
// 32 bits on every step. Scores stored by existing installs depend on this
// exact sequence, so the hash iterates UTF-16 code units, not runes.
func Hash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	return h
}

// Source is a deterministic pseudo-random source over [0, 1). The same
// seed always yields the same sequence. It is not a statistical RNG; it
// exists to make per-day scores reproducible.
type Source struct {
	seed float64
}

// NewSource returns a Source positioned at seed.
func NewSource(seed int32) *Source {
	return &Source{seed: float64(seed)}
}

// Next returns the next value in [0, 1) and advances the source.
func (s *Source) Next() float64 {
	x := math.Sin(s.seed) * 10000
	s.seed++
	return x - math.Floor(x)
}

// Pos reports the current seed position without advancing. Consumers that
// derive offset sub-seeds (weekly component scores) read it mid-sequence,
// so the position after earlier draws is part of the output contract.
func (s *Source) Pos() float64 {
	return s.seed
}

// At evaluates the sine hash at an absolute seed position without touching
// any source state.
func At(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}
