package cache

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Pair is a composite key of two comparable parts.
type Pair[A, B comparable] struct {
	First  A
	Second B
}

// PairOf builds a Pair.
func PairOf[A, B comparable](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

// Triple is a composite key of three comparable parts.
type Triple[A, B, C comparable] struct {
	First  A
	Second B
	Third  C
}

// Hasher folds typed argument values into a 64-bit key.
// The zero value is not usable; call NewHasher.
//
// Contract:
//   - Determinism: writing the same values in the same order yields the
//     same sum across processes.
//   - Collisions: distinct inputs may collide; use Hasher only where a rare
//     stale answer is acceptable, otherwise key by Pair or Triple.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewHasher returns a fresh hasher.
func NewHasher() *Hasher {
	return &Hasher{d: xxhash.New()}
}

// Reset clears the hasher for reuse.
func (h *Hasher) Reset() *Hasher {
	h.d.Reset()
	return h
}

// Int writes a signed integer.
func (h *Hasher) Int(v int64) *Hasher {
	binary.LittleEndian.PutUint64(h.buf[:], uint64(v))
	_, _ = h.d.Write(h.buf[:])
	return h
}

// Float writes a float64 by its bit pattern.
func (h *Hasher) Float(v float64) *Hasher {
	binary.LittleEndian.PutUint64(h.buf[:], math.Float64bits(v))
	_, _ = h.d.Write(h.buf[:])
	return h
}

// Bool writes a boolean.
func (h *Hasher) Bool(v bool) *Hasher {
	if v {
		return h.Int(1)
	}
	return h.Int(0)
}

// String writes a length-prefixed string.
func (h *Hasher) String(v string) *Hasher {
	h.Int(int64(len(v)))
	_, _ = h.d.WriteString(v)
	return h
}

// Sum64 returns the hash of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}
