// Copyright 2025 go-collatz Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package limb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

var (
	// ErrNegative is returned when converting a negative number.
	ErrNegative = errors.New("limb: negative value")

	// ErrRange is returned when a number does not fit the vector width.
	ErrRange = errors.New("limb: value out of range")

	// ErrSyntax is returned by Parse for malformed input.
	ErrSyntax = errors.New("limb: invalid syntax")
)

// AddOutcome is the result of an overflow-checked addition.
//
// Overflow is set if and only if the mathematical result exceeds the width.
// When set, Value holds the wrapped low-order bits and callers must only look
// at Overflow.
type AddOutcome[V any] struct {
	Value    V
	Overflow bool
}

// Vector is the constraint satisfied by every fixed-width limb type.
// V is the implementing type itself, e.g. Vector[U128].
type Vector[V any] interface {
	comparable

	// Width returns the width in bits (32 * Limbs()).
	Width() int

	// Limbs returns the number of 32-bit limbs.
	Limbs() int

	// Limb returns limb i, 0 being least significant.
	Limb(i int) uint32

	// WithLimb returns a copy with limb i replaced by x.
	WithLimb(i int, x uint32) V

	IsZero() bool
	IsOne() bool
	IsEven() bool
	Equal(b V) bool
	Greater(b V) bool

	// Halve returns the value shifted right by one bit.
	Halve() V

	// Add returns the sum and whether it overflowed the width.
	Add(b V) AddOutcome[V]

	// TripleAndIncrement returns 3v+1 computed as two checked adds and an
	// increment.
	TripleAndIncrement() AddOutcome[V]
}

// Zero returns the all-zero vector.
func Zero[V Vector[V]]() V {
	var v V
	return v
}

// One returns the vector with only the least-significant bit set.
func One[V Vector[V]]() V {
	var v V
	return v.WithLimb(0, 1)
}

// Max returns the largest representable value (all limbs 0xFFFFFFFF).
func Max[V Vector[V]]() V {
	var v V
	for i := 0; i < v.Limbs(); i++ {
		v = v.WithLimb(i, math.MaxUint32)
	}
	return v
}

// FromUint64 converts x. Every generated width holds at least 64 bits.
func FromUint64[V Vector[V]](x uint64) V {
	var v V
	v = v.WithLimb(0, uint32(x))
	return v.WithLimb(1, uint32(x>>32))
}

// FromBig converts a non-negative big.Int that fits the width of V.
func FromBig[V Vector[V]](x *big.Int) (V, error) {
	var v V
	if x.Sign() < 0 {
		return v, ErrNegative
	}
	if x.BitLen() > v.Width() {
		return v, fmt.Errorf("%w: %d bits do not fit in %d", ErrRange, x.BitLen(), v.Width())
	}
	n := v.Limbs()
	buf := x.FillBytes(make([]byte, 4*n))
	for i := range n {
		// buf is big-endian, so limb i is counted from the end.
		off := 4 * (n - 1 - i)
		v = v.WithLimb(i, binary.BigEndian.Uint32(buf[off:]))
	}
	return v, nil
}

// ToBig converts v to a big.Int.
func ToBig[V Vector[V]](v V) *big.Int {
	n := v.Limbs()
	buf := make([]byte, 4*n)
	for i := range n {
		binary.BigEndian.PutUint32(buf[4*(n-1-i):], v.Limb(i))
	}
	return new(big.Int).SetBytes(buf)
}

// Parse reads a decimal or 0x-prefixed hexadecimal string. Underscores are
// accepted as digit separators.
func Parse[V Vector[V]](s string) (V, error) {
	var zero V
	s = strings.TrimSpace(s)
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	v, err := FromBig[V](x)
	if err != nil {
		return zero, fmt.Errorf("parse %q: %w", s, err)
	}
	return v, nil
}

// Format returns the decimal representation of v.
func Format[V Vector[V]](v V) string {
	allZeroHigh := true
	for i := 2; i < v.Limbs(); i++ {
		if v.Limb(i) != 0 {
			allZeroHigh = false
			break
		}
	}
	if allZeroHigh {
		return fmt.Sprint(uint64(v.Limb(1))<<32 | uint64(v.Limb(0)))
	}
	return ToBig(v).String()
}
