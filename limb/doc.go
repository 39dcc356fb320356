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

// Package limb provides fixed-width unsigned integers built from 32-bit limbs.
//
// A value is an array of N uint32 limbs, least-significant limb first. All N
// limbs are always present; there is no normalization and no heap allocation.
// Every operation returns a new value instead of mutating its operands.
//
// # Widths
//
// The concrete widths are generated by cmd/limbgen:
//   - U64:  2 limbs
//   - U128: 4 limbs (reference width)
//   - U256: 8 limbs
//
// Code that should work for any width is written against the Vector
// constraint:
//
//	func double[V limb.Vector[V]](v V) (V, bool) {
//	    out := v.Add(v)
//	    return out.Value, out.Overflow
//	}
//
// # Arithmetic
//
// Only add, shift and compare are used. Addition reports the carry out of the
// most-significant limb as an overflow flag; once it is set the value holds
// the wrapped low-order bits and must not be used.
//
//	x := limb.U128{27}
//	y := x.TripleAndIncrement() // {Value: 82, Overflow: false}
//	z := y.Value.Halve()        // 41
//
// The slice kernels (Add, Halve, Greater, ...) operate directly on []uint32
// limbs and are what the width types are built on.
package limb

//go:generate go run ../cmd/limbgen -output zz_widths.go -pkg limb -limbs 2,4,8
