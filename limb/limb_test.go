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
	"math/big"
	"math/rand"
	"testing"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name   string
		a      U128
		isZero bool
		isOne  bool
		isEven bool
	}{
		{"zero", U128{}, true, false, true},
		{"one", U128{1}, false, true, false},
		{"two", U128{2}, false, false, true},
		{"one in high limb", U128{0, 0, 0, 1}, false, false, true},
		{"one plus high limb", U128{1, 0, 1, 0}, false, false, false},
		{"all ones", Max[U128](), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsZero(); got != tt.isZero {
				t.Errorf("IsZero(%v) = %v, want %v", tt.a, got, tt.isZero)
			}
			if got := tt.a.IsOne(); got != tt.isOne {
				t.Errorf("IsOne(%v) = %v, want %v", tt.a, got, tt.isOne)
			}
			if got := tt.a.IsEven(); got != tt.isEven {
				t.Errorf("IsEven(%v) = %v, want %v", tt.a, got, tt.isEven)
			}
		})
	}
}

func TestGreater(t *testing.T) {
	tests := []struct {
		name string
		a, b U128
		want bool
	}{
		{"equal", U128{5}, U128{5}, false},
		{"low limb", U128{6}, U128{5}, true},
		{"low limb smaller", U128{5}, U128{6}, false},
		{"high limb decides", U128{0, 0, 0, 1}, U128{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0}, true},
		{"high limb smaller", U128{0xFFFFFFFF, 0, 0, 0}, U128{0, 1, 0, 0}, false},
		{"max vs zero", Max[U128](), U128{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Greater(tt.b); got != tt.want {
				t.Errorf("%v.Greater(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHalve(t *testing.T) {
	tests := []struct {
		name string
		a    U128
		want U128
	}{
		{"zero", U128{}, U128{}},
		{"one", U128{1}, U128{}},
		{"small", U128{10}, U128{5}},
		{"carry across limb", U128{0, 1}, U128{0x80000000}},
		{"carry every limb", U128{1, 1, 1, 1}, U128{0x80000000, 0x80000000, 0x80000000, 0}},
		{"top bit", U128{0, 0, 0, 0x80000000}, U128{0, 0, 0, 0x40000000}},
		{"max", Max[U128](), U128{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0x7FFFFFFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Halve(); got != tt.want {
				t.Errorf("Halve(%v) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestHalveInPlace(t *testing.T) {
	a := []uint32{1, 1, 1, 1}
	Halve(a, a)
	want := []uint32{0x80000000, 0x80000000, 0x80000000, 0}
	if !Equal(a, want) {
		t.Errorf("Halve in place = %v, want %v", a, want)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     U128
		want     U128
		overflow bool
	}{
		{"small", U128{2}, U128{3}, U128{5}, false},
		{"limb carry", U128{0xFFFFFFFF}, U128{1}, U128{0, 1}, false},
		{"ripple carry", U128{0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}, U128{1}, U128{0, 0, 0, 1}, false},
		{"carry plus carry-in", U128{0xFFFFFFFF, 0xFFFFFFFF}, U128{0xFFFFFFFF, 0xFFFFFFFF}, U128{0xFFFFFFFE, 0xFFFFFFFF, 1}, false},
		{"overflow wraps", Max[U128](), U128{1}, U128{}, true},
		{"overflow top limb", U128{0, 0, 0, 0x80000000}, U128{0, 0, 0, 0x80000000}, U128{}, true},
		{"max plus max", Max[U128](), Max[U128](), U128{0xFFFFFFFE, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Add(tt.b)
			if got.Overflow != tt.overflow {
				t.Errorf("Add(%v, %v).Overflow = %v, want %v", tt.a, tt.b, got.Overflow, tt.overflow)
			}
			if got.Value != tt.want {
				t.Errorf("Add(%v, %v).Value = %v, want %v", tt.a, tt.b, got.Value, tt.want)
			}
		})
	}
}

func TestTripleAndIncrement(t *testing.T) {
	tests := []struct {
		name     string
		a        U128
		want     U128
		overflow bool
	}{
		{"zero", U128{}, U128{1}, false},
		{"27", U128{27}, U128{82}, false},
		{"limb boundary", U128{0x55555555}, U128{0x00000000, 1}, false},
		{"double overflows", U128{0, 0, 0, 0x80000000}, U128{}, true},
		{"triple overflows", U128{0, 0, 0, 0x60000000}, U128{}, true},
		{"max", Max[U128](), U128{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.TripleAndIncrement()
			if got.Overflow != tt.overflow {
				t.Errorf("TripleAndIncrement(%v).Overflow = %v, want %v", tt.a, got.Overflow, tt.overflow)
			}
			if !tt.overflow && got.Value != tt.want {
				t.Errorf("TripleAndIncrement(%v).Value = %v, want %v", tt.a, got.Value, tt.want)
			}
		})
	}
}

func TestTripleAndIncrementCarryOut(t *testing.T) {
	// 3a fits exactly in 128 bits only when the increment carries out.
	// (2^128 - 1) / 3 = 0x5555...5555, so 3a = 2^128 - 1 and 3a+1 wraps.
	a := U128{0x55555555, 0x55555555, 0x55555555, 0x55555555}
	got := a.TripleAndIncrement()
	if !got.Overflow {
		t.Fatalf("TripleAndIncrement(%v) did not overflow", a)
	}
	if !got.Value.IsZero() {
		t.Errorf("wrapped value = %v, want 0", got.Value)
	}
}

func randU128(r *rand.Rand) U128 {
	var v U128
	for i := range v {
		// Bias some limbs to the extremes to exercise carries.
		switch r.Intn(4) {
		case 0:
			v[i] = 0
		case 1:
			v[i] = 0xFFFFFFFF
		default:
			v[i] = r.Uint32()
		}
	}
	return v
}

func TestAddMatchesBig(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	limit := new(big.Int).Lsh(big.NewInt(1), 128)

	for range 5000 {
		a, b := randU128(r), randU128(r)
		sum := new(big.Int).Add(ToBig(a), ToBig(b))
		wantOverflow := sum.Cmp(limit) >= 0

		got := a.Add(b)
		if got.Overflow != wantOverflow {
			t.Fatalf("Add(%v, %v).Overflow = %v, want %v", a, b, got.Overflow, wantOverflow)
		}
		want := new(big.Int).Mod(sum, limit)
		if ToBig(got.Value).Cmp(want) != 0 {
			t.Fatalf("Add(%v, %v).Value = %v, want %v", a, b, got.Value, want)
		}
	}
}

func TestTripleAndIncrementMatchesBig(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	limit := new(big.Int).Lsh(big.NewInt(1), 128)

	for range 5000 {
		a := randU128(r)
		want := new(big.Int).Mul(ToBig(a), big.NewInt(3))
		want.Add(want, big.NewInt(1))

		got := a.TripleAndIncrement()
		if got.Overflow != (want.Cmp(limit) >= 0) {
			t.Fatalf("TripleAndIncrement(%v).Overflow = %v, want %v", a, got.Overflow, !got.Overflow)
		}
		if !got.Overflow && ToBig(got.Value).Cmp(want) != 0 {
			t.Fatalf("TripleAndIncrement(%v) = %v, want %v", a, got.Value, want)
		}
	}
}

func TestHalveRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for range 5000 {
		a := randU128(r)
		a[0] &^= 1 // even

		double := a.Add(a)
		if double.Overflow {
			continue
		}
		if got := double.Value.Halve(); got != a {
			t.Fatalf("Halve(%v + %v) = %v, want %v", a, a, got, a)
		}
		want := new(big.Int).Rsh(ToBig(a), 1)
		if got := ToBig(a.Halve()); got.Cmp(want) != 0 {
			t.Fatalf("Halve(%v) = %v, want %v", a, got, want)
		}
	}
}

func TestOrderMatchesBig(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for range 5000 {
		a, b := randU128(r), randU128(r)
		if r.Intn(8) == 0 {
			b = a
		}
		cmp := ToBig(a).Cmp(ToBig(b))

		if got := a.Greater(b); got != (cmp > 0) {
			t.Fatalf("%v.Greater(%v) = %v, big.Cmp = %d", a, b, got, cmp)
		}
		if got := a.Equal(b); got != (cmp == 0) {
			t.Fatalf("%v.Equal(%v) = %v, big.Cmp = %d", a, b, got, cmp)
		}
		// Strict order: never both directions, and exactly one of >, <, == holds.
		gt, lt, eq := a.Greater(b), b.Greater(a), a.Equal(b)
		n := 0
		for _, x := range []bool{gt, lt, eq} {
			if x {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("trichotomy violated for %v, %v: gt=%v lt=%v eq=%v", a, b, gt, lt, eq)
		}
		if !a.Equal(a) || a.Greater(a) {
			t.Fatalf("reflexivity violated for %v", a)
		}
	}
}

func TestWidthsAgree(t *testing.T) {
	// The same small computation must give the same answer at every width.
	for _, x := range []uint64{0, 1, 2, 27, 0x7FFFFFFF, 0xFFFFFFFF, 1 << 40} {
		a64 := FromUint64[U64](x).TripleAndIncrement()
		a128 := FromUint64[U128](x).TripleAndIncrement()
		a256 := FromUint64[U256](x).TripleAndIncrement()

		if a64.Overflow || a128.Overflow || a256.Overflow {
			t.Fatalf("3*%d+1 overflowed", x)
		}
		s64, s128, s256 := a64.Value.String(), a128.Value.String(), a256.Value.String()
		if s64 != s128 || s128 != s256 {
			t.Errorf("3*%d+1: U64=%s U128=%s U256=%s", x, s64, s128, s256)
		}
	}
}

func TestU64Overflow(t *testing.T) {
	// 2^63 doubles out of a 64-bit vector.
	a := FromUint64[U64](1 << 63)
	if got := a.TripleAndIncrement(); !got.Overflow {
		t.Errorf("TripleAndIncrement(2^63) in U64 did not overflow: %v", got.Value)
	}
	if got := FromUint64[U128](1 << 63).TripleAndIncrement(); got.Overflow {
		t.Errorf("TripleAndIncrement(2^63) in U128 overflowed")
	}
}
