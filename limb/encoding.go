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
)

// ErrShortBuffer is returned by Decode when src holds fewer bytes than the
// vector width.
var ErrShortBuffer = errors.New("limb: short buffer")

// Size returns the encoded size of V in bytes (4 per limb).
func Size[V Vector[V]]() int {
	var v V
	return 4 * v.Limbs()
}

// AppendBytes appends the limbs of v to dst, limb 0 first, each limb as a
// little-endian uint32. A U128 encodes to 16 bytes.
func AppendBytes[V Vector[V]](dst []byte, v V) []byte {
	for i := 0; i < v.Limbs(); i++ {
		dst = binary.LittleEndian.AppendUint32(dst, v.Limb(i))
	}
	return dst
}

// Decode reads a vector written by AppendBytes from the front of src.
func Decode[V Vector[V]](src []byte) (V, error) {
	var v V
	if len(src) < Size[V]() {
		return v, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(src), Size[V]())
	}
	for i := 0; i < v.Limbs(); i++ {
		v = v.WithLimb(i, binary.LittleEndian.Uint32(src[4*i:]))
	}
	return v, nil
}
