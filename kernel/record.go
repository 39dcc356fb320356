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

package kernel

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ajroetker/go-collatz/collatz"
	"github.com/ajroetker/go-collatz/limb"
)

// Buffer layout shared with device-side consumers.
//
// Inputs are packed back to back, limbs little-endian (16 bytes per U128).
//
// Each result record is:
//
//	offset 0: steps   uint32
//	offset 4: outcome uint32 (collatz.Outcome)
//	offset 8: max     limbs, little-endian
//	padding to a multiple of recordAlign
//
// For U128 that is 24 bytes of payload in a 32-byte record.
const (
	recordHeader = 8
	recordAlign  = 16
)

// ErrRecordSize is returned when a buffer is not a whole number of records.
var ErrRecordSize = errors.New("kernel: buffer is not a multiple of the record size")

// ErrRecordOutcome is returned when a record carries an unknown outcome.
var ErrRecordOutcome = errors.New("kernel: invalid outcome in record")

// RecordSize returns the size in bytes of one result record for V.
func RecordSize[V limb.Vector[V]]() int {
	n := recordHeader + limb.Size[V]()
	return (n + recordAlign - 1) &^ (recordAlign - 1)
}

// EncodeInputs appends the packed inputs to dst.
func EncodeInputs[V limb.Vector[V]](dst []byte, inputs []V) []byte {
	dst = growBy(dst, len(inputs)*limb.Size[V]())
	for _, v := range inputs {
		dst = limb.AppendBytes(dst, v)
	}
	return dst
}

// DecodeInputs unpacks a buffer written by EncodeInputs.
func DecodeInputs[V limb.Vector[V]](src []byte) ([]V, error) {
	size := limb.Size[V]()
	if len(src)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes, input size %d", ErrRecordSize, len(src), size)
	}
	out := make([]V, 0, len(src)/size)
	for off := 0; off < len(src); off += size {
		v, err := limb.Decode[V](src[off:])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeResults appends one record per result to dst.
func EncodeResults[V limb.Vector[V]](dst []byte, results []collatz.Result[V]) []byte {
	size := RecordSize[V]()
	dst = growBy(dst, len(results)*size)
	for _, r := range results {
		start := len(dst)
		dst = binary.LittleEndian.AppendUint32(dst, r.Steps)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(r.Outcome))
		dst = limb.AppendBytes(dst, r.Max)
		for len(dst)-start < size {
			dst = append(dst, 0)
		}
	}
	return dst
}

// DecodeResults unpacks a buffer written by EncodeResults.
func DecodeResults[V limb.Vector[V]](src []byte) ([]collatz.Result[V], error) {
	size := RecordSize[V]()
	if len(src)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes, record size %d", ErrRecordSize, len(src), size)
	}
	out := make([]collatz.Result[V], 0, len(src)/size)
	for off := 0; off < len(src); off += size {
		rec := src[off : off+size]
		outcome := collatz.Outcome(binary.LittleEndian.Uint32(rec[4:]))
		if outcome > collatz.StepLimitExceeded {
			return nil, fmt.Errorf("%w: record %d has %d", ErrRecordOutcome, off/size, uint32(outcome))
		}
		maxValue, err := limb.Decode[V](rec[recordHeader:])
		if err != nil {
			return nil, err
		}
		out = append(out, collatz.Result[V]{
			Steps:   binary.LittleEndian.Uint32(rec),
			Max:     maxValue,
			Outcome: outcome,
		})
	}
	return out, nil
}

func growBy(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)
	return grown
}
