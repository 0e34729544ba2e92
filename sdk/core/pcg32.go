// Copyright 2025 Zintix Labs
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

package core

import (
	"encoding/binary"
	"math/bits"

	"github.com/zintix-labs/montecarlo/errs"
)

const (
	pcg32Multiplier = 6364136223846793005
	pcg32FloatUnit  = 1.0 / (1 << 32)
	pcg32StateLen   = 16
)

// PCG32 32-bit 輸出的 PCG (XSH-RR)，Float64 只有 32-bit 精度
type PCG32 struct {
	state uint64
	inc   uint64
}

// newPCG32WithSeed 依 PCG 建議流程初始化：先以 stream 走一步，加 seed，再走一步。
func newPCG32WithSeed(seed int64) *PCG32 {
	r := &PCG32{state: 0, inc: (1 << 1) | 1}
	r.next()
	r.state += uint64(seed)
	r.next()
	return r
}

func (r *PCG32) Uint64() uint64 {
	return (uint64(r.next()) << 32) | uint64(r.next())
}

func (r *PCG32) UintN(max uint) uint {
	if max == 0 {
		return 0
	}
	return uint(r.below64(uint64(max)))
}

func (r *PCG32) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	if uint64(max) <= 1<<32-1 {
		return int(r.below32(uint32(max)))
	}
	return int(r.below64(uint64(max)))
}

func (r *PCG32) Float64() float64 {
	return float64(r.next()) * pcg32FloatUnit
}

// Snapshot 以 big-endian 寫出 state|inc
func (r *PCG32) Snapshot() ([]byte, error) {
	b := make([]byte, 0, pcg32StateLen)
	b = binary.BigEndian.AppendUint64(b, r.state)
	b = binary.BigEndian.AppendUint64(b, r.inc)
	return b, nil
}

func (r *PCG32) Restore(data []byte) error {
	if len(data) != pcg32StateLen {
		return errs.Valuef("pcg32 state must be %d bytes, got %d", pcg32StateLen, len(data))
	}
	inc := binary.BigEndian.Uint64(data[8:])
	if inc&1 == 0 {
		return errs.Valuef("pcg32 increment must be odd")
	}
	r.state = binary.BigEndian.Uint64(data[:8])
	r.inc = inc
	return nil
}

func (r *PCG32) next() uint32 {
	old := r.state
	r.state = old*pcg32Multiplier + r.inc
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := uint32(old >> 59)
	return bits.RotateLeft32(xorshifted, -int(rot))
}

func (r *PCG32) below32(bound uint32) uint32 {
	threshold := -bound % bound
	for {
		if v := r.next(); v >= threshold {
			return v % bound
		}
	}
}

func (r *PCG32) below64(bound uint64) uint64 {
	threshold := -bound % bound
	for {
		if v := r.Uint64(); v >= threshold {
			return v % bound
		}
	}
}
