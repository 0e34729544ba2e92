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

package montecarlo

const mask63 = uint64(1<<63) - 1

// seedMaker 由一個初始種子衍生出每顆骰子的種子
type seedMaker struct {
	state uint64 // always in [0, 2^63)
}

func newSeedMaker(seed int64) *seedMaker {
	return &seedMaker{state: uint64(seed) & mask63}
}

// state 走全週期（不重複），再用可逆 mix63 打散
func (s *seedMaker) next() int64 {
	s.state = (s.state*6364136223846793005 + 1442695040888963407) & mask63 // full-period LCG mod 2^63
	return int64(mix63(s.state))                                            // 一定非負
}

// mix63：只用「可逆」的 bit 操作 + 乘奇數（mod 2^63）
func mix63(x uint64) uint64 {
	x &= mask63
	x ^= x >> 30
	x = (x * 0xBF58476D1CE4E5B9) & mask63 // 乘奇數 ⇒ mod 2^63 可逆
	x ^= x >> 27
	x = (x * 0x94D049BB133111EB) & mask63
	x ^= x >> 31
	return x & mask63
}

