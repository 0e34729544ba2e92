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

// Package core 提供可注入、可重現的亂數來源。
//
// 每一顆骰子持有自己的 *Core，種子由呼叫端顯式給定，
// 不依賴任何行程層級的全域亂數狀態。
package core

import (
	"crypto/rand"
	"math"
	"math/big"
)

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// UintN 回傳 [0,max) 的 uint 亂數，若 max == 0 回傳 0。
	UintN(uint) uint
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

// PRNGFactory 以 seed 建立 PRNG。
//
// 合約：同一實作、同一版本下，New(seed) 必須是決定性的，
// 相同 seed 產生相同的輸出序列。
type PRNGFactory interface {
	New(int64) PRNG
}

// PCG64Factory 預設工廠
type PCG64Factory struct{}

func (f *PCG64Factory) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

// PCG32Factory 32-bit 輸出的替代工廠
type PCG32Factory struct{}

func (f *PCG32Factory) New(seed int64) PRNG {
	return newPCG32WithSeed(seed)
}

func Default() PRNGFactory {
	return &PCG64Factory{}
}

// FactoryByName 依設定檔名稱回傳工廠，空字串視為 pcg64。
func FactoryByName(name string) (PRNGFactory, bool) {
	switch name {
	case "", "pcg64":
		return &PCG64Factory{}, true
	case "pcg32":
		return &PCG32Factory{}, true
	default:
		return nil, false
	}
}

// NewSeed 由加密亂數來源產生一個正的 int64 種子。
func NewSeed() (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}

// Core 封裝 PRNG，並提供常用取樣與工具方法。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// NewDefault 以預設工廠及指定 seed 建立 Core
func NewDefault(seed int64) *Core {
	return New(Default().New(seed))
}
