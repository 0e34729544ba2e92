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

// Package sampler 提供有放回的加權抽樣演算法。
//
// 本檔案 (aliastable.go) 實作 Vose's Alias Method（浮點版）。
//
// 演算法原理：
//   - 將任意離散分佈轉換為 n 個等寬槽位。
//   - 每個槽位只存放「自己」和「別名 (Alias)」兩個選項。
//   - 抽樣時先選槽位，再以一次均勻亂數決定是自己還是別名。
//
// 特性：
//   - 建表時間：O(N)
//   - 抽樣時間：O(1)，固定 1 次 IntN + 1 次 Float64
//
// 骰子權重是任意非負實數，所以這裡使用浮點 scaling（p_i * n）。
package sampler

import "github.com/zintix-labs/montecarlo/sdk/core"

// AliasTable Vose Alias Method 抽樣表
//
// - Prob: 每個槽位留給自己的機率，落在 [0,1]
// - Aliases: 槽位的別名索引
// - Size: 槽位數量
type AliasTable struct {
	Prob    []float64
	Aliases []int
	Size    int
}

// BuildAliasTable 根據輸入權重建立 AliasTable。
//
//   - 權重不需正規化，可為零（永遠不會被抽中），但全部為零會 panic。
//   - 負權重、NaN、Inf 會 panic。
//   - 空權重回傳空表，Pick 回傳 -1。
func BuildAliasTable[T Numbers](weights []T) *AliasTable {
	n := len(weights)
	if n == 0 {
		return &AliasTable{Prob: []float64{}, Aliases: []int{}, Size: 0}
	}
	w, total := toFloat(weights, "AliasTable")

	prob := make([]float64, n)
	aliases := make([]int, n)
	small := make([]int, 0, n)
	large := make([]int, 0, n)

	for i, v := range w {
		prob[i] = v * float64(n) / total // scaling：平均值正好是 1
		aliases[i] = i
		if prob[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		aliases[s] = l
		prob[l] = prob[l] + prob[s] - 1 // 把 s 缺的部分由 l 補上
		if prob[l] < 1 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}
	// 浮點誤差殘留：剩下的槽位都視為滿格
	for _, i := range large {
		prob[i] = 1
	}
	for _, i := range small {
		prob[i] = 1
	}

	return &AliasTable{Prob: prob, Aliases: aliases, Size: n}
}

// Pick 從 AliasTable 中抽取一個索引，若表為空則回傳 -1。
func (at *AliasTable) Pick(c *core.Core) int {
	if at.Size == 0 {
		return -1
	}
	idx := c.IntN(at.Size)
	if c.Float64() < at.Prob[idx] {
		return idx
	}
	return at.Aliases[idx]
}
