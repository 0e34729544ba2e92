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

package sampler

import (
	"sort"

	"github.com/zintix-labs/montecarlo/sdk/core"
)

// CDF 累積分佈表：抽一個 [0,total) 的均勻數，二分搜尋落點。
//
// 建表 O(N)、抽樣 O(log N)。結果與 numpy 的 choice(p=...) 同一種「反函數」作法，
// 少量面數時與 AliasTable 效能差異可忽略。
type CDF struct {
	Cum   []float64
	Total float64
}

// BuildCDF 規則同 BuildAliasTable：負值/NaN/Inf/全零 panic，空權重回傳空表。
func BuildCDF[T Numbers](weights []T) *CDF {
	if len(weights) == 0 {
		return &CDF{Cum: []float64{}}
	}
	w, _ := toFloat(weights, "CDF")
	cum := make([]float64, len(w))
	acc := 0.0
	for i, v := range w {
		acc += v
		cum[i] = acc
	}
	return &CDF{Cum: cum, Total: acc}
}

// Pick 回傳第一個 Cum[i] > u 的索引；零權重項目的 Cum 與前一項相等，永遠不會命中。
func (cd *CDF) Pick(c *core.Core) int {
	n := len(cd.Cum)
	if n == 0 {
		return -1
	}
	u := c.Float64() * cd.Total
	i := sort.Search(n, func(i int) bool { return cd.Cum[i] > u })
	if i == n { // u 因捨入落在 Total 上
		i = n - 1
		for i > 0 && cd.Cum[i] == cd.Cum[i-1] {
			i--
		}
	}
	return i
}
