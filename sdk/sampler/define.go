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
// 本檔案 (define.go) 定義泛型數值約束與抽樣器共用介面。
package sampler

import (
	"math"

	"github.com/zintix-labs/montecarlo/sdk/core"
)

// Integers 定義所有底層實現為整數型別的集合
type Integers interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Floaters 定義所有底層實現為浮點數型別的集合
type Floaters interface {
	~float32 | ~float64
}

// Numbers 定義所有底層實現為數值型別的集合（整數與浮點數）
type Numbers interface {
	Integers | Floaters
}

// Sampler 每次 Pick 回傳一個權重索引，各次獨立（有放回）。
type Sampler interface {
	Pick(c *core.Core) int
}

// Kind 抽樣器種類
type Kind string

const (
	KindAlias Kind = "alias"
	KindCDF   Kind = "cdf"
)

// ParseKind 空字串視為 alias
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case "", KindAlias:
		return KindAlias, true
	case KindCDF:
		return KindCDF, true
	default:
		return "", false
	}
}

// Build 依種類建表，權重不合法時 panic（見各建表函數）。
func Build[T Numbers](kind Kind, weights []T) Sampler {
	if kind == KindCDF {
		return BuildCDF(weights)
	}
	return BuildAliasTable(weights)
}

// toFloat 檢查並轉換權重：負值、NaN、Inf 一律 panic。
//
// 回傳值已除以最大權重（落在 [0,1]），總和不超過 len(weights)，
// 即使每個權重都接近 math.MaxFloat64 也不會溢位成 Inf。
func toFloat[T Numbers](weights []T, who string) ([]float64, float64) {
	out := make([]float64, len(weights))
	peak := 0.0
	for i, w := range weights {
		f := float64(w)
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			panic(who + ": weight must be finite and non-negative")
		}
		out[i] = f
		peak = max(peak, f)
	}
	if len(weights) > 0 && peak <= 0 {
		panic(who + ": all weights are zero")
	}
	total := 0.0
	for i := range out {
		out[i] /= peak
		total += out[i]
	}
	return out, total
}
