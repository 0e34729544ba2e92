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

package analyzer

import (
	"math"

	"github.com/zintix-labs/montecarlo/errs"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultConfidence 未指定或不合法的信心水準一律退回 95%
const DefaultConfidence = 0.95

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo" yaml:"Lo"`
	Hi float64 `json:"Hi" yaml:"Hi"`
}

// PointStat 點估計 回傳 估計值 以及信賴區間
type PointStat struct {
	Hat float64 `json:"Hat" yaml:"Hat"`
	CI  CI      `json:"CI" yaml:"CI"`
}

// Summary 每回合計數的描述統計
type Summary struct {
	Face  string  `json:"Face" yaml:"Face"`
	Rolls int     `json:"Rolls" yaml:"Rolls"`
	Total int     `json:"Total" yaml:"Total"`
	Mean  float64 `json:"Mean" yaml:"Mean"`
	Std   float64 `json:"Std" yaml:"Std"`
	Min   int     `json:"Min" yaml:"Min"`
	Max   int     `json:"Max" yaml:"Max"`
}

// FitResult 單顆骰子的卡方適合度檢定
type FitResult struct {
	Die       int           `json:"Die" yaml:"Die"`
	Observed  []SymbolCount `json:"Observed" yaml:"Observed"`
	Expected  []float64     `json:"Expected" yaml:"Expected"`
	ChiSquare float64       `json:"ChiSquare" yaml:"ChiSquare"`
	DoF       int           `json:"DoF" yaml:"DoF"`
	PValue    float64       `json:"PValue" yaml:"PValue"`
}

// FaceCountSummary face 每回合出現次數的平均、標準差與極值
func (a *Analyzer) FaceCountSummary(face string) Summary {
	per := a.FaceCountsPerRoll(face)
	s := Summary{Face: face, Rolls: len(per)}
	if len(per) == 0 {
		return s
	}
	xs := make([]float64, len(per))
	s.Min, s.Max = per[0].Count, per[0].Count
	for i, p := range per {
		xs[i] = float64(p.Count)
		s.Total += p.Count
		s.Min = min(s.Min, p.Count)
		s.Max = max(s.Max, p.Count)
	}
	if len(xs) < 2 {
		s.Mean = xs[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(xs, nil)
	return s
}

// JackpotEstimate Jackpot 比例與 Clopper–Pearson 精確信賴區間
func (a *Analyzer) JackpotEstimate(confidence float64) PointStat {
	hat, ci := proportionCICP(a.Jackpot(), a.Rounds(), confidence)
	return PointStat{Hat: hat, CI: ci}
}

// FitTest 以 Pearson 卡方檢定第 dieIndex 顆骰子的結果是否符合其權重。
//
// 權重為 0 的面不計入自由度；若這種面卻被擲出，ChiSquare 為 math.MaxFloat64、PValue 為 0
// （不用 +Inf，報告要能輸出成 JSON）。
func (a *Analyzer) FitTest(dieIndex int) (FitResult, error) {
	if dieIndex < 0 || dieIndex >= len(a.faces) {
		return FitResult{}, errs.Indexf("die index %d out of range [0,%d)", dieIndex, len(a.faces))
	}
	n := a.Rounds()
	if n < 1 {
		return FitResult{}, errs.Valuef("fit test needs at least one round")
	}
	col, err := a.table.Column(dieIndex)
	if err != nil {
		return FitResult{}, err
	}
	faces := a.faces[dieIndex]
	probs := a.probs[dieIndex]
	if probs == nil {
		return FitResult{}, errs.Valuef("die %d has zero total weight", dieIndex)
	}

	tally := make(map[string]int, len(faces))
	for _, o := range col {
		tally[o]++
	}

	res := FitResult{
		Die:      dieIndex,
		Observed: make([]SymbolCount, len(faces)),
		Expected: make([]float64, len(faces)),
	}
	cats := 0
	impossible := false
	for i, f := range faces {
		obs := tally[f.Symbol]
		exp := float64(n) * probs[i]
		res.Observed[i] = SymbolCount{Symbol: f.Symbol, Count: obs}
		res.Expected[i] = exp
		if exp == 0 {
			impossible = impossible || obs > 0
			continue
		}
		cats++
		d := float64(obs) - exp
		res.ChiSquare += d * d / exp
	}
	res.DoF = max(cats-1, 0)
	switch {
	case impossible:
		res.ChiSquare = math.MaxFloat64
		res.PValue = 0
	case res.DoF == 0:
		res.PValue = 1
	default:
		res.PValue = distuv.ChiSquared{K: float64(res.DoF)}.Survival(res.ChiSquare)
	}
	return res, nil
}

// ============================================================
// ** 內部統計函數 **
// ============================================================

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	if !(confidence > 0 && confidence < 1) {
		confidence = DefaultConfidence
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	// Beta PPF 映射，處理邊界
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}
