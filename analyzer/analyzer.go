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
	"slices"
	"strings"

	"github.com/zintix-labs/montecarlo/die"
	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/game"
)

// Analyzer 對一次 Play 的結果做統計。
//
// 建構時即對 Game 的寬表與每顆骰子的權重拍快照，之後 Game 重新 Play
// 或骰子改權重都不會影響既有 Analyzer 的結果。
type Analyzer struct {
	game  *game.Game
	table *game.WideTable
	faces [][]die.Face
	probs [][]float64 // 各骰正規化機率，全零權重為 nil
}

// FaceCount 單一回合中某個面出現的次數
type FaceCount struct {
	Roll  int `json:"Roll" yaml:"Roll"`
	Count int `json:"Count" yaml:"Count"`
}

// Count 一個組合（或排列）鍵與其出現回合數
type Count struct {
	Key   []string `json:"Key" yaml:"Key"`
	Count int      `json:"Count" yaml:"Count"`
}

type Counts []Count

// Total 所有鍵的次數總和，等於回合數
func (c Counts) Total() int {
	t := 0
	for _, x := range c {
		t += x.Count
	}
	return t
}

// SymbolCount 單一符號在全部回合、全部骰子中的出現次數
type SymbolCount struct {
	Symbol string `json:"Symbol" yaml:"Symbol"`
	Count  int    `json:"Count" yaml:"Count"`
}

// New 建立 Analyzer，g 為 nil 時回傳 KindValue
func New(g *game.Game) (*Analyzer, error) {
	if g == nil {
		return nil, errs.Valuef("analyzer needs a game")
	}
	dice := g.Dice()
	faces := make([][]die.Face, len(dice))
	probs := make([][]float64, len(dice))
	for i, d := range dice {
		faces[i] = d.Snapshot()
		probs[i] = d.Probabilities()
	}
	return &Analyzer{game: g, table: g.Wide(), faces: faces, probs: probs}, nil
}

// Game 回傳所分析的 Game
func (a *Analyzer) Game() *game.Game { return a.game }

// Rounds 快照中的回合數
func (a *Analyzer) Rounds() int { return a.table.Len() }

// Table 回傳快照的複本
func (a *Analyzer) Table() *game.WideTable { return a.table.Clone() }

// Jackpot 所有骰子結果相同的回合數
func (a *Analyzer) Jackpot() int {
	n := 0
	for _, r := range a.table.Rows {
		if allSame(r.Outcomes) {
			n++
		}
	}
	return n
}

// FaceCountsPerRoll 每回合 face 出現幾次，每一回合都有一筆（含 0）
func (a *Analyzer) FaceCountsPerRoll(face string) []FaceCount {
	out := make([]FaceCount, len(a.table.Rows))
	for i, r := range a.table.Rows {
		c := 0
		for _, o := range r.Outcomes {
			if o == face {
				c++
			}
		}
		out[i] = FaceCount{Roll: r.Roll, Count: c}
	}
	return out
}

// ComboCount 不計順序的組合次數。
// 每回合的結果排序後作為鍵，輸出依鍵排序。
func (a *Analyzer) ComboCount() Counts {
	return a.group(func(outcomes []string) []string {
		k := slices.Clone(outcomes)
		slices.Sort(k)
		return k
	})
}

// PermutationCount 依骰子順序的排列次數，輸出依鍵排序
func (a *Analyzer) PermutationCount() Counts {
	return a.group(slices.Clone[[]string])
}

// FaceFrequency 各符號在所有回合、所有骰子中的總出現次數，依符號排序
func (a *Analyzer) FaceFrequency() []SymbolCount {
	tally := map[string]int{}
	for _, r := range a.table.Rows {
		for _, o := range r.Outcomes {
			tally[o]++
		}
	}
	out := make([]SymbolCount, 0, len(tally))
	for s, c := range tally {
		out = append(out, SymbolCount{Symbol: s, Count: c})
	}
	slices.SortFunc(out, func(x, y SymbolCount) int { return strings.Compare(x.Symbol, y.Symbol) })
	return out
}

// ============================================================
// ** 內部方法 **
// ============================================================

func (a *Analyzer) group(keyOf func([]string) []string) Counts {
	idx := map[string]int{}
	var out Counts
	for _, r := range a.table.Rows {
		k := keyOf(r.Outcomes)
		// 符號不含 NUL，以此串接作為 map 鍵
		mk := strings.Join(k, "\x00")
		if i, ok := idx[mk]; ok {
			out[i].Count++
			continue
		}
		idx[mk] = len(out)
		out = append(out, Count{Key: k, Count: 1})
	}
	slices.SortFunc(out, func(x, y Count) int { return slices.Compare(x.Key, y.Key) })
	return out
}

func allSame(xs []string) bool {
	if len(xs) == 0 {
		return false
	}
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}
