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

// Package game 把一組同面數的骰子一起擲若干回合，只保留最近一次 Play 的結果。
package game

import (
	"slices"
	"strconv"

	"github.com/zintix-labs/montecarlo/die"
	"github.com/zintix-labs/montecarlo/errs"
)

// Game 持有骰子的參考（不複製），以及最近一次 Play 的寬表
type Game struct {
	dice    []*die.Die
	play    *WideTable
	onRound func(round int)
}

// Option 建構選項
type Option func(*Game)

// WithRoundHook 每回合結束後呼叫，用於進度條等觀察者
func WithRoundHook(fn func(round int)) Option {
	return func(g *Game) { g.onRound = fn }
}

// New 建立 Game。
//
// 後續的組合/排列分析假設每顆骰子面數相同，所以這裡直接檢查：
//   - 骰子列表為空：KindValue
//   - 含 nil 骰子：KindType
//   - 面數不一致：KindValue
func New(dice []*die.Die, opts ...Option) (*Game, error) {
	if len(dice) == 0 {
		return nil, errs.Valuef("game needs at least one die")
	}
	for i, d := range dice {
		if d == nil {
			return nil, errs.Typef("dice[%d] is nil", i)
		}
		if d.Sides() != dice[0].Sides() {
			return nil, errs.Valuef("dice[%d] has %d sides, dice[0] has %d", i, d.Sides(), dice[0].Sides())
		}
	}
	g := &Game{
		dice: slices.Clone(dice),
		play: newWideTable(len(dice), 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Play 擲 times 回合，每回合每顆骰子各擲一次。
//
// 新結果完整建好後才取代舊結果；任何一顆骰子失敗時舊結果保持不變。
func (g *Game) Play(times int) error {
	if times < 0 {
		return errs.Valuef("play times must be >= 0, got %d", times)
	}
	t := newWideTable(len(g.dice), times)
	for round := 1; round <= times; round++ {
		row := WideRow{Roll: round, Outcomes: make([]string, len(g.dice))}
		for i, d := range g.dice {
			out, err := d.Roll(1)
			if err != nil {
				return errs.WrapWithExtra(err, "play failed", "die="+strconv.Itoa(i))
			}
			row.Outcomes[i] = out[0]
		}
		t.Rows = append(t.Rows, row)
		if g.onRound != nil {
			g.onRound(round)
		}
	}
	g.play = t
	return nil
}

// Results 依 shape 回傳最近一次 Play 的複本；shape 只能是 "wide" 或 "narrow"。
func (g *Game) Results(shape string) (Table, error) {
	s, err := ParseShape(shape)
	if err != nil {
		return nil, err
	}
	if s == ShapeNarrow {
		return g.Narrow(), nil
	}
	return g.Wide(), nil
}

// Wide 寬表複本
func (g *Game) Wide() *WideTable { return g.play.Clone() }

// Narrow 窄表（寬表的完整 unpivot）
func (g *Game) Narrow() *NarrowTable { return g.play.Narrow() }

// Dice 骰子參考列表的複本（骰子本身不複製）
func (g *Game) Dice() []*die.Die { return slices.Clone(g.dice) }

// Rounds 最近一次 Play 的回合數
func (g *Game) Rounds() int { return len(g.play.Rows) }

// Sides 每顆骰子的面數
func (g *Game) Sides() int { return g.dice[0].Sides() }
