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

package game

import (
	"slices"

	"github.com/zintix-labs/montecarlo/errs"
)

// Shape 結果表的形狀
type Shape string

const (
	ShapeWide   Shape = "wide"
	ShapeNarrow Shape = "narrow"
)

// ParseShape 只接受 "wide" / "narrow"
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeWide, ShapeNarrow:
		return Shape(s), nil
	default:
		return "", errs.Valuef("invalid shape %q, use %q or %q", s, ShapeWide, ShapeNarrow)
	}
}

// Table 寬表與窄表共同的唯讀視角
type Table interface {
	Shape() Shape
	// Len 資料列數：寬表為回合數，窄表為 回合數 x 骰子數
	Len() int
	// Narrow 轉成 (Roll, Die, Outcome) 三元組的窄表
	Narrow() *NarrowTable
}

// WideTable 一列一回合、一欄一顆骰子
//
// Dice 為欄位識別（骰子在 Game 中的位置）；Rows[i].Roll 為 1-based 回合編號。
type WideTable struct {
	Dice []int     `json:"Dice" yaml:"Dice"`
	Rows []WideRow `json:"Rows" yaml:"Rows"`
}

type WideRow struct {
	Roll     int      `json:"Roll" yaml:"Roll"`
	Outcomes []string `json:"Outcomes" yaml:"Outcomes"`
}

// NarrowTable 一列一個 (Roll, Die)，依 Roll 再依 Die 排序
type NarrowTable struct {
	Rows []NarrowRow `json:"Rows" yaml:"Rows"`
}

type NarrowRow struct {
	Roll    int    `json:"Roll" yaml:"Roll"`
	Die     int    `json:"Die" yaml:"Die"`
	Outcome string `json:"Outcome" yaml:"Outcome"`
}

// Key 窄表的列鍵
type Key struct {
	Roll int
	Die  int
}

func newWideTable(dice int, rounds int) *WideTable {
	cols := make([]int, dice)
	for i := range cols {
		cols[i] = i
	}
	return &WideTable{Dice: cols, Rows: make([]WideRow, 0, rounds)}
}

func (w *WideTable) Shape() Shape { return ShapeWide }
func (w *WideTable) Len() int     { return len(w.Rows) }

// Width 欄位（骰子）數
func (w *WideTable) Width() int { return len(w.Dice) }

// Clone 深拷貝
func (w *WideTable) Clone() *WideTable {
	out := &WideTable{Dice: slices.Clone(w.Dice), Rows: make([]WideRow, len(w.Rows))}
	for i, r := range w.Rows {
		out.Rows[i] = WideRow{Roll: r.Roll, Outcomes: slices.Clone(r.Outcomes)}
	}
	return out
}

// Column 取出單一骰子在所有回合的結果
func (w *WideTable) Column(die int) ([]string, error) {
	if die < 0 || die >= len(w.Dice) {
		return nil, errs.Indexf("die index %d out of range [0,%d)", die, len(w.Dice))
	}
	col := make([]string, len(w.Rows))
	for i, r := range w.Rows {
		col[i] = r.Outcomes[die]
	}
	return col, nil
}

// Narrow 完整 unpivot，不遺失任何資訊
func (w *WideTable) Narrow() *NarrowTable {
	out := &NarrowTable{Rows: make([]NarrowRow, 0, len(w.Rows)*len(w.Dice))}
	for _, r := range w.Rows {
		for j, d := range w.Dice {
			out.Rows = append(out.Rows, NarrowRow{Roll: r.Roll, Die: d, Outcome: r.Outcomes[j]})
		}
	}
	return out
}

func (n *NarrowTable) Shape() Shape         { return ShapeNarrow }
func (n *NarrowTable) Len() int             { return len(n.Rows) }
func (n *NarrowTable) Narrow() *NarrowTable { return n.Clone() }

func (n *NarrowTable) Clone() *NarrowTable {
	return &NarrowTable{Rows: slices.Clone(n.Rows)}
}

// Lookup 依 (Roll, Die) 查值
func (n *NarrowTable) Lookup(k Key) (string, bool) {
	i, ok := slices.BinarySearchFunc(n.Rows, k, func(r NarrowRow, k Key) int {
		if r.Roll != k.Roll {
			return r.Roll - k.Roll
		}
		return r.Die - k.Die
	})
	if !ok {
		return "", false
	}
	return n.Rows[i].Outcome, true
}

// Wide pivot 回寬表。窄表必須是完整的（每一回合都有相同的骰子集合），否則 KindValue。
func (n *NarrowTable) Wide() (*WideTable, error) {
	if len(n.Rows) == 0 {
		return &WideTable{Dice: []int{}, Rows: []WideRow{}}, nil
	}
	var dice []int
	first := n.Rows[0].Roll
	for _, r := range n.Rows {
		if r.Roll != first {
			break
		}
		dice = append(dice, r.Die)
	}
	width := len(dice)
	if len(n.Rows)%width != 0 {
		return nil, errs.Valuef("narrow table is not rectangular: %d rows, %d dice", len(n.Rows), width)
	}
	out := &WideTable{Dice: dice, Rows: make([]WideRow, 0, len(n.Rows)/width)}
	for i := 0; i < len(n.Rows); i += width {
		row := WideRow{Roll: n.Rows[i].Roll, Outcomes: make([]string, width)}
		for j := 0; j < width; j++ {
			r := n.Rows[i+j]
			if r.Roll != row.Roll || r.Die != dice[j] {
				return nil, errs.Valuef("narrow table row %d breaks (Roll, Die) order", i+j)
			}
			row.Outcomes[j] = r.Outcome
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
