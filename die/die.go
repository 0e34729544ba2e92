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

// Package die 實作加權多面骰。
//
// 一顆 Die 由一組有序、唯一、同類別（全字母或全數字）的符號組成，
// 每個符號對應一個非負實數權重（預設 1.0）。Roll 以權重比例做有放回抽樣。
package die

import (
	"math"
	"slices"
	"unicode"

	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/sdk/core"
	"github.com/zintix-labs/montecarlo/sdk/sampler"
)

// Face 符號與其目前權重
type Face struct {
	Symbol string  `json:"symbol" yaml:"symbol"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Die 加權骰
type Die struct {
	symbols []string
	weights []float64
	index   map[string]int
	core    *core.Core
	kind    sampler.Kind
	table   sampler.Sampler // 權重改變後設為 nil，下次 Roll 重建
}

// Option 建構選項
type Option func(*Die)

// WithCore 注入亂數來源
func WithCore(c *core.Core) Option {
	return func(d *Die) {
		if c != nil {
			d.core = c
		}
	}
}

// WithSeed 以預設 PRNG 與指定種子建立亂數來源
func WithSeed(seed int64) Option {
	return func(d *Die) { d.core = core.NewDefault(seed) }
}

// WithSampler 指定抽樣演算法（預設 alias）
func WithSampler(kind sampler.Kind) Option {
	return func(d *Die) { d.kind = kind }
}

// New 建立一顆骰子。
//
//   - symbols 為 nil：KindType（不是序列）
//   - symbols 為空：KindValue
//   - 符號重複：KindValue
//   - 不是「全字母」也不是「全數字」：KindValue
//
// 未指定亂數來源時，以加密亂數產生種子。
func New(symbols []string, opts ...Option) (*Die, error) {
	if symbols == nil {
		return nil, errs.Typef("symbols must be a list, got nil")
	}
	if len(symbols) == 0 {
		return nil, errs.Valuef("die needs at least one symbol")
	}
	index := make(map[string]int, len(symbols))
	for i, s := range symbols {
		if _, dup := index[s]; dup {
			return nil, errs.Valuef("symbols must be unique, %q repeats", s)
		}
		index[s] = i
	}
	if !allOf(symbols, isAlpha) && !allOf(symbols, isNumeric) {
		return nil, errs.Valuef("symbols must be all alphabetic or all numeric")
	}

	d := &Die{
		symbols: slices.Clone(symbols),
		weights: make([]float64, len(symbols)),
		index:   index,
		kind:    sampler.KindAlias,
	}
	for i := range d.weights {
		d.weights[i] = 1.0
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.core == nil {
		seed, err := core.NewSeed()
		if err != nil {
			return nil, errs.Wrap(err, "seed generate failed")
		}
		d.core = core.NewDefault(seed)
	}
	if _, ok := sampler.ParseKind(string(d.kind)); !ok {
		return nil, errs.Valuef("unknown sampler %q", d.kind)
	}
	return d, nil
}

// NewFromAny 給動態輸入（設定檔、腳本）使用的建構方式。
//
// 接受 []string 或 []any；其他型別為 KindType。
// []any 中出現非字串元素視為「不是全字母也不是全數字」，回傳 KindValue。
func NewFromAny(v any, opts ...Option) (*Die, error) {
	switch src := v.(type) {
	case []string:
		return New(src, opts...)
	case []any:
		symbols := make([]string, len(src))
		for i, e := range src {
			s, ok := e.(string)
			if !ok {
				return nil, errs.Valuef("symbol %v (%T) is not a string", e, e)
			}
			symbols[i] = s
		}
		return New(symbols, opts...)
	default:
		return nil, errs.Typef("symbols must be a list, got %T", v)
	}
}

// ChangeWeight 修改單一符號的權重；驗證通過後才寫入。
func (d *Die) ChangeWeight(symbol string, weight float64) error {
	i, ok := d.index[symbol]
	if !ok {
		return errs.Indexf("invalid symbol %q", symbol)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return errs.Valuef("weight must be finite and non-negative, got %v", weight)
	}
	d.weights[i] = weight
	d.table = nil
	return nil
}

// ChangeWeightAny 同 ChangeWeight，但接受任意 Go 數值型別；非數值為 KindType。
func (d *Die) ChangeWeightAny(symbol string, weight any) error {
	if _, ok := d.index[symbol]; !ok {
		return errs.Indexf("invalid symbol %q", symbol)
	}
	f, ok := toFloat(weight)
	if !ok {
		return errs.Typef("weight must be numeric, got %T", weight)
	}
	return d.ChangeWeight(symbol, f)
}

// Roll 擲骰 times 次，回傳依序抽出的符號；結果不保存在骰子內。
func (d *Die) Roll(times int) ([]string, error) {
	if times < 0 {
		return nil, errs.Valuef("roll times must be >= 0, got %d", times)
	}
	if d.table == nil {
		if d.peakWeight() <= 0 {
			return nil, errs.Valuef("all weights are zero, die can not be rolled")
		}
		d.table = sampler.Build(d.kind, d.weights)
	}
	out := make([]string, times)
	for i := range out {
		out[i] = d.symbols[d.table.Pick(d.core)]
	}
	return out, nil
}

// Snapshot 回傳目前 (符號 -> 權重) 的複本，依原始符號順序。
func (d *Die) Snapshot() []Face {
	faces := make([]Face, len(d.symbols))
	for i, s := range d.symbols {
		faces[i] = Face{Symbol: s, Weight: d.weights[i]}
	}
	return faces
}

// State 亂數來源目前的序列化狀態，配合 Restore 可重現之後的擲骰
func (d *Die) State() ([]byte, error) {
	b, err := d.core.Snapshot()
	if err != nil {
		return nil, errs.Wrap(err, "snapshot die state failed")
	}
	return b, nil
}

// Restore 還原由 State 取得的亂數狀態
func (d *Die) Restore(state []byte) error {
	if err := d.core.Restore(state); err != nil {
		return errs.Wrap(err, "restore die state failed")
	}
	return nil
}

func (d *Die) Symbols() []string  { return slices.Clone(d.symbols) }
func (d *Die) Weights() []float64 { return slices.Clone(d.weights) }
func (d *Die) Sides() int         { return len(d.symbols) }

// Weight 查詢單一符號權重
func (d *Die) Weight(symbol string) (float64, bool) {
	i, ok := d.index[symbol]
	if !ok {
		return 0, false
	}
	return d.weights[i], true
}

// Probabilities 正規化後的機率；權重全為零時回傳 nil。
// 先除以最大權重再加總，極大權重的總和不會溢位。
func (d *Die) Probabilities() []float64 {
	peak := d.peakWeight()
	if peak <= 0 {
		return nil
	}
	p := make([]float64, len(d.weights))
	total := 0.0
	for i, w := range d.weights {
		p[i] = w / peak
		total += p[i]
	}
	for i := range p {
		p[i] /= total
	}
	return p
}

func (d *Die) peakWeight() float64 {
	peak := 0.0
	for _, w := range d.weights {
		peak = max(peak, w)
	}
	return peak
}

// ============================================================
// ** 內部方法 **
// ============================================================

func allOf(symbols []string, pred func(string) bool) bool {
	for _, s := range symbols {
		if !pred(s) {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.In(r, unicode.N, hanNumerals) {
			return false
		}
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// hanNumerals 常見漢字數字（含大寫）；它們屬於 Lo 類別，unicode.IsNumber 不認得。
var hanNumerals = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3007, Hi: 0x3007, Stride: 1}, // 〇
		{Lo: 0x4E00, Hi: 0x4E00, Stride: 1}, // 一
		{Lo: 0x4E03, Hi: 0x4E03, Stride: 1}, // 七
		{Lo: 0x4E07, Hi: 0x4E07, Stride: 1}, // 万
		{Lo: 0x4E09, Hi: 0x4E09, Stride: 1}, // 三
		{Lo: 0x4E5D, Hi: 0x4E5D, Stride: 1}, // 九
		{Lo: 0x4E8C, Hi: 0x4E8C, Stride: 1}, // 二
		{Lo: 0x4E94, Hi: 0x4E94, Stride: 1}, // 五
		{Lo: 0x4EDF, Hi: 0x4EDF, Stride: 1}, // 仟
		{Lo: 0x4F0D, Hi: 0x4F0D, Stride: 1}, // 伍
		{Lo: 0x4F70, Hi: 0x4F70, Stride: 1}, // 佰
		{Lo: 0x5104, Hi: 0x5104, Stride: 1}, // 億
		{Lo: 0x5146, Hi: 0x5146, Stride: 1}, // 兆
		{Lo: 0x516B, Hi: 0x516B, Stride: 1}, // 八
		{Lo: 0x516D, Hi: 0x516D, Stride: 1}, // 六
		{Lo: 0x5341, Hi: 0x5341, Stride: 1}, // 十
		{Lo: 0x5343, Hi: 0x5343, Stride: 1}, // 千
		{Lo: 0x5345, Hi: 0x5345, Stride: 1}, // 卅
		{Lo: 0x53C1, Hi: 0x53C1, Stride: 1}, // 叁
		{Lo: 0x53C3, Hi: 0x53C3, Stride: 1}, // 參
		{Lo: 0x56DB, Hi: 0x56DB, Stride: 1}, // 四
		{Lo: 0x58F9, Hi: 0x58F9, Stride: 1}, // 壹
		{Lo: 0x5EFF, Hi: 0x5EFF, Stride: 1}, // 廿
		{Lo: 0x62FE, Hi: 0x62FE, Stride: 1}, // 拾
		{Lo: 0x634C, Hi: 0x634C, Stride: 1}, // 捌
		{Lo: 0x67D2, Hi: 0x67D2, Stride: 1}, // 柒
		{Lo: 0x7396, Hi: 0x7396, Stride: 1}, // 玖
		{Lo: 0x767E, Hi: 0x767E, Stride: 1}, // 百
		{Lo: 0x8086, Hi: 0x8086, Stride: 1}, // 肆
		{Lo: 0x842C, Hi: 0x842C, Stride: 1}, // 萬
		{Lo: 0x8CB3, Hi: 0x8CB3, Stride: 1}, // 貳
		{Lo: 0x8D30, Hi: 0x8D30, Stride: 1}, // 贰
		{Lo: 0x9646, Hi: 0x9646, Stride: 1}, // 陆
		{Lo: 0x9678, Hi: 0x9678, Stride: 1}, // 陸
		{Lo: 0x96F6, Hi: 0x96F6, Stride: 1}, // 零
	},
}
