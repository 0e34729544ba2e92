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

package spec

import (
	"slices"

	"github.com/zintix-labs/montecarlo/die"
	"github.com/zintix-labs/montecarlo/errs"
)

// DieSetting 單一骰子定義。
// Weights 只需列出非 1.0 的符號；Count 表示相同定義重複幾顆。
type DieSetting struct {
	Symbols []string           `yaml:"symbols"  json:"symbols"`
	Weights map[string]float64 `yaml:"weights"  json:"weights"`
	Count   int                `yaml:"count"    json:"count"`
}

func (ds *DieSetting) init() error {
	if ds.Count < 0 {
		return errs.Valuef("count must be >= 0, got %d", ds.Count)
	}
	if ds.Count == 0 {
		ds.Count = 1
	}
	// 直接走一次骰子建構流程，驗證規則與 die 套件一致
	d, err := ds.Build(die.WithSeed(0))
	if err != nil {
		return err
	}
	for _, w := range d.Weights() {
		if w > 0 {
			return nil
		}
	}
	return errs.Valuef("all weights are zero")
}

// Build 依設定建出骰子，權重依符號排序後套用
func (ds *DieSetting) Build(opts ...die.Option) (*die.Die, error) {
	d, err := die.New(ds.Symbols, opts...)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(ds.Weights))
	for k := range ds.Weights {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := d.ChangeWeight(k, ds.Weights[k]); err != nil {
			return nil, err
		}
	}
	return d, nil
}
