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
	"fmt"

	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/sdk/core"
	"github.com/zintix-labs/montecarlo/sdk/sampler"
)

// GameSetting 描述一場擲骰遊戲：用哪些骰子、預設擲幾回合、種子與亂數演算法。
type GameSetting struct {
	Name    string       `yaml:"name"     json:"name"`
	Rounds  int          `yaml:"rounds"   json:"rounds"`
	Seed    int64        `yaml:"seed"     json:"seed"`
	PRNG    string       `yaml:"prng"     json:"prng"`
	Sampler string       `yaml:"sampler"  json:"sampler"`
	Dice    []DieSetting `yaml:"dice"     json:"dice"`
	initOK  bool
}

// Init 補預設值並執行基本檢查；重複呼叫不會重做。
//
//   - name 不可為空
//   - 至少一顆骰子；count 為 0 視為 1，負數報錯
//   - rounds 不可為負
//   - prng / sampler 必須是已知名稱
//   - 每顆骰子的符號與權重須能建出合法的骰子
//   - 展開後所有骰子面數一致
func (gs *GameSetting) Init() error {
	if gs.initOK {
		return nil
	}
	if gs.Name == "" {
		return errs.Valuef("game setting needs a name")
	}
	if gs.Rounds < 0 {
		return errs.Valuef("name: %s err: rounds must be >= 0, got %d", gs.Name, gs.Rounds)
	}
	if _, ok := core.FactoryByName(gs.PRNG); !ok {
		return errs.Valuef("name: %s err: unknown prng %q", gs.Name, gs.PRNG)
	}
	if _, ok := sampler.ParseKind(gs.Sampler); !ok {
		return errs.Valuef("name: %s err: unknown sampler %q", gs.Name, gs.Sampler)
	}
	if len(gs.Dice) == 0 {
		return errs.Valuef("name: %s err: empty dice", gs.Name)
	}
	sides := -1
	for i := range gs.Dice {
		ds := &gs.Dice[i]
		if err := ds.init(); err != nil {
			return errs.WrapWithExtra(err, "invalid die setting", fmt.Sprintf("name=%s dice[%d]", gs.Name, i))
		}
		if sides >= 0 && len(ds.Symbols) != sides {
			return errs.Valuef("name: %s err: dice[%d] has %d sides, expected %d", gs.Name, i, len(ds.Symbols), sides)
		}
		sides = len(ds.Symbols)
	}
	gs.initOK = true
	return nil
}

// DieCount 展開 count 後的骰子總數
func (gs *GameSetting) DieCount() int {
	n := 0
	for _, ds := range gs.Dice {
		n += max(ds.Count, 1)
	}
	return n
}

// Expand 依 count 展開成逐顆骰子的設定（依序）
func (gs *GameSetting) Expand() []DieSetting {
	out := make([]DieSetting, 0, gs.DieCount())
	for _, ds := range gs.Dice {
		for range max(ds.Count, 1) {
			one := ds
			one.Count = 1
			out = append(out, one)
		}
	}
	return out
}

// Factory 對應的亂數產生器工廠
func (gs *GameSetting) Factory() core.PRNGFactory {
	f, ok := core.FactoryByName(gs.PRNG)
	if !ok {
		return core.Default()
	}
	return f
}

// SamplerKind 對應的抽樣演算法
func (gs *GameSetting) SamplerKind() sampler.Kind {
	k, _ := sampler.ParseKind(gs.Sampler)
	return k
}
