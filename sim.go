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

package montecarlo

import (
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/montecarlo/analyzer"
	"github.com/zintix-labs/montecarlo/corefmt"
	"github.com/zintix-labs/montecarlo/die"
	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/game"
	"github.com/zintix-labs/montecarlo/sdk/core"
	"github.com/zintix-labs/montecarlo/spec"
	"github.com/zintix-labs/montecarlo/stats"
)

// Simulator 依一份 GameSetting 建出骰子與 Game，單線執行並產出統計報告。
type Simulator struct {
	Name       string            // 遊戲名稱
	gs         *spec.GameSetting //
	initSeed   int64             // 初始下的種子
	dice       []*die.Die        //
	game       *game.Game        //
	confidence float64           // Jackpot 信賴區間的信心水準
	bar        *pb.ProgressBar   // 只在 Run 期間有值
	last       Checkpoint        // 最近一次 Run 開始前的狀態
	log        *slog.Logger
}

// Checkpoint 每顆骰子亂數狀態的快照（base64url），可交給 Restore 重現同一段擲骰
type Checkpoint struct {
	Seed   int64    `json:"seed"   yaml:"seed"`
	States []string `json:"states" yaml:"states"`
}

func newSimulator(gs *spec.GameSetting, cf core.PRNGFactory, seed int64, log *slog.Logger) (*Simulator, error) {
	s := &Simulator{
		Name:       gs.Name,
		gs:         gs,
		initSeed:   seed,
		confidence: analyzer.DefaultConfidence,
		log:        log,
	}
	seeds := newSeedMaker(seed)
	kind := gs.SamplerKind()
	for i, ds := range gs.Expand() {
		d, err := ds.Build(die.WithCore(core.New(cf.New(seeds.next()))), die.WithSampler(kind))
		if err != nil {
			return nil, errs.WrapWithExtra(err, "build die failed", "game="+gs.Name)
		}
		s.dice = append(s.dice, d)
		log.Debug("die built", "game", gs.Name, "die", i, "sides", d.Sides())
	}
	g, err := game.New(s.dice, game.WithRoundHook(s.onRound))
	if err != nil {
		return nil, errs.Wrap(err, "build game failed")
	}
	s.game = g
	return s, nil
}

// Seed 建立時使用的初始種子
func (s *Simulator) Seed() int64 { return s.initSeed }

// Game 回傳最近一次 Run 的 Game，可做進一步查詢
func (s *Simulator) Game() *game.Game { return s.game }

// Setting 使用中的設定
func (s *Simulator) Setting() *spec.GameSetting { return s.gs }

// SetConfidence 設定報告中 Jackpot 信賴區間的信心水準，不在 (0,1) 時報錯
func (s *Simulator) SetConfidence(c float64) error {
	if !(c > 0 && c < 1) {
		return errs.Valuef("confidence must be in (0,1), got %v", c)
	}
	s.confidence = c
	return nil
}

// Run 擲 rounds 回合並回傳統計報告與用時。
//
// rounds 為 0 時使用設定檔的 rounds；負數回傳 KindValue。
// 骰子的亂數狀態延續上一次 Run，不會重置。
func (s *Simulator) Run(rounds int, showpb bool) (*stats.Report, time.Duration, error) {
	if rounds < 0 {
		return nil, 0, errs.Valuef("rounds must be >= 0, got %d", rounds)
	}
	if rounds == 0 {
		rounds = s.gs.Rounds
	}
	cp, err := s.checkpoint()
	if err != nil {
		return nil, 0, err
	}

	s.bar = pb.StartNew(rounds)
	if !showpb {
		s.bar.SetWriter(io.Discard)
	}
	err = s.game.Play(rounds)
	used := time.Since(s.bar.StartTime())
	s.bar.Finish()
	s.bar = nil
	if err != nil {
		return nil, used, errs.Wrap(err, "play failed")
	}
	s.last = cp

	a, err := analyzer.New(s.game)
	if err != nil {
		return nil, used, err
	}
	rep := stats.Build(s.Name, a, s.confidence)
	s.log.Debug("run finished", "game", s.Name, "rounds", rounds, "jackpot", rep.Summary.Jackpot, "used", used)
	return rep, used, nil
}

// Checkpoint 最近一次 Run 開始前的骰子狀態
func (s *Simulator) Checkpoint() Checkpoint {
	out := s.last
	out.States = append([]string(nil), s.last.States...)
	return out
}

// Restore 把骰子狀態還原到 cp，下一次 Run 會重現 cp 之後的擲骰
func (s *Simulator) Restore(cp Checkpoint) error {
	if len(cp.States) != len(s.dice) {
		return errs.Valuef("checkpoint has %d states, simulator has %d dice", len(cp.States), len(s.dice))
	}
	raw := make([][]byte, len(cp.States))
	for i, st := range cp.States {
		b, err := corefmt.DecodeBase64URL(st)
		if err != nil {
			return errs.WrapWithExtra(err, "bad checkpoint", "die="+strconv.Itoa(i))
		}
		raw[i] = b
	}
	for i, d := range s.dice {
		if err := d.Restore(raw[i]); err != nil {
			return errs.WrapWithExtra(err, "restore checkpoint failed", "die="+strconv.Itoa(i))
		}
	}
	return nil
}

// ============================================================
// ** 內部方法 **
// ============================================================

func (s *Simulator) onRound(int) {
	if s.bar != nil {
		s.bar.Increment()
	}
}

func (s *Simulator) checkpoint() (Checkpoint, error) {
	cp := Checkpoint{Seed: s.initSeed, States: make([]string, len(s.dice))}
	for i, d := range s.dice {
		b, err := d.State()
		if err != nil {
			return Checkpoint{}, err
		}
		cp.States[i] = corefmt.EncodeBase64URL(b)
	}
	return cp, nil
}
