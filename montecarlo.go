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

// Package montecarlo 提供擲骰模擬的「組裝入口」。
//
// Lab 把兩個地基組裝在一起，並提供建立 Simulator 的入口：
//  1. Catalog：遊戲目錄，定義有哪些擲骰遊戲、各自對應的設定檔名稱（ConfigName）。
//  2. PRNGFactory：亂數工廠，設定檔沒有指定 prng 時使用。
//
// Lab 本身不綁定任何「檔案路徑」概念：設定檔來源一律以 fs.FS 的形式注入，
// 可以用 go:embed（見 presets 套件）或 os.DirFS。
//
//	lab, _ := montecarlo.NewAuto(core.Default(), montecarlo.Configs(presets.FS))
//	sim, _ := lab.NewSimulatorWithSeed("fair-d6-pair", 42)
//	rep, used, _ := sim.Run(10000, false)
package montecarlo

import (
	"io/fs"
	"log/slog"

	"github.com/zintix-labs/montecarlo/catalog"
	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/logger"
	"github.com/zintix-labs/montecarlo/sdk/core"
	"github.com/zintix-labs/montecarlo/spec"
)

// Configs 用來把一或多個設定檔來源（fs.FS）打包成 NewLab() 需要的參數。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

type Lab struct {
	cat *catalog.Catalog
	cf  core.PRNGFactory
	log *slog.Logger
}

// NewLab 建立 Lab（註冊階段），之後以 Register / RegisterAll 加入遊戲再 Freeze。
//
// cf 為 nil 時使用 core.Default()。
func NewLab(cf core.PRNGFactory, cfgs []fs.FS) (*Lab, error) {
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	if cf == nil {
		cf = core.Default()
	}
	cata, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	return &Lab{
		cat: cata,
		cf:  cf,
		log: logger.NewDefaultLogger(logger.ModeSilence),
	}, nil
}

// NewAuto 註冊所有設定檔並凍結目錄，直接進入執行階段。
func NewAuto(cf core.PRNGFactory, cfgs []fs.FS) (*Lab, error) {
	lab, err := NewLab(cf, cfgs)
	if err != nil {
		return nil, err
	}
	if err := lab.RegisterAll(); err != nil {
		return nil, err
	}
	lab.Freeze()
	return lab, nil
}

// SetLogger 注入 logger，nil 則維持靜默
func (l *Lab) SetLogger(log *slog.Logger) {
	if log != nil {
		l.log = log
	}
}

func (l *Lab) Register(ents ...catalog.Entry) error {
	return l.cat.Register(ents...)
}

func (l *Lab) RegisterAll() error {
	return l.cat.RegisterAll()
}

func (l *Lab) Freeze() {
	l.cat.Freeze()
}

func (l *Lab) EntryByName(name string) (catalog.Entry, bool) {
	return l.cat.GetByName(name)
}

func (l *Lab) Names() []string {
	return l.cat.Names()
}

func (l *Lab) All() []catalog.Entry {
	return l.cat.All()
}

func (l *Lab) Summary() ([]catalog.Summary, error) {
	return l.cat.Summary()
}

// NewSimulator 依遊戲名稱建立 Simulator。
//
// 設定檔有 seed 時使用之，否則由 crypto/rand 產生。
func (l *Lab) NewSimulator(name string) (*Simulator, error) {
	gs, err := l.setting(name)
	if err != nil {
		return nil, err
	}
	seed := gs.Seed
	if seed == 0 {
		if seed, err = core.NewSeed(); err != nil {
			return nil, errs.Wrap(err, "generate seed failed")
		}
	}
	return l.newSimulator(gs, seed)
}

// NewSimulatorWithSeed 與 NewSimulator 相同，但由呼叫端指定初始 seed（覆蓋設定檔）。
func (l *Lab) NewSimulatorWithSeed(name string, seed int64) (*Simulator, error) {
	gs, err := l.setting(name)
	if err != nil {
		return nil, err
	}
	return l.newSimulator(gs, seed)
}

// NewSimulatorByYAML 以未註冊的 YAML 設定建立 Simulator，seed 為 0 時沿用設定檔或隨機產生
func (l *Lab) NewSimulatorByYAML(raw []byte, seed int64) (*Simulator, error) {
	gs, err := spec.GetGameSettingByYAML(raw)
	if err != nil {
		return nil, err
	}
	return l.newSimulatorFromRaw(gs, seed)
}

// NewSimulatorByJSON 同 NewSimulatorByYAML
func (l *Lab) NewSimulatorByJSON(raw []byte, seed int64) (*Simulator, error) {
	gs, err := spec.GetGameSettingByJSON(raw)
	if err != nil {
		return nil, err
	}
	return l.newSimulatorFromRaw(gs, seed)
}

func (l *Lab) newSimulatorFromRaw(gs *spec.GameSetting, seed int64) (*Simulator, error) {
	if seed == 0 {
		seed = gs.Seed
	}
	if seed == 0 {
		var err error
		if seed, err = core.NewSeed(); err != nil {
			return nil, errs.Wrap(err, "generate seed failed")
		}
	}
	return l.newSimulator(gs, seed)
}

func (l *Lab) setting(name string) (*spec.GameSetting, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	return l.cat.GameSettingByName(name)
}

// 設定檔指定 prng 時優先，否則使用 Lab 的工廠
func (l *Lab) factoryFor(gs *spec.GameSetting) core.PRNGFactory {
	if gs.PRNG != "" {
		return gs.Factory()
	}
	return l.cf
}

func (l *Lab) newSimulator(gs *spec.GameSetting, seed int64) (*Simulator, error) {
	return newSimulator(gs, l.factoryFor(gs), seed, l.log)
}
