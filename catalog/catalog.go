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

package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/spec"
)

var (
	ErrDupName = errs.NewFatal("duplicate game name")
)

// Entry 一個已註冊的遊戲：名稱與其設定檔名
type Entry struct {
	Name       string
	ConfigName string
}

// Summary 對外列出遊戲用
type Summary struct {
	Name   string `json:"name"   yaml:"name"`
	Dice   int    `json:"dice"   yaml:"dice"`
	Sides  int    `json:"sides"  yaml:"sides"`
	Rounds int    `json:"rounds" yaml:"rounds"`
}

type Catalog struct {
	byName map[string]Entry
	names  []string            // 用來穩定排序
	unique map[string]struct{} // 一組遊戲，檔名需唯一
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	multFS, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byName: map[string]Entry{},
		names:  make([]string, 0, 16),
		unique: map[string]struct{}{},
		config: multFS,
		frozen: false,
	}, nil
}

func (c *Catalog) Register(metas ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	seenName := map[string]struct{}{}
	seenCfg := map[string]struct{}{}
	for i := range metas {
		meta := &metas[i]
		meta.Name = normalize(meta.Name)
		if meta.Name == "" {
			return errs.NewFatal("game name required")
		}
		if err := validFileName(meta.ConfigName); err != nil {
			return err
		}
		if _, ok := c.config.index[meta.ConfigName]; !ok {
			return errs.NewFatal(fmt.Sprintf("config file not found: %s", meta.ConfigName))
		}
		if _, ok := c.byName[meta.Name]; ok {
			return ErrDupName
		}
		if _, ok := c.unique[meta.ConfigName]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate config name: %s", meta.ConfigName))
		}
		if _, ok := seenName[meta.Name]; ok {
			return ErrDupName
		}
		if _, ok := seenCfg[meta.ConfigName]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate config name: %s", meta.ConfigName))
		}
		seenName[meta.Name] = struct{}{}
		seenCfg[meta.ConfigName] = struct{}{}
	}
	for _, meta := range metas {
		c.unique[meta.ConfigName] = struct{}{}
		c.byName[meta.Name] = meta
		c.names = append(c.names, meta.Name)
	}
	slices.Sort(c.names)
	return nil
}

// RegisterAll
//
// 掃描所有設定檔來源，把每個可辨識的設定檔（.yaml/.yml/.json）解析成 *spec.GameSetting，
// 並以設定檔內宣告的 name 註冊。
//
//  1. Fail-fast：任何一個檔案讀取/解析/基本檢查失敗，都會立刻回傳 error。
//  2. 原子性：全部檔案都通過才一次性呼叫 Register。
//  3. 穩定性：依檔名排序後處理。
func (c *Catalog) RegisterAll() error {
	files := c.config.Names()
	if len(files) == 0 {
		return errs.NewFatal("no config files found to register")
	}
	entries := make([]Entry, 0, len(files))
	seen := map[string]string{}
	for _, file := range files {
		gs, err := c.parse(file)
		if err != nil {
			return errs.WrapWithExtra(err, "parse gamesetting failed", "config="+file)
		}
		name := normalize(gs.Name)
		if prev, ok := seen[name]; ok {
			return errs.NewFatal(fmt.Sprintf("duplicate game name: %s (config=%s and %s)", name, prev, file))
		}
		if _, ok := c.byName[name]; ok {
			return errs.NewFatal(fmt.Sprintf("game name already registered: %s (config=%s)", name, file))
		}
		seen[name] = file
		entries = append(entries, Entry{Name: name, ConfigName: file})
	}
	return c.Register(entries...)
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	m, ok := c.byName[normalize(name)]
	return m, ok
}

func (c *Catalog) Names() []string {
	if len(c.names) == 0 {
		return nil
	}
	return slices.Clone(c.names)
}

func (c *Catalog) All() []Entry {
	m := make([]Entry, 0, len(c.names))
	for _, n := range c.names {
		m = append(m, c.byName[n])
	}
	return m
}

// Summary 依名稱排序列出每個遊戲的骰子數、面數與預設回合數
func (c *Catalog) Summary() ([]Summary, error) {
	out := make([]Summary, 0, len(c.names))
	for _, n := range c.names {
		gs, err := c.GameSettingByName(n)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{
			Name:   gs.Name,
			Dice:   gs.DieCount(),
			Sides:  len(gs.Dice[0].Symbols),
			Rounds: gs.Rounds,
		})
	}
	return out, nil
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

// GameSettingByName
//
// 會讀取fs中的 YAML/JSON 設定、初始化並執行基本檢查後回傳
func (c *Catalog) GameSettingByName(name string) (*spec.GameSetting, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return nil, errs.Indexf("name %q does not exist in catalog", name)
	}
	return c.parse(e.ConfigName)
}

func (c *Catalog) parse(file string) (*spec.GameSetting, error) {
	src, ok := c.config.GetFS(file)
	if !ok {
		return nil, errs.NewWarn("file name does not exist in catalog")
	}
	raw, err := fs.ReadFile(src, file)
	if err != nil {
		return nil, errs.Wrap(err, "catalog parse file error")
	}
	return parseGameSettingByExt(file, raw)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty config filename")
	}
	// 1) 不能包含路徑或類似字元
	if strings.ContainsAny(file, `/\:`) {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (must be a basename; no / \\\\ :) ", file))
	}
	// 2) 必須以 .yaml/.yml/.json 結尾（大小寫不敏感）
	if !isConfigFile(file) {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (must end with .yaml, .yml, or .json)", file))
	}
	// 3) 不能以 . 開頭（防止直接 .yaml / .yml）
	if strings.HasPrefix(file, ".") {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (cannot start with '.')", file))
	}
	return nil
}

func isConfigFile(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func parseGameSettingByExt(filename string, raw []byte) (*spec.GameSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return spec.GetGameSettingByYAML(raw)
	case ".json":
		return spec.GetGameSettingByJSON(raw)
	default:
		return nil, errs.NewFatal(fmt.Sprintf("unsupported config format: %q", filename))
	}
}

type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	for i, s := range src {
		if s == nil {
			return nil, errs.NewFatal(fmt.Sprintf("fs[%d] is nil", i))
		}
	}

	m := &multiFS{
		src:   src,
		index: make(map[string]int, 32),
	}

	// 預先建立索引並檢查跨來源重複
	for i := 0; i < len(src); i++ {
		err := fs.WalkDir(src[i], ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// 設定目錄必須是扁平的，只允許根目錄 "."
				if path == "." {
					return nil
				}
				return errs.NewFatal(fmt.Sprintf("config FS must be flat (no subdirectories): %q", path))
			}
			if strings.HasPrefix(path, ".") || !isConfigFile(path) {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.NewFatal(fmt.Sprintf("duplicate config %q in fs[%d] and fs[%d]", path, prev, i))
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	if id, ok := m.index[name]; ok {
		return m.src[id], ok
	}
	return nil, false
}

// Names 所有已索引的設定檔名（排序）
func (m *multiFS) Names() []string {
	out := make([]string, 0, len(m.index))
	for n := range m.index {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
