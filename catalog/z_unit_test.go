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
	"errors"
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/presets"
)

func mapFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for k, v := range files {
		m[k] = &fstest.MapFile{Data: []byte(v)}
	}
	return m
}

func TestPresetsRegisterAll(t *testing.T) {
	c, err := New(presets.FS)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.RegisterAll(); err != nil {
		t.Fatalf("register all: %v", err)
	}
	want := []string{"coin-trio", "fair-d6-pair", "letters", "loaded-d6-pair"}
	got := c.Names()
	if len(got) != len(want) {
		t.Fatalf("names got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names got %v want %v", got, want)
		}
	}
	gs, err := c.GameSettingByName(" Loaded-D6-Pair ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if gs.DieCount() != 2 || gs.Dice[1].Weights["6"] != 5 {
		t.Fatalf("loaded pair got %+v", gs)
	}
	sum, err := c.Summary()
	if err != nil || len(sum) != 4 {
		t.Fatalf("summary got %v %v", sum, err)
	}
	if sum[0].Name != "coin-trio" || sum[0].Dice != 3 || sum[0].Sides != 2 {
		t.Fatalf("coin trio summary got %+v", sum[0])
	}
}

func TestUnknownName(t *testing.T) {
	c, _ := New(presets.FS)
	_ = c.RegisterAll()
	if _, err := c.GameSettingByName("yahtzee"); !errors.Is(err, errs.ErrIndex) {
		t.Fatalf("unknown name got %v", err)
	}
}

func TestRegisterRules(t *testing.T) {
	src := mapFS(map[string]string{
		"a.yaml":    "name: a\ndice: [{symbols: [H, T]}]\n",
		"b.json":    `{"name":"b","dice":[{"symbols":["H","T"]}]}`,
		"notes.txt": "ignored",
	})
	c, err := New(src)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Register(Entry{Name: "A", ConfigName: "a.yaml"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.Register(Entry{Name: "a", ConfigName: "b.json"}); !errors.Is(err, ErrDupName) {
		t.Fatalf("dup name got %v", err)
	}
	if err := c.Register(Entry{Name: "c", ConfigName: "c.yaml"}); err == nil {
		t.Fatalf("missing file should fail")
	}
	if err := c.Register(Entry{Name: "n", ConfigName: "notes.txt"}); err == nil {
		t.Fatalf("non config file should fail")
	}
	c.Freeze()
	if err := c.Register(Entry{Name: "b", ConfigName: "b.json"}); err == nil {
		t.Fatalf("frozen catalog accepted register")
	}
	if e, ok := c.GetByName("a"); !ok || e.ConfigName != "a.yaml" {
		t.Fatalf("lookup got %+v %v", e, ok)
	}
}

func TestRegisterAllAtomic(t *testing.T) {
	src := mapFS(map[string]string{
		"a.yaml": "name: a\ndice: [{symbols: [H, T]}]\n",
		"b.yaml": "name: b\ndice: [{symbols: [H, H]}]\n",
	})
	c, _ := New(src)
	if err := c.RegisterAll(); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("bad config got %v", err)
	}
	if len(c.All()) != 0 {
		t.Fatalf("partial registration happened")
	}
}

func TestRegisterAllDuplicateName(t *testing.T) {
	src := mapFS(map[string]string{
		"a.yaml": "name: same\ndice: [{symbols: [H, T]}]\n",
		"b.yaml": "name: SAME\ndice: [{symbols: [H, T]}]\n",
	})
	c, _ := New(src)
	if err := c.RegisterAll(); err == nil {
		t.Fatalf("duplicate names should fail")
	}
}

func TestMultiFS(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatalf("no fs should fail")
	}
	a := mapFS(map[string]string{"x.yaml": ""})
	b := mapFS(map[string]string{"x.yaml": ""})
	if _, err := New(a, b); err == nil {
		t.Fatalf("duplicate file across fs should fail")
	}
	nested := mapFS(map[string]string{"sub/x.yaml": ""})
	if _, err := New(nested); err == nil {
		t.Fatalf("nested fs should fail")
	}
}
