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
	"errors"
	"testing"

	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/sdk/sampler"
)

const loadedYAML = `
name: loaded-pair
rounds: 500
seed: 42
prng: pcg32
sampler: cdf
dice:
  - symbols: ["1", "2", "3", "4", "5", "6"]
    weights: {"6": 3.5}
    count: 2
`

func TestYAMLSetting(t *testing.T) {
	gs, err := GetGameSettingByYAML([]byte(loadedYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gs.Name != "loaded-pair" || gs.Rounds != 500 || gs.Seed != 42 {
		t.Fatalf("setting got %+v", gs)
	}
	if gs.DieCount() != 2 || len(gs.Expand()) != 2 {
		t.Fatalf("die count got %d", gs.DieCount())
	}
	if gs.SamplerKind() != sampler.KindCDF {
		t.Fatalf("sampler got %s", gs.SamplerKind())
	}
	d, err := gs.Expand()[1].Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if w, _ := d.Weight("6"); w != 3.5 {
		t.Fatalf("weight got %v want 3.5", w)
	}
	if w, _ := d.Weight("1"); w != 1 {
		t.Fatalf("weight got %v want 1", w)
	}
}

func TestJSONSetting(t *testing.T) {
	raw := `{"name":"coin","dice":[{"symbols":["H","T"]},{"symbols":["H","T"],"count":2}]}`
	gs, err := GetGameSettingByJSON([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gs.DieCount() != 3 || gs.Dice[0].Count != 1 {
		t.Fatalf("count defaults not applied: %+v", gs.Dice)
	}
	if gs.Factory() == nil {
		t.Fatalf("default factory missing")
	}
}

func TestSettingValidation(t *testing.T) {
	cases := map[string]string{
		"no name":        `{"dice":[{"symbols":["H","T"]}]}`,
		"no dice":        `{"name":"x"}`,
		"bad prng":       `{"name":"x","prng":"mt","dice":[{"symbols":["H","T"]}]}`,
		"bad sampler":    `{"name":"x","sampler":"lut","dice":[{"symbols":["H","T"]}]}`,
		"negative round": `{"name":"x","rounds":-1,"dice":[{"symbols":["H","T"]}]}`,
		"negative count": `{"name":"x","dice":[{"symbols":["H","T"],"count":-2}]}`,
		"mixed symbols":  `{"name":"x","dice":[{"symbols":["H","1"]}]}`,
		"dup symbols":    `{"name":"x","dice":[{"symbols":["H","H"]}]}`,
		"sides mismatch": `{"name":"x","dice":[{"symbols":["H","T"]},{"symbols":["1","2","3"]}]}`,
		"zero weights":   `{"name":"x","dice":[{"symbols":["H","T"],"weights":{"H":0,"T":0}}]}`,
		"neg weight":     `{"name":"x","dice":[{"symbols":["H","T"],"weights":{"H":-1}}]}`,
	}
	for name, raw := range cases {
		if _, err := GetGameSettingByJSON([]byte(raw)); !errors.Is(err, errs.ErrValue) {
			t.Fatalf("%s: got %v want value error", name, err)
		}
	}
	raw := `{"name":"x","dice":[{"symbols":["H","T"],"weights":{"Z":2}}]}`
	if _, err := GetGameSettingByJSON([]byte(raw)); !errors.Is(err, errs.ErrIndex) {
		t.Fatalf("unknown weight symbol got %v", err)
	}
}

func TestStrictDecoding(t *testing.T) {
	if _, err := GetGameSettingByYAML([]byte("name: x\nround: 3\ndice: [{symbols: [H, T]}]\n")); err == nil {
		t.Fatalf("misspelled field should fail")
	}
	if _, err := GetGameSettingByJSON([]byte(`{"name":"x","extra":1}`)); err == nil {
		t.Fatalf("unknown json field should fail")
	}
	e, _ := errs.AsErr(func() error { _, err := GetGameSettingByJSON([]byte(`{`)); return err }())
	if e == nil || e.ErrLv != errs.Fatal {
		t.Fatalf("malformed json should be fatal, got %v", e)
	}
}

func TestInitIdempotent(t *testing.T) {
	gs := &GameSetting{Name: "x", Dice: []DieSetting{{Symbols: []string{"a", "b"}}}}
	if err := gs.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := gs.Init(); err != nil {
		t.Fatalf("second init: %v", err)
	}
}
