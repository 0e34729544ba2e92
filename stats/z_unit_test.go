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

package stats_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/montecarlo/analyzer"
	"github.com/zintix-labs/montecarlo/die"
	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/game"
	"github.com/zintix-labs/montecarlo/stats"
	"gopkg.in/yaml.v3"
)

func buildReport(t *testing.T, rounds int) *stats.Report {
	t.Helper()
	dice := make([]*die.Die, 2)
	for i := range dice {
		d, err := die.New([]string{"1", "2", "3"}, die.WithSeed(int64(i+7)))
		if err != nil {
			t.Fatalf("build die: %v", err)
		}
		dice[i] = d
	}
	g, _ := game.New(dice)
	if err := g.Play(rounds); err != nil {
		t.Fatalf("play: %v", err)
	}
	a, _ := analyzer.New(g)
	return stats.Build("trio", a, 0.95)
}

func TestBuildReport(t *testing.T) {
	rep := buildReport(t, 300)
	s := rep.Summary
	if s.GameName != "trio" || s.Dice != 2 || s.Sides != 3 || s.Rounds != 300 {
		t.Fatalf("summary got %+v", s)
	}
	if rep.Combos.Total() != 300 || rep.Perms.Total() != 300 {
		t.Fatalf("count totals got %d/%d", rep.Combos.Total(), rep.Perms.Total())
	}
	if s.Combos != len(rep.Combos) || s.Perms != len(rep.Perms) {
		t.Fatalf("distinct key counts mismatch")
	}
	if rep.Jackpot.Hat != float64(s.Jackpot)/300 {
		t.Fatalf("jackpot rate mismatch")
	}
	if len(rep.Fits) != 2 {
		t.Fatalf("fits got %d want 2", len(rep.Fits))
	}
	total := 0
	share := 0.0
	for _, f := range rep.Faces {
		total += f.Count
		share += f.Share
	}
	if total != 600 || share < 0.999999 || share > 1.000001 {
		t.Fatalf("faces total=%d share=%v", total, share)
	}
}

func TestBuildEmptyPlay(t *testing.T) {
	rep := buildReport(t, 0)
	if rep.Summary.Rounds != 0 || len(rep.Fits) != 0 || len(rep.Faces) != 0 {
		t.Fatalf("empty report got %+v", rep)
	}
	if rep.Summary.Confidence != 0.95 {
		t.Fatalf("confidence got %v", rep.Summary.Confidence)
	}
}

func TestBuildInvalidConfidence(t *testing.T) {
	g, _ := game.New([]*die.Die{mustDie(t)})
	_ = g.Play(5)
	a, _ := analyzer.New(g)
	if rep := stats.Build("x", a, 1.5); rep.Summary.Confidence != analyzer.DefaultConfidence {
		t.Fatalf("confidence got %v", rep.Summary.Confidence)
	}
}

func TestRenderJSON(t *testing.T) {
	rep := buildReport(t, 50)
	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, &stats.JsonReportRender{}); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back stats.Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Summary.Rounds != 50 || back.Combos.Total() != 50 {
		t.Fatalf("decoded report got %+v", back.Summary)
	}
}

func TestRenderYAMLFlowKeys(t *testing.T) {
	rep := buildReport(t, 50)
	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, &stats.YAMLReportRender{}); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Key: [") {
		t.Fatalf("combo keys should render in flow style:\n%s", out)
	}
	var back stats.Report
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Summary.GameName != "trio" || back.Perms.Total() != 50 {
		t.Fatalf("decoded report got %+v", back.Summary)
	}
}

func TestRenderText(t *testing.T) {
	rep := buildReport(t, 1200)
	var buf bytes.Buffer
	if err := rep.WriteWith(&buf, &stats.TextReportRender{}); err != nil {
		t.Fatalf("text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"trio", "Total Rounds", "1,200", "Jackpot 95% CI", "Faces", "Goodness of Fit", "Die 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if !(strings.HasPrefix(line, "+") && strings.HasSuffix(line, "+")) &&
			!(strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")) {
			t.Fatalf("line not boxed: %q", line)
		}
	}
}

func TestRenderByName(t *testing.T) {
	for _, name := range []string{"", "text", "json", "yaml"} {
		if _, err := stats.RenderByName(name); err != nil {
			t.Fatalf("%q: %v", name, err)
		}
	}
	if _, err := stats.RenderByName("csv"); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("csv got %v", err)
	}
}

func TestFprintWritesDurationAndTable(t *testing.T) {
	var buf bytes.Buffer
	if err := buildReport(t, 10).Fprint(&buf, 90*time.Second); err != nil {
		t.Fatalf("fprint: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "used: 1m 30s") || !strings.Contains(out, "Total Rounds") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func mustDie(t *testing.T) *die.Die {
	t.Helper()
	d, err := die.New([]string{"H", "T"}, die.WithSeed(3))
	if err != nil {
		t.Fatalf("build die: %v", err)
	}
	return d
}
