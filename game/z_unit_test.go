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
	"errors"
	"slices"
	"testing"

	"github.com/zintix-labs/montecarlo/die"
	"github.com/zintix-labs/montecarlo/errs"
)

func mustDie(t *testing.T, symbols []string, seed int64) *die.Die {
	t.Helper()
	d, err := die.New(symbols, die.WithSeed(seed))
	if err != nil {
		t.Fatalf("build die: %v", err)
	}
	return d
}

func twoDice(t *testing.T) *Game {
	t.Helper()
	g, err := New([]*die.Die{
		mustDie(t, []string{"1", "2", "3", "4", "5", "6"}, 1),
		mustDie(t, []string{"A", "B", "C", "D", "E", "F"}, 2),
	})
	if err != nil {
		t.Fatalf("build game: %v", err)
	}
	return g
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("empty dice got %v", err)
	}
	d := mustDie(t, []string{"1", "2"}, 1)
	if _, err := New([]*die.Die{d, nil}); !errors.Is(err, errs.ErrType) {
		t.Fatalf("nil die got %v", err)
	}
	coin := mustDie(t, []string{"H", "T"}, 1)
	d6 := mustDie(t, []string{"1", "2", "3", "4", "5", "6"}, 1)
	if _, err := New([]*die.Die{coin, d6}); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("mismatched sides got %v", err)
	}
}

func TestPlayShape(t *testing.T) {
	g := twoDice(t)
	if g.Rounds() != 0 || g.Wide().Len() != 0 {
		t.Fatalf("fresh game should have empty results")
	}
	if err := g.Play(10); err != nil {
		t.Fatalf("play: %v", err)
	}
	w := g.Wide()
	if w.Len() != 10 || w.Width() != 2 {
		t.Fatalf("wide shape got (%d,%d) want (10,2)", w.Len(), w.Width())
	}
	for i, r := range w.Rows {
		if r.Roll != i+1 {
			t.Fatalf("row %d has roll %d", i, r.Roll)
		}
	}
	if n := g.Narrow(); n.Len() != 20 {
		t.Fatalf("narrow rows got %d want 20", n.Len())
	}
}

func TestPlayOverwrites(t *testing.T) {
	g := twoDice(t)
	_ = g.Play(10)
	_ = g.Play(3)
	if g.Rounds() != 3 {
		t.Fatalf("rounds got %d want 3", g.Rounds())
	}
}

func TestPlayFailureKeepsPreviousResults(t *testing.T) {
	a := mustDie(t, []string{"H", "T"}, 1)
	b := mustDie(t, []string{"H", "T"}, 2)
	g, _ := New([]*die.Die{a, b})
	_ = g.Play(4)
	before := g.Wide()

	_ = b.ChangeWeight("H", 0)
	_ = b.ChangeWeight("T", 0)
	if err := g.Play(5); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("zero weight play got %v", err)
	}
	if g.Rounds() != 4 {
		t.Fatalf("failed play replaced results")
	}
	if after := g.Wide(); after.Rows[0].Outcomes[0] != before.Rows[0].Outcomes[0] {
		t.Fatalf("failed play changed results")
	}
	if err := g.Play(-1); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("negative play got %v", err)
	}
}

func TestResults(t *testing.T) {
	g := twoDice(t)
	_ = g.Play(10)

	wide, err := g.Results("wide")
	if err != nil || wide.Shape() != ShapeWide || wide.Len() != 10 {
		t.Fatalf("wide results got %v %v", wide, err)
	}
	narrow, err := g.Results("narrow")
	if err != nil || narrow.Shape() != ShapeNarrow || narrow.Len() != 20 {
		t.Fatalf("narrow results got %v %v", narrow, err)
	}
	if _, err := g.Results("tall"); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("tall got %v want value error", err)
	}
}

func TestResultsAreCopies(t *testing.T) {
	g := twoDice(t)
	_ = g.Play(2)
	w := g.Wide()
	w.Rows[0].Outcomes[0] = "X"
	n := g.Narrow()
	n.Rows[0].Outcome = "X"
	if g.Wide().Rows[0].Outcomes[0] == "X" {
		t.Fatalf("wide copy aliased game state")
	}
}

func TestNarrowRoundTrip(t *testing.T) {
	g := twoDice(t)
	_ = g.Play(25)
	w := g.Wide()
	n := g.Narrow()

	for _, r := range w.Rows {
		for j, d := range w.Dice {
			got, ok := n.Lookup(Key{Roll: r.Roll, Die: d})
			if !ok || got != r.Outcomes[j] {
				t.Fatalf("(%d,%d) got %q,%v want %q", r.Roll, d, got, ok, r.Outcomes[j])
			}
		}
	}
	if _, ok := n.Lookup(Key{Roll: 26, Die: 0}); ok {
		t.Fatalf("lookup past last roll should miss")
	}

	back, err := n.Wide()
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if !slices.Equal(back.Dice, w.Dice) || back.Len() != w.Len() {
		t.Fatalf("pivot shape mismatch")
	}
	for i := range w.Rows {
		if !slices.Equal(back.Rows[i].Outcomes, w.Rows[i].Outcomes) {
			t.Fatalf("pivot row %d mismatch", i)
		}
	}
}

func TestNarrowWideRejectsBrokenTable(t *testing.T) {
	n := &NarrowTable{Rows: []NarrowRow{
		{Roll: 1, Die: 0, Outcome: "A"},
		{Roll: 1, Die: 1, Outcome: "B"},
		{Roll: 2, Die: 0, Outcome: "A"},
	}}
	if _, err := n.Wide(); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("ragged table got %v", err)
	}
}

func TestColumn(t *testing.T) {
	g := twoDice(t)
	_ = g.Play(5)
	col, err := g.Wide().Column(1)
	if err != nil || len(col) != 5 {
		t.Fatalf("column got %v %v", col, err)
	}
	if _, err := g.Wide().Column(2); !errors.Is(err, errs.ErrIndex) {
		t.Fatalf("out of range column got %v", err)
	}
}

func TestRoundHook(t *testing.T) {
	var seen []int
	g, _ := New([]*die.Die{mustDie(t, []string{"H", "T"}, 1)}, WithRoundHook(func(r int) { seen = append(seen, r) }))
	_ = g.Play(3)
	if !slices.Equal(seen, []int{1, 2, 3}) {
		t.Fatalf("hook got %v", seen)
	}
}

func TestSameSeedSamePlay(t *testing.T) {
	a := twoDice(t)
	b := twoDice(t)
	_ = a.Play(30)
	_ = b.Play(30)
	for i := range a.Wide().Rows {
		if !slices.Equal(a.Wide().Rows[i].Outcomes, b.Wide().Rows[i].Outcomes) {
			t.Fatalf("row %d differs under same seeds", i)
		}
	}
}
