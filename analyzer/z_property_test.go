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

package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zintix-labs/montecarlo/die"
	"github.com/zintix-labs/montecarlo/game"
	"pgregory.net/rapid"
)

func drawGame(t *rapid.T, symbols []string) *game.Game {
	n := rapid.IntRange(1, 4).Draw(t, "dice")
	dice := make([]*die.Die, n)
	for i := range dice {
		d, err := die.New(symbols, die.WithSeed(rapid.Int64().Draw(t, "seed")))
		require.NoError(t, err)
		dice[i] = d
	}
	g, err := game.New(dice)
	require.NoError(t, err)
	require.NoError(t, g.Play(rapid.IntRange(0, 80).Draw(t, "rounds")))
	return g
}

func TestProperty_SingleFaceAlwaysJackpot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sym := rapid.SampledFrom([]string{"A", "7", "z"}).Draw(t, "symbol")
		g := drawGame(t, []string{sym})
		a, err := New(g)
		require.NoError(t, err)
		require.Equal(t, g.Rounds(), a.Jackpot())
		require.Len(t, a.ComboCount(), min(1, g.Rounds()))
	})
}

func TestProperty_CountsAddUpToRounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawGame(t, []string{"1", "2", "3", "4"})
		a, err := New(g)
		require.NoError(t, err)

		rounds := g.Rounds()
		require.Equal(t, rounds, a.ComboCount().Total())
		require.Equal(t, rounds, a.PermutationCount().Total())
		require.LessOrEqual(t, len(a.ComboCount()), len(a.PermutationCount()))
		require.Len(t, a.FaceCountsPerRoll("1"), rounds)

		freq := 0
		for _, f := range a.FaceFrequency() {
			freq += f.Count
		}
		require.Equal(t, rounds*len(g.Dice()), freq)

		est := a.JackpotEstimate(0.9)
		require.LessOrEqual(t, est.CI.Lo, est.Hat)
		require.GreaterOrEqual(t, est.CI.Hi, est.Hat)

		if rounds > 0 {
			fit, err := a.FitTest(0)
			require.NoError(t, err)
			require.GreaterOrEqual(t, fit.PValue, 0.0)
			require.LessOrEqual(t, fit.PValue, 1.0)
		}
	})
}
