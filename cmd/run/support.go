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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zintix-labs/montecarlo"
	"github.com/zintix-labs/montecarlo/analyzer"
	"github.com/zintix-labs/montecarlo/errs"
	"github.com/zintix-labs/montecarlo/game"
	"github.com/zintix-labs/montecarlo/presets"
	"github.com/zintix-labs/montecarlo/sdk/core"
	"github.com/zintix-labs/montecarlo/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type CLI struct {
	Preset     string  `short:"g" default:"fair-d6-pair" help:"Embedded preset name (see --list)"`
	Config     string  `short:"c" type:"existingfile" help:"YAML/JSON game setting file, overrides --preset"`
	Rounds     int     `short:"n" default:"0" help:"Rounds to play (0 uses the setting's rounds)"`
	Seed       int64   `short:"s" default:"0" env:"MONTECARLO_SEED" help:"RNG seed (0 uses the setting's seed or a random one)"`
	Format     string  `short:"f" default:"text" enum:"text,json,yaml" help:"Report format: text, json, yaml"`
	Shape      string  `default:"none" enum:"wide,narrow,none" help:"Also print the play table: wide, narrow, none"`
	Rows       int     `default:"20" help:"Max table rows printed with --shape"`
	Face       string  `help:"Print per-roll counts summary for this face"`
	Confidence float64 `default:"0.95" help:"Confidence level of the jackpot interval"`
	LogMode    string  `default:"silence" env:"MONTECARLO_LOG_MODE" enum:"dev,prod,silence" help:"Log mode: dev, prod, silence"`
	Progress   bool    `short:"p" help:"Show progress bar"`
	List       bool    `help:"List embedded presets and exit"`
	Checkpoint bool    `help:"Print the dice RNG checkpoint taken before the run"`
	PProf      string  `name:"pprof" help:"Write a pprof profile: cpu, heap, allocs"`
	PProfDir   string  `name:"pprof-dir" default:"build/profiling" help:"Directory for pprof output"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

var lang = language.English

func run(cli *CLI, w io.Writer, log *slog.Logger) error {
	lab, err := montecarlo.NewAuto(core.Default(), montecarlo.Configs(presets.FS))
	if err != nil {
		return err
	}
	lab.SetLogger(log)

	if cli.List {
		return printList(lab, w)
	}

	sim, err := newSimulator(lab, cli)
	if err != nil {
		return err
	}
	if err := sim.SetConfidence(cli.Confidence); err != nil {
		return err
	}
	render, err := stats.RenderByName(cli.Format)
	if err != nil {
		return err
	}

	rounds := cli.Rounds
	if rounds == 0 {
		rounds = sim.Setting().Rounds
	}
	p := message.NewPrinter(lang)
	if cli.Format == "text" {
		fmt.Fprintln(w, headerStyle.Render(p.Sprintf("[GAME:%s] [DICE:%d] [ROUNDS:%d] [SEED:%d]",
			sim.Name, sim.Setting().DieCount(), rounds, sim.Seed())))
	}
	log.Info("run started", "game", sim.Name, "rounds", rounds, "seed", sim.Seed())

	rep, used, err := sim.Run(rounds, cli.Progress)
	if err != nil {
		return err
	}
	if cli.Format == "text" {
		err = rep.Fprint(w, used)
	} else {
		err = rep.WriteWith(w, render)
	}
	if err != nil {
		return errs.Wrap(err, "render report failed")
	}

	if cli.Face != "" {
		a, err := analyzer.New(sim.Game())
		if err != nil {
			return err
		}
		s := a.FaceCountSummary(cli.Face)
		fmt.Fprintln(w, labelStyle.Render(p.Sprintf("face %s: total %d mean %.3f std %.3f min %d max %d",
			s.Face, s.Total, s.Mean, s.Std, s.Min, s.Max)))
	}
	if err := printTable(w, sim.Game(), cli.Shape, cli.Rows); err != nil {
		return err
	}
	if cli.Checkpoint {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sim.Checkpoint()); err != nil {
			return errs.Wrap(err, "encode checkpoint failed")
		}
	}
	return nil
}

func newSimulator(lab *montecarlo.Lab, cli *CLI) (*montecarlo.Simulator, error) {
	if cli.Config != "" {
		raw, err := os.ReadFile(cli.Config)
		if err != nil {
			return nil, errs.Wrap(err, "read config failed")
		}
		if strings.EqualFold(filepath.Ext(cli.Config), ".json") {
			return lab.NewSimulatorByJSON(raw, cli.Seed)
		}
		return lab.NewSimulatorByYAML(raw, cli.Seed)
	}
	if cli.Seed != 0 {
		return lab.NewSimulatorWithSeed(cli.Preset, cli.Seed)
	}
	return lab.NewSimulator(cli.Preset)
}

func printList(lab *montecarlo.Lab, w io.Writer) error {
	sum, err := lab.Summary()
	if err != nil {
		return err
	}
	p := message.NewPrinter(lang)
	fmt.Fprintln(w, headerStyle.Render("presets"))
	for _, s := range sum {
		fmt.Fprintln(w, p.Sprintf("  %-16s %d x d%d  rounds %d", s.Name, s.Dice, s.Sides, s.Rounds))
	}
	return nil
}

func printTable(w io.Writer, g *game.Game, shape string, limit int) error {
	if shape == "" || shape == "none" {
		return nil
	}
	t, err := g.Results(shape)
	if err != nil {
		return err
	}
	switch tb := t.(type) {
	case *game.WideTable:
		header := []string{"roll"}
		for _, d := range tb.Dice {
			header = append(header, fmt.Sprintf("die_%d", d))
		}
		fmt.Fprintln(w, strings.Join(header, "\t"))
		for i, r := range tb.Rows {
			if i >= limit {
				break
			}
			fmt.Fprintf(w, "%d\t%s\n", r.Roll, strings.Join(r.Outcomes, "\t"))
		}
	case *game.NarrowTable:
		fmt.Fprintln(w, "roll\tdie\toutcome")
		for i, r := range tb.Rows {
			if i >= limit {
				break
			}
			fmt.Fprintf(w, "%d\t%d\t%s\n", r.Roll, r.Die, r.Outcome)
		}
	}
	return nil
}
