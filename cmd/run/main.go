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
	"os"

	"github.com/alecthomas/kong"
	"github.com/zintix-labs/montecarlo/logger"
	"github.com/zintix-labs/montecarlo/sdk/perf"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("montecarlo"),
		kong.Description("Roll weighted dice and report jackpot, combination and permutation statistics."),
		kong.UsageOnError(),
	)

	mode, err := logger.ParseLogMode(cli.LogMode)
	ctx.FatalIfErrorf(err)
	log := logger.NewDefaultLogger(mode)

	err = perf.RunPProf(func() error { return run(&cli, os.Stdout, log) }, perf.Mode(cli.PProf), cli.PProfDir)
	if err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}
