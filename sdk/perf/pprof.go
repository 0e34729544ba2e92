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

// Package perf 以 runtime/pprof 包住一次執行，輸出 cpu / heap / allocs 檔案。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/montecarlo/errs"
)

const DefaultDir = "build/profiling" // pprof檔案寫入路徑

// Mode pprof 種類
type Mode string

const (
	ModeNone   Mode = ""
	ModeCPU    Mode = "cpu"
	ModeHeap   Mode = "heap"
	ModeAllocs Mode = "allocs"
)

// RunPProf 依 mode 執行 exe 並寫出對應的 profile；mode 為空時只執行 exe。
func RunPProf(exe func() error, mode Mode, dir string) error {
	if dir == "" {
		dir = DefaultDir
	}
	switch mode {
	case ModeNone:
		return exe()
	case ModeCPU:
		return PProfCPU(exe, dir)
	case ModeHeap:
		return writeAfter(exe, dir, "heap")
	case ModeAllocs:
		return writeAfter(exe, dir, "allocs")
	default:
		return errs.Valuef("unknown pprof mode %q", mode)
	}
}

func PProfCPU(exe func() error, dir string) error {
	f, err := create(dir, "cpu")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "failed to start pprof")
	}
	defer pprof.StopCPUProfile()

	return exe()
}

// 先執行目標邏輯，再拍一次快照
func writeAfter(exe func() error, dir string, name string) error {
	if err := exe(); err != nil {
		return err
	}
	// 盡量讓快照貼近最新狀態
	runtime.GC()

	f, err := create(dir, name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.Lookup(name).WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "failed to write "+name+" profile")
	}
	return nil
}

func create(dir string, name string) (*os.File, error) {
	// 確保目錄存在
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "failed to create pprof dir")
	}
	f, err := os.Create(filepath.Join(dir, name+".pprof"))
	if err != nil {
		return nil, errs.Wrap(err, "failed to create "+name+".pprof")
	}
	return f, nil
}
