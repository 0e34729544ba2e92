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

// 開發用任務：go run ./scripts [task]
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type task struct {
	help string
	run  func() error
}

var tasks = map[string]task{
	"test":        {"go test ./... -cover -count=1, only ok/FAIL lines", runTest},
	"test-detail": {"go test ./... -v -count=1 without [no test files] lines", runTestDetail},
	"presets":     {"list the embedded dice presets", runPresets},
	"demo":        {"roll the fair-d6-pair preset with a fixed seed", runDemo},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	t, ok := tasks[os.Args[1]]
	if !ok {
		fmt.Println(warnStyle.Render("unknown task: " + os.Args[1]))
		usage()
		os.Exit(1)
	}
	if err := t.run(); err != nil {
		fmt.Println(failStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: go run ./scripts [task]")
	names := make([]string, 0, len(tasks))
	for n := range tasks {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		fmt.Printf("  %-12s %s\n", n, tasks[n].help)
	}
}

func runTest() error {
	fmt.Println(infoStyle.Render("running tests"))
	cleanCache()
	return stream(exec.Command("go", "test", "./...", "-cover", "-count=1"), func(line string) (string, bool) {
		switch {
		case strings.HasPrefix(line, "ok"):
			return okStyle.Render(line), true
		case strings.HasPrefix(line, "FAIL"),
			strings.Contains(line, "build failed"),
			strings.Contains(line, "setup failed"):
			return failStyle.Render(line), true
		}
		return "", false
	})
}

func runTestDetail() error {
	fmt.Println(infoStyle.Render("running tests (detail)"))
	cleanCache()
	return stream(exec.Command("go", "test", "./...", "-v", "-count=1"), func(line string) (string, bool) {
		switch {
		case strings.Contains(line, "[no test files]"):
			return "", false
		case strings.HasPrefix(line, "ok"), strings.HasPrefix(line, "--- PASS"):
			return okStyle.Render(line), true
		case strings.HasPrefix(line, "FAIL"), strings.HasPrefix(line, "--- FAIL"):
			return failStyle.Render(line), true
		}
		return line, true
	})
}

func runPresets() error {
	return passthrough(exec.Command("go", "run", "./cmd/run", "--list"))
}

func runDemo() error {
	return passthrough(exec.Command("go", "run", "./cmd/run", "-g", "fair-d6-pair", "-s", "42", "-n", "100000", "-p"))
}

// 清 cache 失敗不中斷
func cleanCache() {
	if err := exec.Command("go", "clean", "-testcache").Run(); err != nil {
		fmt.Println(warnStyle.Render("go clean -testcache failed: " + err.Error()))
	}
}

func passthrough(cmd *exec.Cmd) error {
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// stream 合併 stdout/stderr 後逐行過濾輸出
func stream(cmd *exec.Cmd, filter func(string) (string, bool)) error {
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		pw.CloseWithError(cmd.Wait())
	}()
	sc := bufio.NewScanner(pr)
	for sc.Scan() {
		if out, ok := filter(sc.Text()); ok {
			fmt.Println(out)
		}
	}
	return sc.Err()
}
