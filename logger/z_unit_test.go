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

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/zintix-labs/montecarlo/errs"
)

func TestParseLogMode(t *testing.T) {
	cases := map[string]LogMode{"": ModeDev, "dev": ModeDev, " PROD ": ModeProd, "silence": ModeSilence}
	for in, want := range cases {
		got, err := ParseLogMode(in)
		if err != nil || got != want {
			t.Fatalf("%q got %v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseLogMode("verbose"); !errors.Is(err, errs.ErrValue) {
		t.Fatalf("unknown mode got %v", err)
	}
	if ModeProd.String() != "prod" {
		t.Fatalf("string got %q", ModeProd.String())
	}
}

func TestProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(ModeProd, &buf)
	l.Debug("hidden")
	l.Info("rolled", "rounds", 10)
	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, "hidden") {
		t.Fatalf("prod should drop debug logs")
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("not json: %q", line)
	}
	if rec["msg"] != "rolled" || rec["rounds"] != float64(10) {
		t.Fatalf("record got %v", rec)
	}
}

func TestDevWritesDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(ModeDev, &buf)
	l.Debug("built dice", "count", 2)
	if !strings.Contains(buf.String(), "built dice") {
		t.Fatalf("dev output got %q", buf.String())
	}
}

func TestSilence(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(ModeSilence, &buf)
	l.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("silence wrote %q", buf.String())
	}
	if !NewLogger(nil).Handler().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("nil handler should fall back to dev")
	}
}
