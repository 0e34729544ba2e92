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

package errs

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestKindMatchesSentinel(t *testing.T) {
	cases := []struct {
		err  error
		want error
		not  []error
	}{
		{Typef("bad %s", "type"), ErrType, []error{ErrValue, ErrIndex}},
		{Valuef("bad value"), ErrValue, []error{ErrType, ErrIndex}},
		{Indexf("missing %q", "x"), ErrIndex, []error{ErrType, ErrValue}},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.want) {
			t.Fatalf("%v should match %v", c.err, c.want)
		}
		for _, n := range c.not {
			if errors.Is(c.err, n) {
				t.Fatalf("%v should not match %v", c.err, n)
			}
		}
	}
}

func TestPlainErrorDoesNotMatchKind(t *testing.T) {
	if errors.Is(NewWarn("plain"), ErrValue) {
		t.Fatalf("kindless error matched ErrValue")
	}
}

func TestWrapKeepsLevelAndKind(t *testing.T) {
	inner := Valuef("duplicate symbol")
	w := Wrap(inner, "build die")
	if w.ErrLv != Warn {
		t.Fatalf("level got %s want warn", ErrLv(w.ErrLv))
	}
	if !errors.Is(w, ErrValue) {
		t.Fatalf("wrapped error lost kind")
	}

	ext := Wrap(io.EOF, "read config")
	if ext.ErrLv != Fatal {
		t.Fatalf("foreign cause should be fatal")
	}
	if !errors.Is(ext, io.EOF) {
		t.Fatalf("cause not reachable")
	}
}

func TestErrorString(t *testing.T) {
	e := WrapWithExtra(Indexf("unknown symbol"), "change weight", "symbol=Z")
	s := e.Error()
	for _, part := range []string{"errlv=warn", "kind=index", "extra: symbol=Z", "cause:"} {
		if !strings.Contains(s, part) {
			t.Fatalf("%q missing %q", s, part)
		}
	}
}
