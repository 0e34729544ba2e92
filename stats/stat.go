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

package stats

import (
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/montecarlo/analyzer"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// Report 一次模擬的統計報告
type Report struct {
	Summary *SummaryReport       `json:"Summary" yaml:"Summary"`
	Jackpot analyzer.PointStat   `json:"Jackpot" yaml:"Jackpot"`
	Faces   []FaceReport         `json:"Faces" yaml:"Faces"`
	Combos  analyzer.Counts      `json:"Combos" yaml:"Combos"`
	Perms   analyzer.Counts      `json:"Perms" yaml:"Perms"`
	Fits    []analyzer.FitResult `json:"Fits,omitempty" yaml:"Fits,omitempty"`
}

type SummaryReport struct {
	GameName    string  `json:"GameName" yaml:"GameName"`
	Dice        int     `json:"Dice" yaml:"Dice"`
	Sides       int     `json:"Sides" yaml:"Sides"`
	Rounds      int     `json:"Rounds" yaml:"Rounds"`
	Jackpot     int     `json:"Jackpot" yaml:"Jackpot"`
	JackpotRate float64 `json:"JackpotRate" yaml:"JackpotRate"`
	Confidence  float64 `json:"Confidence" yaml:"Confidence"`
	Combos      int     `json:"Combos" yaml:"Combos"`
	Perms       int     `json:"Perms" yaml:"Perms"`
}

// FaceReport 單一符號：總出現次數與每回合出現次數的描述統計
type FaceReport struct {
	Symbol  string           `json:"Symbol" yaml:"Symbol"`
	Count   int              `json:"Count" yaml:"Count"`
	Share   float64          `json:"Share" yaml:"Share"`
	PerRoll analyzer.Summary `json:"PerRoll" yaml:"PerRoll"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Build 由 Analyzer 整理出完整報告。
//
// confidence 不在 (0,1) 時以 analyzer.DefaultConfidence 計算；沒有回合時不做適合度檢定。
func Build(name string, a *analyzer.Analyzer, confidence float64) *Report {
	if !(confidence > 0 && confidence < 1) {
		confidence = analyzer.DefaultConfidence
	}
	g := a.Game()
	rounds := a.Rounds()
	dice := a.Table().Width()

	r := &Report{
		Summary: &SummaryReport{
			GameName:   name,
			Dice:       dice,
			Sides:      g.Sides(),
			Rounds:     rounds,
			Jackpot:    a.Jackpot(),
			Confidence: confidence,
		},
		Jackpot: a.JackpotEstimate(confidence),
		Combos:  a.ComboCount(),
		Perms:   a.PermutationCount(),
	}
	r.Summary.JackpotRate = r.Jackpot.Hat
	r.Summary.Combos = len(r.Combos)
	r.Summary.Perms = len(r.Perms)

	cells := float64(rounds * dice)
	for _, f := range a.FaceFrequency() {
		fr := FaceReport{Symbol: f.Symbol, Count: f.Count, PerRoll: a.FaceCountSummary(f.Symbol)}
		if cells > 0 {
			fr.Share = float64(f.Count) / cells
		}
		r.Faces = append(r.Faces, fr)
	}

	if rounds > 0 {
		for i := 0; i < dice; i++ {
			fit, err := a.FitTest(i)
			if err != nil {
				continue
			}
			r.Fits = append(r.Fits, fit)
		}
	}
	return r
}

func (r *Report) WriteWith(w io.Writer, rep ReportRender) error {
	return rep.Write(w, r)
}

// Fprint 輸出耗時與文字表格
func (r *Report) Fprint(w io.Writer, ut time.Duration) error {
	_, err := io.WriteString(w, FormatDuration(ut, r.Summary.Rounds)+r.Text())
	return err
}

// Text 文字表格：摘要、各面統計、適合度檢定
func (r *Report) Text() string {
	sk, sm := r.fmtBasic()
	out := fmtTable(r.Summary.GameName, sk, sm)
	if len(r.Faces) > 0 {
		fk, fm := r.fmtFaces()
		out += fmtTable("Faces", fk, fm)
	}
	if len(r.Fits) > 0 {
		gk, gm := r.fmtFits()
		out += fmtTable("Goodness of Fit", gk, gm)
	}
	return out
}

// ============================================================
// ** 內部方法 **
// ============================================================

// FormatDuration 用時與每秒回合數
func FormatDuration(d time.Duration, rolls int) string {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	rps := int(float64(rolls) / sec)
	if sec < 60.0 {
		return p.Sprintf("used: %.2f seconds\nrps : %d rounds/sec\n", sec, rps)
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		return p.Sprintf("used: %dm %ds\nrps : %d rounds/sec\n", m, s, rps)
	}
	return p.Sprintf("used: %dh:%dm:%ds\nrps : %d rounds/sec\n", h, m, s, rps)
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	s := r.Summary
	ciKey := p.Sprintf("Jackpot %.0f%% CI", 100.0*s.Confidence)
	basic := map[string]string{
		"Game Name":    p.Sprintf("%s", s.GameName),
		"Dice":         p.Sprintf("%d x d%d", s.Dice, s.Sides),
		"Total Rounds": p.Sprintf("%d", s.Rounds),
		"Jackpot":      p.Sprintf("%d", s.Jackpot),
		"Jackpot Rate": p.Sprintf("%.4f %%", 100.0*s.JackpotRate),
		ciKey:          p.Sprintf("[%.4f%%,%.4f%%]", 100.0*r.Jackpot.CI.Lo, 100.0*r.Jackpot.CI.Hi),
		"Combinations": p.Sprintf("%d", s.Combos),
		"Permutations": p.Sprintf("%d", s.Perms),
	}
	keys := []string{"Game Name", "Dice", "Total Rounds", "Jackpot", "Jackpot Rate", ciKey, "Combinations", "Permutations"}
	return keys, basic
}

func (r *Report) fmtFaces() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	keys := make([]string, 0, len(r.Faces))
	msg := make(map[string]string, len(r.Faces))
	for _, f := range r.Faces {
		keys = append(keys, f.Symbol)
		msg[f.Symbol] = p.Sprintf("%d (%.2f%%) mean %.3f std %.3f", f.Count, 100.0*f.Share, f.PerRoll.Mean, f.PerRoll.Std)
	}
	return keys, msg
}

func (r *Report) fmtFits() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	keys := make([]string, 0, len(r.Fits))
	msg := make(map[string]string, len(r.Fits))
	for _, f := range r.Fits {
		k := p.Sprintf("Die %d", f.Die)
		keys = append(keys, k)
		msg[k] = p.Sprintf("chi2 %.3f df %d p %.4f", f.ChiSquare, f.DoF, f.PValue)
	}
	return keys, msg
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := runewidth.StringWidth(title)
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
