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
	"encoding/json"
	"io"

	"github.com/zintix-labs/montecarlo/errs"
	"gopkg.in/yaml.v3"
)

// ReportRender 定義輸出行為
type ReportRender interface {
	Write(w io.Writer, r *Report) error
}

// RenderByName text / json / yaml，其餘回傳 KindValue
func RenderByName(name string) (ReportRender, error) {
	switch name {
	case "", "text":
		return &TextReportRender{}, nil
	case "json":
		return &JsonReportRender{}, nil
	case "yaml":
		return &YAMLReportRender{}, nil
	default:
		return nil, errs.Valuef("unknown report format %q", name)
	}
}

// Json渲染
type JsonReportRender struct {
	Indent bool
}

func (jr *JsonReportRender) Write(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	if jr.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(r)
}

// YAML渲染
type YAMLReportRender struct{}

func (yr *YAMLReportRender) Write(w io.Writer, r *Report) error {
	// 不管欄位，只要是陣列（YAML Sequence），就維持外層預設展開；
	// 只有「最內層的一維陣列」或「本身就是一維陣列」時才輸出成 flow style：[..., ...]
	return forceReadableList(w, r)
}

// 文字表格渲染
type TextReportRender struct{}

func (tr *TextReportRender) Write(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, r.Text())
	return err
}

// YAML 內層方法
func forceReadableList[T any](w io.Writer, t *T) error {
	var node yaml.Node
	if err := node.Encode(t); err != nil {
		return err
	}

	// 自頂向下調整所有 sequence node 的 style：
	// - 若該 sequence 內部「沒有子 sequence」也沒有 mapping，代表它是最內層的一維 => 用 flow style: [...]
	// - 其他情況保持預設 block（展開）
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
		return

	case yaml.SequenceNode:
		// 報告中的序列多半是結構陣列，只有純純量序列（例如 Key）才收成一行
		scalarsOnly := true
		for _, c := range n.Content {
			if c != nil && c.Kind != yaml.ScalarNode {
				scalarsOnly = false
				break
			}
		}

		for _, c := range n.Content {
			styleReadableSequences(c)
		}

		if scalarsOnly {
			n.Style = yaml.FlowStyle
		}
		return

	default:
		// Scalar / Alias 等不處理
		return
	}
}
