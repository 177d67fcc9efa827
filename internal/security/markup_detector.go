package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// MarkupDetector は抽選名・説明文などのプレーンテキスト入力にHTMLが含まれるかを判定する。
// 入力は書き換えない。
type MarkupDetector struct {
	policy *bluemonday.Policy
}

// NewMarkupDetector はStrictPolicyを使うMarkupDetectorを生成する。
func NewMarkupDetector() *MarkupDetector {
	return &MarkupDetector{policy: bluemonday.StrictPolicy()}
}

// ContainsMarkup はStrictPolicyが入力からタグや属性を取り除くかを返す。
// StrictPolicyは残したテキストをエスケープし直すため、双方の実体参照を展開してから比較する。
func (d *MarkupDetector) ContainsMarkup(input string) bool {
	if input == "" {
		return false
	}
	return html.UnescapeString(d.policy.Sanitize(input)) != html.UnescapeString(input)
}
