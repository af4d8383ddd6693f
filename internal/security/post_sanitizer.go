// Package security はアプリケーションのセキュリティ機能を提供する。
//
// PostSanitizerService は投稿本文を永続化前にサニタイズし、
// 保存データへのHTML混入（XSSの温床）を防ぐ。
// 投稿先はいずれもプレーンテキストのプラットフォームであるため、
// bluemondayのStrictPolicyで全タグを除去する。
package security

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// PostSanitizerService は投稿本文のサニタイズ機能のインターフェースを定義する。
type PostSanitizerService interface {
	// Sanitize は本文から全HTMLタグを除去して返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(content string) string
}

// postSanitizer はPostSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type postSanitizer struct {
	policy *bluemonday.Policy
}

// NewPostSanitizer はPostSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは許可タグを一切持たず、全HTML要素を除去する。
func NewPostSanitizer() *postSanitizer {
	return &postSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は本文から全HTMLタグを除去して返す。
// StrictPolicyはテキストノードを実体参照へエスケープするため、
// 保存する本文はプレーンテキストに戻してから返す
// （"AT&T" がそのまま "AT&T" として残る）。
func (s *postSanitizer) Sanitize(content string) string {
	return html.UnescapeString(s.policy.Sanitize(content))
}
