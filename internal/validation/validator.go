// Package validation はリクエストボディの宣言的な検証スキーマを提供する。
//
// 各スキーマはフィールドごとのルール集合として定義され、Applyが宣言順に評価する。
// 検証は最初の違反で打ち切り、そのメッセージのみをValidationErrorとして返す
// （fail-fast。全違反の収集は行わない）。
package validation

import (
	"net/mail"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/hitoshi/postpilot/internal/model"
)

// FieldRule は1フィールド分の検証ルールを表す。
// Presentは入力にフィールドが含まれていたかを示し、
// 必須フィールドの欠落と任意フィールドの省略を区別する。
type FieldRule struct {
	Name     string
	Required bool
	Present  bool
	Check    func() string // 違反メッセージを返す。問題なければ空文字。
}

// Apply はルールを宣言順に評価し、最初に違反したルールのエラーのみを返す。
func Apply(rules []FieldRule) error {
	for _, r := range rules {
		if !r.Present {
			if r.Required {
				return model.NewValidationError(r.Name + " is required")
			}
			continue
		}
		if r.Check != nil {
			if msg := r.Check(); msg != "" {
				return model.NewValidationError(msg)
			}
		}
	}
	return nil
}

// checkEmail はRFC 5322のアドレス構文として妥当かを検証する。
// 表示名付きアドレス（"Name <a@b>"）は素のアドレスと一致しないため拒否する。
func checkEmail(s string) string {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "Invalid email format"
	}
	return ""
}

// checkURL はスキームとホストを持つ絶対URLかを検証する。
// 格納のみでフェッチは行わないため、検証は形式のみ。
func checkURL(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "Invalid URL"
	}
	return ""
}

// checkContent は投稿本文の長さ制約（1〜280文字）を検証する。
// 長さはバイト数ではなく文字数（rune数）で数える。
func checkContent(s string) string {
	if len(s) == 0 {
		return "Content cannot be empty"
	}
	if utf8.RuneCountInString(s) > maxContentLength {
		return "Content too long"
	}
	return ""
}

// parseDatetime はISO-8601（RFC 3339）形式の日時文字列を解釈する。
func parseDatetime(s string) (time.Time, string) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, "Invalid datetime format"
	}
	return t, ""
}

// maxContentLength は投稿本文の最大長。
const maxContentLength = 280
