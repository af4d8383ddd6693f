package validation

import (
	"time"

	"github.com/hitoshi/postpilot/internal/model"
)

// CreateUserInput はユーザー作成リクエストのボディ。
// ポインタ型によりフィールドの欠落とゼロ値を区別する。
type CreateUserInput struct {
	Email *string `json:"email"`
}

// Validate はユーザー作成スキーマを評価する。
func (in *CreateUserInput) Validate() error {
	return Apply([]FieldRule{
		{
			Name:     "Email",
			Required: true,
			Present:  in.Email != nil,
			Check:    func() string { return checkEmail(*in.Email) },
		},
	})
}

// UpdateUserInput はユーザー更新リクエストのボディ。
// emailのみを受け付ける部分更新スキーマ。
type UpdateUserInput struct {
	Email *string `json:"email"`
}

// Validate はユーザー更新スキーマを評価する。
func (in *UpdateUserInput) Validate() error {
	return Apply([]FieldRule{
		{
			Name:    "Email",
			Present: in.Email != nil,
			Check:   func() string { return checkEmail(*in.Email) },
		},
	})
}

// CreatePostInput は投稿作成リクエストのボディ。
type CreatePostInput struct {
	Content      *string   `json:"content"`
	MediaURLs    *[]string `json:"mediaUrls"`
	Platform     *string   `json:"platform"`
	Status       *string   `json:"status"`
	ScheduledFor *string   `json:"scheduledFor"`

	scheduledAt *time.Time // Validate成功時に解釈済みの日時を保持する
}

// Validate は投稿作成スキーマを評価する。
func (in *CreatePostInput) Validate() error {
	in.scheduledAt = nil
	return Apply([]FieldRule{
		{
			Name:     "Content",
			Required: true,
			Present:  in.Content != nil,
			Check:    func() string { return checkContent(*in.Content) },
		},
		{
			Name:    "MediaUrls",
			Present: in.MediaURLs != nil,
			Check:   func() string { return checkMediaURLs(*in.MediaURLs) },
		},
		{
			Name:     "Platform",
			Required: true,
			Present:  in.Platform != nil,
			Check:    func() string { return checkPlatform(*in.Platform) },
		},
		{
			Name:    "Status",
			Present: in.Status != nil,
			Check:   func() string { return checkStatus(*in.Status) },
		},
		{
			Name:    "ScheduledFor",
			Present: in.ScheduledFor != nil,
			Check: func() string {
				t, msg := parseDatetime(*in.ScheduledFor)
				if msg != "" {
					return msg
				}
				in.scheduledAt = &t
				return ""
			},
		},
	})
}

// NormalizedStatus は指定されたステータス、未指定ならdraftを返す。
func (in *CreatePostInput) NormalizedStatus() model.PostStatus {
	if in.Status == nil {
		return model.StatusDraft
	}
	return model.PostStatus(*in.Status)
}

// NormalizedMediaURLs は指定されたURL列、未指定なら空スライスを返す。
func (in *CreatePostInput) NormalizedMediaURLs() []string {
	if in.MediaURLs == nil {
		return []string{}
	}
	return *in.MediaURLs
}

// ScheduledAt はValidateで解釈済みの予約日時を返す。未指定ならnil。
func (in *CreatePostInput) ScheduledAt() *time.Time {
	return in.scheduledAt
}

// UpdatePostInput は投稿更新リクエストのボディ。
// 作成スキーマの全フィールドが任意となる部分更新スキーマ。
type UpdatePostInput struct {
	Content      *string   `json:"content"`
	MediaURLs    *[]string `json:"mediaUrls"`
	Platform     *string   `json:"platform"`
	Status       *string   `json:"status"`
	ScheduledFor *string   `json:"scheduledFor"`

	scheduledAt *time.Time
}

// Validate は投稿更新スキーマを評価する。
// 各ルールは存在するフィールドに対してのみ作成時と同じ制約を適用する。
func (in *UpdatePostInput) Validate() error {
	in.scheduledAt = nil
	return Apply([]FieldRule{
		{
			Name:    "Content",
			Present: in.Content != nil,
			Check:   func() string { return checkContent(*in.Content) },
		},
		{
			Name:    "MediaUrls",
			Present: in.MediaURLs != nil,
			Check:   func() string { return checkMediaURLs(*in.MediaURLs) },
		},
		{
			Name:    "Platform",
			Present: in.Platform != nil,
			Check:   func() string { return checkPlatform(*in.Platform) },
		},
		{
			Name:    "Status",
			Present: in.Status != nil,
			Check:   func() string { return checkStatus(*in.Status) },
		},
		{
			Name:    "ScheduledFor",
			Present: in.ScheduledFor != nil,
			Check: func() string {
				t, msg := parseDatetime(*in.ScheduledFor)
				if msg != "" {
					return msg
				}
				in.scheduledAt = &t
				return ""
			},
		},
	})
}

// PlatformValue は解釈済みのプラットフォームを返す。未指定ならnil。
func (in *UpdatePostInput) PlatformValue() *model.PostPlatform {
	if in.Platform == nil {
		return nil
	}
	p := model.PostPlatform(*in.Platform)
	return &p
}

// StatusValue は解釈済みのステータスを返す。未指定ならnil。
func (in *UpdatePostInput) StatusValue() *model.PostStatus {
	if in.Status == nil {
		return nil
	}
	s := model.PostStatus(*in.Status)
	return &s
}

// ScheduledAt はValidateで解釈済みの予約日時を返す。未指定ならnil。
func (in *UpdatePostInput) ScheduledAt() *time.Time {
	return in.scheduledAt
}

// checkMediaURLs は各要素が絶対URLであることを検証する。
func checkMediaURLs(urls []string) string {
	for _, u := range urls {
		if msg := checkURL(u); msg != "" {
			return msg
		}
	}
	return ""
}

// checkPlatform は定義済みプラットフォームかを検証する。
func checkPlatform(s string) string {
	if !model.PostPlatform(s).IsValid() {
		return "Invalid platform"
	}
	return ""
}

// checkStatus は定義済みステータスかを検証する。
func checkStatus(s string) string {
	if !model.PostStatus(s).IsValid() {
		return "Invalid status"
	}
	return ""
}
