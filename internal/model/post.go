package model

import "time"

// PostPlatform は投稿先プラットフォームを表す。
type PostPlatform string

const (
	PlatformTwitter   PostPlatform = "twitter"
	PlatformFacebook  PostPlatform = "facebook"
	PlatformInstagram PostPlatform = "instagram"
)

// IsValid は定義済みプラットフォームかどうかを返す。
func (p PostPlatform) IsValid() bool {
	switch p {
	case PlatformTwitter, PlatformFacebook, PlatformInstagram:
		return true
	}
	return false
}

// PostStatus は投稿のライフサイクル状態を表す。
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
	StatusScheduled PostStatus = "scheduled"
)

// IsValid は定義済みステータスかどうかを返す。
func (s PostStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusScheduled:
		return true
	}
	return false
}

// Post はスケジュール対象の投稿を表す。
// PublishedAtはstatusが初めてpublishedへ遷移した時刻を保持し、以後の編集で上書きされない。
type Post struct {
	ID           string
	UserID       string
	Content      string
	MediaURLs    []string
	Platform     PostPlatform
	Status       PostStatus
	PublishedAt  *time.Time
	ScheduledFor *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
