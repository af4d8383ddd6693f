// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hitoshi/postpilot/internal/model"
)

// ErrDuplicateEmail はusersテーブルの一意制約違反を表す。
// ストレージ側の制約違反が重複検出の最終的な根拠となる
// （サービス層の事前チェックは高速パスにすぎない）。
var ErrDuplicateEmail = errors.New("duplicate email")

// UserPatch はユーザーの部分更新内容を表す。nilのフィールドは変更しない。
type UserPatch struct {
	Email  *string
	APIKey *string
}

// IsEmpty は更新対象のフィールドが1つもないことを返す。
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.APIKey == nil
}

// PostPatch は投稿の部分更新内容を表す。nilのフィールドは変更しない。
// UpdatedAtは常に更新される。
type PostPatch struct {
	Content      *string
	MediaURLs    *[]string
	Platform     *model.PostPlatform
	Status       *model.PostStatus
	PublishedAt  *time.Time
	ScheduledFor *time.Time
	UpdatedAt    time.Time
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成する。email重複時はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List は全ユーザーを作成日時の昇順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// Update は指定IDのユーザーを部分更新し、更新後の行を返す。
	// 対象が存在しない場合はnilを返す。
	Update(ctx context.Context, id string, patch UserPatch) (*model.User, error)

	// Delete は指定IDのユーザーを削除する。
	Delete(ctx context.Context, id string) error
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// Create は投稿を作成する。
	Create(ctx context.Context, post *model.Post) error

	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// List は全投稿を作成日時の降順で返す。
	List(ctx context.Context) ([]*model.Post, error)

	// ListByUserID は指定ユーザーの投稿を作成日時の降順で返す。
	// 該当がない場合は空スライスを返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Post, error)

	// Update は指定IDの投稿を部分更新し、更新後の行を返す。
	// 対象が存在しない場合はnilを返す。
	Update(ctx context.Context, id string, patch PostPatch) (*model.Post, error)

	// Delete は指定IDの投稿を削除する。
	Delete(ctx context.Context, id string) error
}
