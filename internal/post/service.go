// Package post は投稿管理のドメインロジックを提供する。
package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/postpilot/internal/model"
	"github.com/hitoshi/postpilot/internal/repository"
)

// ContentSanitizer は投稿本文のサニタイズインターフェース。
// security.PostSanitizerServiceの部分集合として定義する。
type ContentSanitizer interface {
	Sanitize(content string) string
}

// CreateInput は検証・正規化済みの投稿作成内容を表す。
type CreateInput struct {
	Content      string
	MediaURLs    []string
	Platform     model.PostPlatform
	Status       model.PostStatus
	ScheduledFor *time.Time
}

// UpdateInput は検証済みの投稿更新内容を表す。nilのフィールドは変更しない。
type UpdateInput struct {
	Content      *string
	MediaURLs    *[]string
	Platform     *model.PostPlatform
	Status       *model.PostStatus
	ScheduledFor *time.Time
}

// Service は投稿管理のサービス層。
// publishedAtの導出とscheduledForの引き継ぎはここで行う。
type Service struct {
	repo      repository.PostRepository
	sanitizer ContentSanitizer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.PostRepository, sanitizer ContentSanitizer) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
	}
}

// Create は新規投稿を作成する。
// statusがpublishedの場合、publishedAtに現在時刻を設定する。
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*model.Post, error) {
	now := time.Now().UTC()

	mediaURLs := in.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}

	p := &model.Post{
		ID:           uuid.NewString(),
		UserID:       userID,
		Content:      s.sanitize(in.Content),
		MediaURLs:    mediaURLs,
		Platform:     in.Platform,
		Status:       in.Status,
		ScheduledFor: in.ScheduledFor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Status == model.StatusPublished {
		p.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created",
		slog.String("post_id", p.ID),
		slog.String("user_id", userID),
		slog.String("platform", string(p.Platform)),
		slog.String("status", string(p.Status)),
	)

	return p, nil
}

// Get は指定IDの投稿を取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if p == nil {
		return nil, model.NewPostNotFoundError()
	}
	return p, nil
}

// List は全投稿を返す。
func (s *Service) List(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// ListByUser は指定ユーザーの投稿を返す。該当がない場合は空スライスを返す。
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*model.Post, error) {
	posts, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by user: %w", err)
	}
	return posts, nil
}

// Update は指定IDの投稿を部分更新する。
//
// publishedAtはstatusが初めてpublishedへ遷移するときのみ設定し、
// 設定済みの値は以後の編集で変更しない。
// scheduledForはペイロードで指定された場合のみ更新し、
// 未指定なら保存済みの値をそのまま維持する。
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*model.Post, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	if existing == nil {
		return nil, model.NewPostNotFoundError()
	}

	now := time.Now().UTC()
	patch := repository.PostPatch{
		MediaURLs:    in.MediaURLs,
		Platform:     in.Platform,
		Status:       in.Status,
		ScheduledFor: in.ScheduledFor,
		UpdatedAt:    now,
	}
	if in.Content != nil {
		content := s.sanitize(*in.Content)
		patch.Content = &content
	}
	if in.Status != nil && *in.Status == model.StatusPublished && existing.Status != model.StatusPublished {
		patch.PublishedAt = &now
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if updated == nil {
		return nil, model.NewPostNotFoundError()
	}

	return updated, nil
}

// Delete は指定IDの投稿を削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find post: %w", err)
	}
	if existing == nil {
		return model.NewPostNotFoundError()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	slog.Info("post deleted",
		slog.String("post_id", id),
	)

	return nil
}

// sanitize はサニタイザが設定されていれば本文をサニタイズする。
func (s *Service) sanitize(content string) string {
	if s.sanitizer == nil {
		return content
	}
	return s.sanitizer.Sanitize(content)
}
