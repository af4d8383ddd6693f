// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/postpilot/internal/model"
	"github.com/hitoshi/postpilot/internal/repository"
)

// Service はユーザー管理のサービス層。
type Service struct {
	repo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

// Create は新規ユーザーを作成する。IDとAPIキーはここで採番する。
// メールアドレスの重複検出はストレージの一意制約を最終的な根拠とし、
// 事前チェックは高速パスとしてのみ行う。
func (s *Service) Create(ctx context.Context, email string) (*model.User, error) {
	// 高速パス: 既存メールアドレスの事前チェック
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateEmailError()
	}

	apiKey := uuid.NewString()
	u := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		APIKey:    &apiKey,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// 事前チェックと挿入の間のレースは一意制約違反としてここに到達する
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, model.NewDuplicateEmailError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user created",
		slog.String("user_id", u.ID),
	)

	return u, nil
}

// Get は指定IDのユーザーを取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if u == nil {
		return nil, model.NewUserNotFoundError()
	}
	return u, nil
}

// List は全ユーザーを返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update は指定IDのユーザーを部分更新する。
// 更新対象フィールドが1つもない場合は既存の行をそのまま返す。
func (s *Service) Update(ctx context.Context, id string, email *string) (*model.User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if existing == nil {
		return nil, model.NewUserNotFoundError()
	}

	patch := repository.UserPatch{Email: email}
	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if updated == nil {
		return nil, model.NewUserNotFoundError()
	}

	return updated, nil
}

// Delete は指定IDのユーザーを削除する。
// 紐づく投稿は弱参照のため削除しない。
func (s *Service) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if existing == nil {
		return model.NewUserNotFoundError()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user deleted",
		slog.String("user_id", id),
	)

	return nil
}

// RegenerateAPIKey は指定IDのユーザーのAPIキーを新しい値に差し替える。
// 他のフィールドは変更しない。
func (s *Service) RegenerateAPIKey(ctx context.Context, id string) (*model.User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if existing == nil {
		return nil, model.NewUserNotFoundError()
	}

	apiKey := uuid.NewString()
	updated, err := s.repo.Update(ctx, id, repository.UserPatch{APIKey: &apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate API key: %w", err)
	}
	if updated == nil {
		return nil, model.NewUserNotFoundError()
	}

	slog.Info("api key regenerated",
		slog.String("user_id", id),
	)

	return updated, nil
}
