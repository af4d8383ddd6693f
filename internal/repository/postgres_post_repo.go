package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hitoshi/postpilot/internal/model"
)

// postColumns はpostsテーブルの取得対象カラム。
var postColumns = []string{
	"id", "user_id", "content", "media_urls", "platform",
	"status", "published_at", "scheduled_for", "created_at", "updated_at",
}

// postReturning はRETURNING句用のカラム列。
const postReturning = "RETURNING id, user_id, content, media_urls, platform, status, published_at, scheduled_for, created_at, updated_at"

// postRow はpostsテーブルの1行を表すスキャン用構造体。
type postRow struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	Content      string         `db:"content"`
	MediaURLs    pq.StringArray `db:"media_urls"`
	Platform     string         `db:"platform"`
	Status       string         `db:"status"`
	PublishedAt  sql.NullTime   `db:"published_at"`
	ScheduledFor sql.NullTime   `db:"scheduled_for"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// toModel はスキャン結果をドメインモデルへ変換する。
func (r postRow) toModel() *model.Post {
	post := &model.Post{
		ID:        r.ID,
		UserID:    r.UserID,
		Content:   r.Content,
		MediaURLs: []string(r.MediaURLs),
		Platform:  model.PostPlatform(r.Platform),
		Status:    model.PostStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if post.MediaURLs == nil {
		post.MediaURLs = []string{}
	}
	if r.PublishedAt.Valid {
		t := r.PublishedAt.Time
		post.PublishedAt = &t
	}
	if r.ScheduledFor.Valid {
		t := r.ScheduledFor.Time
		post.ScheduledFor = &t
	}
	return post
}

// PostgresPostRepo はPostgreSQLを使用した投稿リポジトリ。
// SQLはsquirrelで構築し、sqlxで実行する。
type PostgresPostRepo struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sqlx.DB) *PostgresPostRepo {
	return &PostgresPostRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create は投稿を作成する。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	query, args, err := r.sb.Insert("posts").
		Columns(postColumns...).
		Values(
			post.ID, post.UserID, post.Content, pq.StringArray(post.MediaURLs),
			string(post.Platform), string(post.Status),
			post.PublishedAt, post.ScheduledFor, post.CreatedAt, post.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var row postRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}

	return row.toModel(), nil
}

// List は全投稿を作成日時の降順で返す。
func (r *PostgresPostRepo) List(ctx context.Context) ([]*model.Post, error) {
	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return toPostModels(rows), nil
}

// ListByUserID は指定ユーザーの投稿を作成日時の降順で返す。
func (r *PostgresPostRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Post, error) {
	query, args, err := r.sb.Select(postColumns...).
		From("posts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts by user: %w", err)
	}

	return toPostModels(rows), nil
}

// Update は指定IDの投稿を部分更新し、更新後の行を返す。
// 対象が存在しない場合はnilを返す。
func (r *PostgresPostRepo) Update(ctx context.Context, id string, patch PostPatch) (*model.Post, error) {
	b := r.sb.Update("posts").Set("updated_at", patch.UpdatedAt)
	if patch.Content != nil {
		b = b.Set("content", *patch.Content)
	}
	if patch.MediaURLs != nil {
		b = b.Set("media_urls", pq.StringArray(*patch.MediaURLs))
	}
	if patch.Platform != nil {
		b = b.Set("platform", string(*patch.Platform))
	}
	if patch.Status != nil {
		b = b.Set("status", string(*patch.Status))
	}
	if patch.PublishedAt != nil {
		b = b.Set("published_at", *patch.PublishedAt)
	}
	if patch.ScheduledFor != nil {
		b = b.Set("scheduled_for", *patch.ScheduledFor)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).
		Suffix(postReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var row postRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return row.toModel(), nil
}

// Delete は指定IDの投稿を削除する。
func (r *PostgresPostRepo) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post not found: %s", id)
	}
	return nil
}

// toPostModels はスキャン結果の列をドメインモデルの列へ変換する。
func toPostModels(rows []postRow) []*model.Post {
	posts := make([]*model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}
	return posts
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
