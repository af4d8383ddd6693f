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

// uniqueViolation はPostgreSQLの一意制約違反のエラーコード。
const uniqueViolation = pq.ErrorCode("23505")

// userColumns はusersテーブルの取得対象カラム。
var userColumns = []string{"id", "email", "api_key", "created_at"}

// userRow はusersテーブルの1行を表すスキャン用構造体。
type userRow struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	APIKey    sql.NullString `db:"api_key"`
	CreatedAt time.Time      `db:"created_at"`
}

// toModel はスキャン結果をドメインモデルへ変換する。
func (r userRow) toModel() *model.User {
	user := &model.User{
		ID:        r.ID,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
	if r.APIKey.Valid {
		key := r.APIKey.String
		user.APIKey = &key
	}
	return user
}

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
// SQLはsquirrelで構築し、sqlxで実行する。
type PostgresUserRepo struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sqlx.DB) *PostgresUserRepo {
	return &PostgresUserRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create はユーザーを作成する。
// email一意制約違反はErrDuplicateEmailとして返す。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	query, args, err := r.sb.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Email, user.APIKey, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return row.toModel(), nil
}

// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return row.toModel(), nil
}

// List は全ユーザーを作成日時の昇順で返す。
func (r *PostgresUserRepo) List(ctx context.Context) ([]*model.User, error) {
	query, args, err := r.sb.Select(userColumns...).
		From("users").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

// Update は指定IDのユーザーを部分更新し、更新後の行を返す。
// 対象が存在しない場合はnilを返す。
func (r *PostgresUserRepo) Update(ctx context.Context, id string, patch UserPatch) (*model.User, error) {
	b := r.sb.Update("users")
	if patch.Email != nil {
		b = b.Set("email", *patch.Email)
	}
	if patch.APIKey != nil {
		b = b.Set("api_key", *patch.APIKey)
	}

	query, args, err := b.Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, email, api_key, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return row.toModel(), nil
}

// Delete は指定IDのユーザーを削除する。
// 紐づく投稿は削除しない（弱参照のため残置する）。
func (r *PostgresUserRepo) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
