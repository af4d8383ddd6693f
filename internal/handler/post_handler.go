package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/postpilot/internal/middleware"
	"github.com/hitoshi/postpilot/internal/model"
	"github.com/hitoshi/postpilot/internal/post"
	"github.com/hitoshi/postpilot/internal/validation"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// Create は新規投稿を作成する。
	Create(ctx context.Context, userID string, in post.CreateInput) (*model.Post, error)
	// Get は指定IDの投稿を取得する。
	Get(ctx context.Context, id string) (*model.Post, error)
	// List は全投稿を返す。
	List(ctx context.Context) ([]*model.Post, error)
	// ListByUser は指定ユーザーの投稿を返す。
	ListByUser(ctx context.Context, userID string) ([]*model.Post, error)
	// Update は指定IDの投稿を部分更新する。
	Update(ctx context.Context, id string, in post.UpdateInput) (*model.Post, error)
	// Delete は指定IDの投稿を削除する。
	Delete(ctx context.Context, id string) error
}

// PostHandler は投稿管理のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{service: service}
}

// postResponse は投稿情報のAPIレスポンス。
type postResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Content      string     `json:"content"`
	MediaURLs    []string   `json:"mediaUrls"`
	Platform     string     `json:"platform"`
	Status       string     `json:"status"`
	PublishedAt  *time.Time `json:"publishedAt"`
	ScheduledFor *time.Time `json:"scheduledFor"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// toPostResponse はmodel.PostからAPIレスポンスに変換する。
func toPostResponse(p *model.Post) postResponse {
	return postResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Content:      p.Content,
		MediaURLs:    p.MediaURLs,
		Platform:     string(p.Platform),
		Status:       string(p.Status),
		PublishedAt:  p.PublishedAt,
		ScheduledFor: p.ScheduledFor,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// toPostResponses は投稿列をAPIレスポンス列に変換する。
func toPostResponses(posts []*model.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

// CreatePost は投稿作成を処理する。
// POST /api/v1/posts
// 呼び出し元の識別にはX-User-IDヘッダーの申告値をそのまま使用する。
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in validation.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := in.Validate(); err != nil {
		handleServiceError(w, err, "Failed to create post")
		return
	}

	p, err := h.service.Create(r.Context(), userID, post.CreateInput{
		Content:      *in.Content,
		MediaURLs:    in.NormalizedMediaURLs(),
		Platform:     model.PostPlatform(*in.Platform),
		Status:       in.NormalizedStatus(),
		ScheduledFor: in.ScheduledAt(),
	})
	if err != nil {
		handleServiceError(w, err, "Failed to create post")
		return
	}

	writeSuccess(w, http.StatusOK, toPostResponse(p))
}

// GetPost は投稿取得を処理する。
// GET /api/v1/posts/:id
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch post")
		return
	}

	writeSuccess(w, http.StatusOK, toPostResponse(p))
}

// ListPosts は投稿一覧取得を処理する。
// GET /api/v1/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err, "Failed to fetch posts")
		return
	}

	writeSuccess(w, http.StatusOK, toPostResponses(posts))
}

// ListPostsByUser はユーザー別の投稿一覧取得を処理する。
// GET /api/v1/posts/user/:userId
func (h *PostHandler) ListPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	posts, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch user posts")
		return
	}

	writeSuccess(w, http.StatusOK, toPostResponses(posts))
}

// UpdatePost は投稿の部分更新を処理する。
// PATCH /api/v1/posts/:id
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in validation.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := in.Validate(); err != nil {
		handleServiceError(w, err, "Failed to update post")
		return
	}

	p, err := h.service.Update(r.Context(), id, post.UpdateInput{
		Content:      in.Content,
		MediaURLs:    in.MediaURLs,
		Platform:     in.PlatformValue(),
		Status:       in.StatusValue(),
		ScheduledFor: in.ScheduledAt(),
	})
	if err != nil {
		handleServiceError(w, err, "Failed to update post")
		return
	}

	writeSuccess(w, http.StatusOK, toPostResponse(p))
}

// DeletePost は投稿削除を処理する。
// DELETE /api/v1/posts/:id
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err, "Failed to delete post")
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}
