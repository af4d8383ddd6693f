package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/postpilot/internal/model"
	"github.com/hitoshi/postpilot/internal/validation"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Create は新規ユーザーを作成する。
	Create(ctx context.Context, email string) (*model.User, error)
	// Get は指定IDのユーザーを取得する。
	Get(ctx context.Context, id string) (*model.User, error)
	// List は全ユーザーを返す。
	List(ctx context.Context) ([]*model.User, error)
	// Update は指定IDのユーザーを部分更新する。
	Update(ctx context.Context, id string, email *string) (*model.User, error)
	// Delete は指定IDのユーザーを削除する。
	Delete(ctx context.Context, id string) error
	// RegenerateAPIKey は指定IDのユーザーのAPIキーを再生成する。
	RegenerateAPIKey(ctx context.Context, id string) (*model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	APIKey    *string   `json:"apiKey"`
	CreatedAt time.Time `json:"createdAt"`
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		APIKey:    u.APIKey,
		CreatedAt: u.CreatedAt,
	}
}

// toUserResponses はユーザー列をAPIレスポンス列に変換する。
func toUserResponses(users []*model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// CreateUser はユーザー作成を処理する。
// POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in validation.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := in.Validate(); err != nil {
		handleServiceError(w, err, "Failed to create user")
		return
	}

	u, err := h.service.Create(r.Context(), *in.Email)
	if err != nil {
		handleServiceError(w, err, "Failed to create user")
		return
	}

	writeSuccess(w, http.StatusOK, toUserResponse(u))
}

// GetUser はユーザー取得を処理する。
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch user")
		return
	}

	writeSuccess(w, http.StatusOK, toUserResponse(u))
}

// ListUsers はユーザー一覧取得を処理する。
// GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err, "Failed to fetch users")
		return
	}

	writeSuccess(w, http.StatusOK, toUserResponses(users))
}

// UpdateUser はユーザーの部分更新を処理する。
// PATCH /api/v1/users/:id
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in validation.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := in.Validate(); err != nil {
		handleServiceError(w, err, "Failed to update user")
		return
	}

	u, err := h.service.Update(r.Context(), id, in.Email)
	if err != nil {
		handleServiceError(w, err, "Failed to update user")
		return
	}

	writeSuccess(w, http.StatusOK, toUserResponse(u))
}

// DeleteUser はユーザー削除を処理する。
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err, "Failed to delete user")
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}

// RegenerateAPIKey はAPIキーの再生成を処理する。
// POST /api/v1/users/:id/regenerate-key
func (h *UserHandler) RegenerateAPIKey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	u, err := h.service.RegenerateAPIKey(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "Failed to regenerate API key")
		return
	}

	writeSuccess(w, http.StatusOK, toUserResponse(u))
}
