package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/postpilot/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	Logger            *slog.Logger
	RequestRecorder   middleware.RequestRecorder

	// /metrics エンドポイント（nilなら公開しない）
	MetricsHandler http.Handler

	// サービス
	UserService UserServiceInterface
	PostService PostServiceInterface
}

// healthResponse は死活監視エンドポイントのレスポンス。
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Identity → Logging → Metrics → CORS
//
// IdentityはLoggingより先に実行する。ログのuser_id属性は
// コンテキストへ注入済みの申告値を読むため。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewIdentityMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.RequestRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.RequestRecorder))
	}
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	userHandler := NewUserHandler(deps.UserService)
	postHandler := NewPostHandler(deps.PostService)

	// 死活監視
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Message: "Social Media API is running",
		})
	})

	// Prometheusスクレイプ
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// ユーザー管理
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", userHandler.GetUser)
			r.Patch("/", userHandler.UpdateUser)
			r.Delete("/", userHandler.DeleteUser)
			r.Post("/regenerate-key", userHandler.RegenerateAPIKey)
		})
	})

	// 投稿管理
	r.Route("/api/v1/posts", func(r chi.Router) {
		r.Post("/", postHandler.CreatePost)
		r.Get("/", postHandler.ListPosts)
		r.Get("/user/{userId}", postHandler.ListPostsByUser)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", postHandler.GetPost)
			r.Patch("/", postHandler.UpdatePost)
			r.Delete("/", postHandler.DeletePost)
		})
	})

	return r
}
