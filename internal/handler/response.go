// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/postpilot/internal/model"
)

// successEnvelope は成功レスポンスの統一フォーマット。
// dataはnullの場合も必ず含める（削除操作はdata:nullを返す）。
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorEnvelope は失敗レスポンスの統一フォーマット。
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeSuccess は成功エンベロープでレスポンスを書き込む。
func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(successEnvelope{
		Success: true,
		Data:    data,
	})
}

// writeError は失敗エンベロープでレスポンスを書き込む。
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorEnvelope{
		Success: false,
		Error:   message,
	})
}

// handleServiceError はサービス層から返されたエラーをエンベロープへ変換する。
// APIError以外のエラーはログに記録し、ストレージ内部を漏らさない
// 操作ごとの定型メッセージで500を返す。
func handleServiceError(w http.ResponseWriter, err error, fallbackMessage string) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeError(w, statusForCode(apiErr.Code), apiErr.Message)
		return
	}

	slog.Error("internal server error",
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusInternalServerError, fallbackMessage)
}

// statusForCode はAPIErrorコードからHTTPステータスコードにマッピングする。
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeConflict:
		return http.StatusBadRequest
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
