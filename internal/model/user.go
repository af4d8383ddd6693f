// Package model はドメインモデルを定義する。
package model

import "time"

// User はAPI利用ユーザーを表す。
// APIKeyは再生成操作で差し替えられるため、遷移状態としてnilを許容する。
type User struct {
	ID        string
	Email     string
	APIKey    *string
	CreatedAt time.Time
}
