// Package model はドメインモデルを定義する。
package model

import "time"

// User はブログの登録ユーザーを表す。
// PasswordHashは "<salt>,<hex_digest>" 形式のソルト付きSHA-256レコード。
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
