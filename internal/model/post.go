// Package model はドメインモデルを定義する。
package model

import "time"

// Post はブログ記事を表す。
// AuthorUsernameはusersテーブルとのJOINで取得される表示用フィールド。
type Post struct {
	ID             string
	AuthorID       string
	AuthorUsername string
	Subject        string
	Content        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Like はユーザーと記事のいいね関係を表す。
// (UserID, PostID) の組み合わせは一意。
type Like struct {
	ID        string
	UserID    string
	PostID    string
	CreatedAt time.Time
}

// Comment は記事へのコメントを表す。
// Usernameはusersテーブルとの JOIN で取得される表示用フィールド。
type Comment struct {
	ID        string
	UserID    string
	Username  string
	PostID    string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
