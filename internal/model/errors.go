// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// ハンドラーがレスポンス種別（not-found / not-allowed / ajaxマーカー）を
// 判定するためのコードとカテゴリを含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, blog, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodePostNotFound     = "POST_NOT_FOUND"
	ErrCodeCommentNotFound  = "COMMENT_NOT_FOUND"
	ErrCodeNotPostAuthor    = "NOT_POST_AUTHOR"
	ErrCodeNotCommentAuthor = "NOT_COMMENT_AUTHOR"
	ErrCodeEmptyComment     = "EMPTY_COMMENT"
	ErrCodeEmptyPostFields  = "EMPTY_POST_FIELDS"
	ErrCodeLikeNotAllowed   = "LIKE_NOT_ALLOWED"
	ErrCodeUsernameTaken    = "USERNAME_TAKEN"
	ErrCodeUnauthenticated  = "UNAUTHENTICATED"
)

// NewPostNotFoundError は記事未検出エラーを生成する。
func NewPostNotFoundError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された記事が見つかりません: %s", postID),
		Category: "blog",
		Action:   "記事IDを確認してください。",
	}
}

// NewCommentNotFoundError はコメント未検出エラーを生成する。
func NewCommentNotFoundError(commentID string) *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  fmt.Sprintf("指定されたコメントが見つかりません: %s", commentID),
		Category: "blog",
		Action:   "コメントIDを確認してください。",
	}
}

// NewNotPostAuthorError は記事の著者以外による変更操作エラーを生成する。
func NewNotPostAuthorError() *APIError {
	return &APIError{
		Code:     ErrCodeNotPostAuthor,
		Message:  "この記事を変更できるのは著者のみです。",
		Category: "auth",
		Action:   "著者のアカウントでログインしてください。",
	}
}

// NewNotCommentAuthorError はコメントの著者以外による変更操作エラーを生成する。
func NewNotCommentAuthorError() *APIError {
	return &APIError{
		Code:     ErrCodeNotCommentAuthor,
		Message:  "このコメントを変更できるのは著者のみです。",
		Category: "auth",
		Action:   "著者のアカウントでログインしてください。",
	}
}

// NewEmptyCommentError は空コメントエラーを生成する。
func NewEmptyCommentError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyComment,
		Message:  "コメントが空です。",
		Category: "validation",
		Action:   "コメント本文を入力してください。",
	}
}

// NewEmptyPostFieldsError は記事の必須フィールド未入力エラーを生成する。
func NewEmptyPostFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyPostFields,
		Message:  "タイトルと本文は必須です。",
		Category: "validation",
		Action:   "タイトルと本文を入力してください。",
	}
}

// NewLikeNotAllowedError はいいね不可エラーを生成する。
// 自分の記事へのいいね、または二重いいねの場合に返される。
func NewLikeNotAllowedError() *APIError {
	return &APIError{
		Code:     ErrCodeLikeNotAllowed,
		Message:  "この記事にいいねできません。",
		Category: "blog",
		Action:   "自分の記事、または既にいいねした記事にはいいねできません。",
	}
}

// NewUsernameTakenError はユーザー名重複エラーを生成する。
func NewUsernameTakenError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeUsernameTaken,
		Message:  fmt.Sprintf("そのユーザー名は既に使われています: %s", username),
		Category: "validation",
		Action:   "別のユーザー名を選んでください。",
	}
}

// NewUnauthenticatedError は未認証エラーを生成する。
func NewUnauthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthenticated,
		Message:  "ログインが必要です。",
		Category: "auth",
		Action:   "ログインしてから再度お試しください。",
	}
}
