// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/miniblog/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// PostRepository は記事データの永続化インターフェース。
type PostRepository interface {
	// FindByID は指定IDの記事を著者名付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// ListRecent は作成日時の降順で最新の記事を最大limit件返す。
	ListRecent(ctx context.Context, limit int) ([]*model.Post, error)

	// Create は記事を作成する。
	Create(ctx context.Context, post *model.Post) error

	// Update は記事のタイトルと本文を更新し、updated_atを更新する。
	Update(ctx context.Context, post *model.Post) error

	// DeleteCascade は記事と、その記事に紐づくいいね・コメントを
	// 同一トランザクションで削除する。
	DeleteCascade(ctx context.Context, postID string) error
}

// LikeRepository はいいねデータの永続化インターフェース。
type LikeRepository interface {
	// FindByUserAndPost はユーザーIDと記事IDでいいねを検索する。見つからない場合はnilを返す。
	FindByUserAndPost(ctx context.Context, userID, postID string) (*model.Like, error)

	// Create はいいねを作成する。
	Create(ctx context.Context, like *model.Like) error

	// CountByPostID は記事のいいね数を返す。
	CountByPostID(ctx context.Context, postID string) (int, error)
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// FindByID は指定IDのコメントを投稿者名付きで取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Comment, error)

	// ListByPostID は記事のコメント一覧を作成日時の昇順で返す。
	ListByPostID(ctx context.Context, postID string) ([]*model.Comment, error)

	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error

	// Update はコメント本文を更新し、updated_atを更新する。
	Update(ctx context.Context, comment *model.Comment) error

	// DeleteByID は指定IDのコメントを削除する。
	DeleteByID(ctx context.Context, id string) error
}
