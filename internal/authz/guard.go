// Package authz は記事・コメント・いいねの変更操作に対する
// 所有権チェックを提供する。
//
// 記事はユーザー名の比較、コメントはIDの比較で所有権を判定する。
// ユーザー名変更をサポートする場合はこの非対称性に注意すること。
package authz

import "github.com/hitoshi/miniblog/internal/model"

// CanMutatePost は記事の編集・削除が許可されるかを判定する。
// 著者とセッションユーザーの両方が存在し、ユーザー名が一致する場合のみ許可。
func CanMutatePost(post *model.Post, user *model.User) bool {
	if post == nil || user == nil {
		return false
	}
	if post.AuthorUsername == "" {
		return false
	}
	return post.AuthorUsername == user.Username
}

// CanMutateComment はコメントの編集・削除が許可されるかを判定する。
// コメントの投稿者とセッションユーザーのIDが一致する場合のみ許可。
func CanMutateComment(comment *model.Comment, user *model.User) bool {
	if comment == nil || user == nil {
		return false
	}
	if comment.UserID == "" {
		return false
	}
	return comment.UserID == user.ID
}

// CanLikePost は記事へのいいねが許可されるかを判定する。
// ログイン済みで、自分の記事ではなく、まだいいねしていない場合のみ許可。
func CanLikePost(post *model.Post, user *model.User, alreadyLiked bool) bool {
	if post == nil || user == nil {
		return false
	}
	if post.AuthorUsername == user.Username {
		return false
	}
	return !alreadyLiked
}
