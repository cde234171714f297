package repository

import (
	"testing"
	"time"

	"github.com/hitoshi/miniblog/internal/model"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresPostRepoはPostRepositoryインターフェースを満たすことを検証
func TestPostgresPostRepo_ImplementsInterface(t *testing.T) {
	var _ PostRepository = (*PostgresPostRepo)(nil)
}

// PostgresLikeRepoはLikeRepositoryインターフェースを満たすことを検証
func TestPostgresLikeRepo_ImplementsInterface(t *testing.T) {
	var _ LikeRepository = (*PostgresLikeRepo)(nil)
}

// PostgresCommentRepoはCommentRepositoryインターフェースを満たすことを検証
func TestPostgresCommentRepo_ImplementsInterface(t *testing.T) {
	var _ CommentRepository = (*PostgresCommentRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresPostRepoが正しく初期化されることを検証
func TestNewPostgresPostRepo_Initializes(t *testing.T) {
	repo := NewPostgresPostRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresLikeRepoが正しく初期化されることを検証
func TestNewPostgresLikeRepo_Initializes(t *testing.T) {
	repo := NewPostgresLikeRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresCommentRepoが正しく初期化されることを検証
func TestNewPostgresCommentRepo_Initializes(t *testing.T) {
	repo := NewPostgresCommentRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// Userモデルのフィールドが正しく構築されることを検証
func TestPostgresUserRepo_UserModel_Fields(t *testing.T) {
	now := time.Now()
	user := &model.User{
		ID:           "user-id-1",
		Username:     "alice",
		PasswordHash: "abcde,0123456789abcdef",
		Email:        "alice@example.com",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if user.Username != "alice" {
		t.Errorf("user.Username = %q, want %q", user.Username, "alice")
	}
	if user.PasswordHash == "" {
		t.Error("user.PasswordHash should not be empty")
	}
}

// UserモデルのEmailが省略可能であることを検証
func TestPostgresUserRepo_UserModel_EmptyEmail(t *testing.T) {
	user := &model.User{
		ID:       "user-id-2",
		Username: "bob",
	}

	if user.Email != "" {
		t.Error("email should be empty by default")
	}
}

// PostモデルのAuthorUsernameがJOIN由来の表示用フィールドであることを検証
func TestPostgresPostRepo_PostModel_AuthorUsername(t *testing.T) {
	post := &model.Post{
		ID:             "post-id-1",
		AuthorID:       "user-id-1",
		AuthorUsername: "alice",
		Subject:        "テスト記事",
		Content:        "本文",
	}

	if post.AuthorID != "user-id-1" {
		t.Errorf("post.AuthorID = %q, want %q", post.AuthorID, "user-id-1")
	}
	if post.AuthorUsername != "alice" {
		t.Errorf("post.AuthorUsername = %q, want %q", post.AuthorUsername, "alice")
	}
}

// LikeモデルのUserIDとPostIDの組み合わせが一意であることの期待動作
func TestPostgresLikeRepo_LikeModel_UserPostPair(t *testing.T) {
	like := &model.Like{
		ID:     "like-id-1",
		UserID: "user-id-1",
		PostID: "post-id-1",
	}

	if like.UserID == "" || like.PostID == "" {
		t.Error("like requires both user_id and post_id")
	}
}

// CommentモデルのUserIDが所有判定の基準であることを検証
func TestPostgresCommentRepo_CommentModel_OwnerByUserID(t *testing.T) {
	comment := &model.Comment{
		ID:       "comment-id-1",
		UserID:   "user-id-1",
		Username: "alice",
		PostID:   "post-id-1",
		Text:     "コメント本文",
	}

	if comment.UserID != "user-id-1" {
		t.Errorf("comment.UserID = %q, want %q", comment.UserID, "user-id-1")
	}
	if comment.Username != "alice" {
		t.Errorf("comment.Username = %q, want %q", comment.Username, "alice")
	}
}
