// Package comment はコメントのドメインロジックを提供する。
package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/miniblog/internal/authz"
	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/repository"
	"github.com/hitoshi/miniblog/internal/security"
)

// MetricsRecorder はコメント作成数のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordCommentCreated()
}

// Service はコメントのサービス層。
// コメントの所有権はauthz.CanMutateCommentでID比較により判定される
// （記事のユーザー名比較とは異なる）。
type Service struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	sanitizer   security.ContentSanitizerService
	metrics     MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilを許容する。
func NewService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	sanitizer security.ContentSanitizerService,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		sanitizer:   sanitizer,
		metrics:     metrics,
	}
}

// ListByPost は記事のコメント一覧を作成日時の昇順で返す。
func (s *Service) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	return comments, nil
}

// Add は記事にコメントを追加する。
// 未ログインはUNAUTHENTICATED、空コメントはEMPTY_COMMENT、
// 記事が存在しない場合はPOST_NOT_FOUNDエラーを返す。
func (s *Service) Add(ctx context.Context, user *model.User, postID, text string) (*model.Comment, error) {
	if user == nil {
		return nil, model.NewUnauthenticatedError()
	}
	if text == "" {
		return nil, model.NewEmptyCommentError()
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	now := time.Now()
	comment := &model.Comment{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		PostID:    post.ID,
		Text:      s.sanitizer.Sanitize(text),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("コメントの作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordCommentCreated()
	}

	return comment, nil
}

// Edit はコメント本文を更新する。
// コメントが存在しない場合はCOMMENT_NOT_FOUND、投稿者以外からの更新は
// NOT_COMMENT_AUTHOR、空本文はEMPTY_COMMENTエラーを返す。
func (s *Service) Edit(ctx context.Context, user *model.User, commentID, text string) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("コメントの取得に失敗しました: %w", err)
	}
	if comment == nil {
		return nil, model.NewCommentNotFoundError(commentID)
	}
	if !authz.CanMutateComment(comment, user) {
		return nil, model.NewNotCommentAuthorError()
	}
	if text == "" {
		return nil, model.NewEmptyCommentError()
	}

	comment.Text = s.sanitizer.Sanitize(text)
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("コメントの更新に失敗しました: %w", err)
	}

	return comment, nil
}

// Delete はコメントを削除する。
// コメントが存在しない場合はCOMMENT_NOT_FOUND、投稿者以外からの削除は
// NOT_COMMENT_AUTHORエラーを返す。
func (s *Service) Delete(ctx context.Context, user *model.User, commentID string) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("コメントの取得に失敗しました: %w", err)
	}
	if comment == nil {
		return model.NewCommentNotFoundError(commentID)
	}
	if !authz.CanMutateComment(comment, user) {
		return model.NewNotCommentAuthorError()
	}

	if err := s.commentRepo.DeleteByID(ctx, commentID); err != nil {
		return fmt.Errorf("コメントの削除に失敗しました: %w", err)
	}

	return nil
}
