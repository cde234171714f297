// Package post は記事といいねのドメインロジックを提供する。
package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/miniblog/internal/authz"
	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/repository"
	"github.com/hitoshi/miniblog/internal/security"
)

// frontPagePostLimit はフロントページに表示する記事の最大件数。
const frontPagePostLimit = 10

// MetricsRecorder は記事・いいね作成数のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordPostCreated()
	RecordLikeCreated()
}

// Service は記事といいねのサービス層。
// 変更系の操作は全てauthzパッケージの所有権チェックを通過してから
// リポジトリに触れる。
type Service struct {
	postRepo  repository.PostRepository
	likeRepo  repository.LikeRepository
	sanitizer security.ContentSanitizerService
	metrics   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilを許容する（テストやメトリクス無効時）。
func NewService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	sanitizer security.ContentSanitizerService,
	metrics MetricsRecorder,
) *Service {
	return &Service{
		postRepo:  postRepo,
		likeRepo:  likeRepo,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// ListRecent はフロントページ用に最新の記事を作成日時の降順で最大10件返す。
func (s *Service) ListRecent(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.ListRecent(ctx, frontPagePostLimit)
	if err != nil {
		return nil, fmt.Errorf("記事一覧の取得に失敗しました: %w", err)
	}
	return posts, nil
}

// Get は指定IDの記事を返す。存在しない場合はPOST_NOT_FOUNDエラー。
func (s *Service) Get(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("記事の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}
	return post, nil
}

// Create は新規記事を作成する。
// 未ログインはUNAUTHENTICATED、タイトル・本文どちらかが空なら
// EMPTY_POST_FIELDSエラーを返す。
func (s *Service) Create(ctx context.Context, author *model.User, subject, content string) (*model.Post, error) {
	if author == nil {
		return nil, model.NewUnauthenticatedError()
	}
	if subject == "" || content == "" {
		return nil, model.NewEmptyPostFieldsError()
	}

	now := time.Now()
	post := &model.Post{
		ID:             uuid.New().String(),
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Subject:        s.sanitizer.Sanitize(subject),
		Content:        s.sanitizer.Sanitize(content),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("記事の作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordPostCreated()
	}

	slog.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("author", post.AuthorUsername),
	)

	return post, nil
}

// Update は記事のタイトルと本文を更新し、updated_atを更新する。
// 著者以外からの更新はNOT_POST_AUTHORエラー。
func (s *Service) Update(ctx context.Context, user *model.User, postID, subject, content string) (*model.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !authz.CanMutatePost(post, user) {
		return nil, model.NewNotPostAuthorError()
	}
	if subject == "" || content == "" {
		return nil, model.NewEmptyPostFieldsError()
	}

	post.Subject = s.sanitizer.Sanitize(subject)
	post.Content = s.sanitizer.Sanitize(content)
	post.UpdatedAt = time.Now()

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("記事の更新に失敗しました: %w", err)
	}

	return post, nil
}

// Delete は記事と紐づくいいね・コメントを削除する。
// カスケード削除は単一トランザクションで行われ、リポジトリ呼び出しが
// 返った時点で完了が保証される（削除後の待機処理は不要）。
func (s *Service) Delete(ctx context.Context, user *model.User, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if !authz.CanMutatePost(post, user) {
		return model.NewNotPostAuthorError()
	}

	if err := s.postRepo.DeleteCascade(ctx, postID); err != nil {
		return fmt.Errorf("記事の削除に失敗しました: %w", err)
	}

	slog.Info("post deleted",
		slog.String("post_id", postID),
		slog.String("author", post.AuthorUsername),
	)

	return nil
}

// Like は記事にいいねを付ける。
// 未ログイン、自分の記事、既にいいね済みの場合はいいねを作成せず
// liked=falseを返す（エラーにはしない。ajax側は無応答のno-opになる）。
func (s *Service) Like(ctx context.Context, user *model.User, postID string) (liked bool, err error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	existing, err := s.likeRepo.FindByUserAndPost(ctx, user.ID, post.ID)
	if err != nil {
		return false, fmt.Errorf("いいねの取得に失敗しました: %w", err)
	}
	if !authz.CanLikePost(post, user, existing != nil) {
		return false, nil
	}

	like := &model.Like{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		PostID:    post.ID,
		CreatedAt: time.Now(),
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return false, fmt.Errorf("いいねの作成に失敗しました: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordLikeCreated()
	}

	return true, nil
}

// Liked はユーザーが記事にいいね済みかを返す。
func (s *Service) Liked(ctx context.Context, user *model.User, postID string) (bool, error) {
	if user == nil {
		return false, nil
	}
	like, err := s.likeRepo.FindByUserAndPost(ctx, user.ID, postID)
	if err != nil {
		return false, fmt.Errorf("いいねの取得に失敗しました: %w", err)
	}
	return like != nil, nil
}

// LikeCount は記事のいいね数を返す。
func (s *Service) LikeCount(ctx context.Context, postID string) (int, error) {
	count, err := s.likeRepo.CountByPostID(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("いいね数の取得に失敗しました: %w", err)
	}
	return count, nil
}
