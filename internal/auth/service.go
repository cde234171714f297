package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/repository"
)

// SignUpParams はサインアップフォームの入力値。
type SignUpParams struct {
	Username string
	Password string
	Verify   string
	Email    string
}

// SignUpErrors はサインアップ時のフィールド別エラーフラグ。
// テンプレートのエラー表示フラグと1対1に対応する。
type SignUpErrors struct {
	ErrUsername      bool
	ErrPassword      bool
	ErrVerify        bool
	ErrEmail         bool
	ErrUsernameTaken bool
}

// HasError はいずれかのフラグが立っているかを返す。
func (e SignUpErrors) HasError() bool {
	return e.ErrUsername || e.ErrPassword || e.ErrVerify || e.ErrEmail || e.ErrUsernameTaken
}

// MetricsRecorder はサインアップ数・ログイン失敗数のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordSignup()
	RecordLoginFailure()
}

// Service はサインアップとログインのビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	metrics  MetricsRecorder
}

// NewService はServiceを生成する。metricsはnilを許容する。
func NewService(userRepo repository.UserRepository, metrics MetricsRecorder) *Service {
	return &Service{userRepo: userRepo, metrics: metrics}
}

// SignUp は入力値を検証し、新規ユーザーを作成する。
// 検証エラーの場合はフラグ付きのSignUpErrorsを返し、ユーザーは作成しない。
// パスワード一致の検証は、パスワード自体が有効な場合にのみ行う。
//
// ユーザー名の重複は事前チェックで検出する（read-then-writeのため同時
// サインアップの競合窓は残るが、最終的にはDBの一意制約が防衛線になる）。
func (s *Service) SignUp(ctx context.Context, params SignUpParams) (*model.User, *SignUpErrors, error) {
	errs := &SignUpErrors{
		ErrUsername: !ValidUsername(params.Username),
		ErrPassword: !ValidPassword(params.Password),
		ErrEmail:    !ValidEmail(params.Email),
	}
	if !errs.ErrPassword {
		errs.ErrVerify = params.Password != params.Verify
	}
	if errs.HasError() {
		return nil, errs, nil
	}

	existing, err := s.userRepo.FindByUsername(ctx, params.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		errs.ErrUsernameTaken = true
		return nil, errs, nil
	}

	record, err := HashPassword(params.Username, params.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     params.Username,
		PasswordHash: record,
		Email:        params.Email,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordSignup()
	}

	slog.Info("new user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil, nil
}

// Login はユーザー名とパスワードを検証する。
// ユーザーが存在しない場合とパスワードが一致しない場合はどちらも
// (nil, nil) を返し、呼び出し側からは区別できない。
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		if s.metrics != nil {
			s.metrics.RecordLoginFailure()
		}
		return nil, nil
	}

	ok, err := VerifyPassword(username, password, user.PasswordHash)
	if err != nil {
		// 不正なハッシュレコードは検証エラーではなくデータ整合性の問題
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordLoginFailure()
		}
		slog.Warn("login failed", slog.String("username", username))
		return nil, nil
	}

	return user, nil
}
