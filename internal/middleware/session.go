// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/miniblog/internal/model"
)

// SessionCookieName はユーザー名を保持する署名付きCookieの名前。
const SessionCookieName = "username"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// currentUserContextKey はリクエストコンテキストに現在のユーザーを格納するためのキー。
var currentUserContextKey = contextKey("current_user")

// CookieVerifier は署名付きCookie値の検証インターフェース。
// auth.CookieCodecの部分集合として定義する。
type CookieVerifier interface {
	Verify(signed string) (value string, ok bool)
}

// UserFinder はユーザー名からのユーザー検索に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// NewSessionMiddleware は署名付きCookieから現在のユーザーを解決する
// ミドルウェアを返す。
//
// Cookieが無い、署名が不正、値が空、ユーザーが存在しない、のいずれの
// 場合も匿名としてリクエストを続行する。ブログは未ログインの閲覧者にも
// 応答するため、ここでエラーレスポンスを返すことはない。署名不正も
// ユーザーにエラーとして見せず、単に未ログイン扱いにする。
func NewSessionMiddleware(codec CookieVerifier, users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieの取得
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			// 2. 署名の検証。改ざんされたCookieは匿名に落とす
			username, ok := codec.Verify(cookie.Value)
			if !ok || username == "" {
				next.ServeHTTP(w, r)
				return
			}

			// 3. ユーザーの解決
			user, err := users.FindByUsername(r.Context(), username)
			if err != nil {
				slog.Error("failed to resolve session user",
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			// 4. 現在のユーザーをコンテキストに注入
			ctx := context.WithValue(r.Context(), currentUserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUserFromContext はリクエストコンテキストから現在のユーザーを取得する。
// 匿名リクエストでは (nil, false) を返す。
func CurrentUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// ContextWithUser はコンテキストに現在のユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, currentUserContextKey, user)
}
