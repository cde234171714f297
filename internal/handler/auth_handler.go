package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/miniblog/internal/auth"
	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/render"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	SignUp(ctx context.Context, params auth.SignUpParams) (*model.User, *auth.SignUpErrors, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

// CookieSigner はCookie値の署名インターフェース。
// auth.CookieCodecの部分集合として定義する。
type CookieSigner interface {
	Sign(value string) string
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain string
	CookieSecure bool
}

// AuthHandler はサインアップ・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	signer  CookieSigner
	config  AuthHandlerConfig
	pages   *pageRenderer
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, signer CookieSigner, config AuthHandlerConfig, renderer render.Renderer) *AuthHandler {
	return &AuthHandler{
		service: service,
		signer:  signer,
		config:  config,
		pages:   &pageRenderer{renderer: renderer},
	}
}

// ShowSignUp はサインアップフォームを表示する。
// GET /signup
func (h *AuthHandler) ShowSignUp(w http.ResponseWriter, r *http.Request) {
	h.pages.renderPage(w, r, "signup.html", nil)
}

// SignUp はサインアップフォームの送信を処理する。
// POST /signup
// 検証エラーの場合は入力値（パスワード以外）とエラーフラグ付きで
// フォームを再表示する。成功時はセッションCookieを設定して
// ウェルカムページを表示する。
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	params := auth.SignUpParams{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		Verify:   r.FormValue("verify"),
		Email:    r.FormValue("email"),
	}

	user, signupErrs, err := h.service.SignUp(r.Context(), params)
	if err != nil {
		internalError(w, err)
		return
	}
	if signupErrs != nil {
		h.pages.renderPage(w, r, "signup.html", map[string]any{
			"username":           params.Username,
			"email":              params.Email,
			"err_username":       signupErrs.ErrUsername,
			"err_password":       signupErrs.ErrPassword,
			"err_verify":         signupErrs.ErrVerify,
			"err_email":          signupErrs.ErrEmail,
			"err_username_taken": signupErrs.ErrUsernameTaken,
		})
		return
	}

	h.setSessionCookie(w, user.Username)
	h.pages.renderPage(w, r, "page_welcome.html", map[string]any{"user": user})
}

// ShowLogin はログインフォームを表示する。
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.pages.renderPage(w, r, "login.html", nil)
}

// Login はログインフォームの送信を処理する。
// POST /login
// 認証失敗時はCookieを設定せず、エラーフラグ付きでフォームを再表示する。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		internalError(w, err)
		return
	}
	if user == nil {
		h.pages.renderPage(w, r, "login.html", map[string]any{"error": true})
		return
	}

	h.setSessionCookie(w, user.Username)
	http.Redirect(w, r, "/blog", http.StatusMovedPermanently)
}

// Logout はセッションCookieを署名付き空文字列で上書きし、
// ログインページにリダイレクトする。
// GET /logout
// セッションはステートレスのため、サーバー側で破棄する状態は無い。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// setSessionCookie はユーザー名に署名してセッションCookieを設定する。
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    h.signer.Sign(username),
		Path:     "/",
		Domain:   h.config.CookieDomain,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
