package handler

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/render"
)

//go:embed static
var staticFS embed.FS

// HealthChecker はヘルスチェックに必要なインターフェース。*sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CookieCodec middleware.CookieVerifier
	UserFinder  middleware.UserFinder
	RateLimiter *middleware.RateLimiter
	Metrics     middleware.HTTPMetricsRecorder

	// 描画
	Renderer render.Renderer

	// 認証
	AuthService  AuthServiceInterface
	CookieSigner CookieSigner
	AuthConfig   AuthHandlerConfig

	// ブログ
	PostService    PostServiceInterface
	CommentService CommentServiceInterface
	CommentLister  CommentListerInterface

	// 運用
	HealthChecker  HealthChecker
	MetricsHandler http.Handler
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Metrics → Session → Logging → RateLimit(General)
//
// セッション解決は全ルートで行うが、失敗しても匿名として続行する。
// /health、/metrics、/static はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.CookieSigner, deps.AuthConfig, deps.Renderer)
	blogHandler := NewBlogHandler(deps.PostService, deps.CommentLister, deps.Renderer)
	commentHandler := NewCommentHandler(deps.CommentService, deps.Renderer)

	// --- 運用ルート（セッション・レート制限の外） ---

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := deps.HealthChecker.PingContext(req.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	staticRoot, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))

	// --- アプリケーションルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.CookieCodec, deps.UserFinder))
		r.Use(middleware.NewLoggingMiddleware(slog.Default()))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		r.Get("/", blogHandler.Front)

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", blogHandler.Front)
			r.Get("/newpost", blogHandler.ShowNewPost)
			r.Post("/newpost", blogHandler.CreatePost)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", blogHandler.Show)
				r.Get("/edit", blogHandler.ShowEdit)
				r.Post("/edit", blogHandler.EditPost)
				r.Get("/delete", blogHandler.ShowDelete)
				r.Post("/delete", blogHandler.DeletePost)
				r.Post("/like", blogHandler.LikePost)
				r.Post("/comment", commentHandler.CreateComment)
			})
		})

		r.Route("/comment/{id}", func(r chi.Router) {
			r.Post("/edit", commentHandler.EditComment)
			r.Post("/delete", commentHandler.DeleteComment)
		})

		// サインアップ/ログインのPOSTには総当たり対策のレート制限を追加
		r.Group(func(r chi.Router) {
			if deps.RateLimiter != nil {
				r.Use(deps.RateLimiter.AuthMiddleware())
			}
			r.Get("/signup", authHandler.ShowSignUp)
			r.Post("/signup", authHandler.SignUp)
			r.Get("/login", authHandler.ShowLogin)
			r.Post("/login", authHandler.Login)
		})

		r.Get("/logout", authHandler.Logout)
	})

	return r
}
