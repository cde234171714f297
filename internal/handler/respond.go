// Package handler はHTTPハンドラーを提供する。
//
// フルページのHTMLレスポンスと、コメント・いいね用のajaxレスポンス
// （JSONマーカーまたはHTMLフラグメント）の両方を扱う。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/render"
)

// pageRenderer はページ描画の共通処理を提供する。
// 全ページにdata["user"]として現在のユーザー（未ログイン時はnil）を渡す。
type pageRenderer struct {
	renderer render.Renderer
}

// renderPage は指定テンプレートを描画する。
// data["user"]が未設定の場合、リクエストコンテキストの現在ユーザーを注入する。
// 描画エラーは500として処理する（ハンドラーをクラッシュさせない）。
func (p *pageRenderer) renderPage(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["user"]; !ok {
		user, _ := middleware.CurrentUserFromContext(r.Context())
		data["user"] = user
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.renderer.Render(w, name, data); err != nil {
		slog.Error("failed to render page",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// renderNotFound は記事・コメント未検出ページを描画する。
func (p *pageRenderer) renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	p.renderPage(w, r, "page_not_found.html", nil)
}

// renderNotAllowed は権限なしページを描画する。
func (p *pageRenderer) renderNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
	p.renderPage(w, r, "page_not_allowed.html", nil)
}

// writeJSON はajaxエンドポイントのJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// apiErrorCode はエラーからAPIErrorのコードを取り出す。
// APIErrorでない場合は空文字列を返す。
func apiErrorCode(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// internalError は想定外のエラーをログに記録して500を返す。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func internalError(w http.ResponseWriter, err error) {
	slog.Error("handler failed", slog.String("error", err.Error()))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
