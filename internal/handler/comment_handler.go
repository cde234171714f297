package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/render"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	Add(ctx context.Context, user *model.User, postID, text string) (*model.Comment, error)
	Edit(ctx context.Context, user *model.User, commentID, text string) (*model.Comment, error)
	Delete(ctx context.Context, user *model.User, commentID string) error
}

// CommentHandler はコメントのajaxエンドポイントのHTTPハンドラー。
// レスポンスはJSONマーカー（{}、{"err_msg": true}、{"err_msg_critical": true}）
// または描画済みコメントフラグメント。
type CommentHandler struct {
	service CommentServiceInterface
	pages   *pageRenderer
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface, renderer render.Renderer) *CommentHandler {
	return &CommentHandler{
		service: service,
		pages:   &pageRenderer{renderer: renderer},
	}
}

// CreateComment は記事へのコメント追加を処理する。
// POST /blog/{id}/comment
// 空コメントは {"err_msg": true}、未ログイン・記事未検出は
// {"err_msg_critical": true}。成功時は描画済みフラグメントを返す。
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUserFromContext(r.Context())

	comment, err := h.service.Add(r.Context(), user, chi.URLParam(r, "id"), r.FormValue("comment"))
	if err != nil {
		switch apiErrorCode(err) {
		case model.ErrCodeEmptyComment:
			writeJSON(w, map[string]any{"err_msg": true})
		case model.ErrCodeUnauthenticated, model.ErrCodePostNotFound:
			writeJSON(w, map[string]any{"err_msg_critical": true})
		default:
			internalError(w, err)
		}
		return
	}

	h.renderFragment(w, r, comment)
}

// EditComment はコメント本文の更新を処理する。
// POST /comment/{id}/edit
// 未検出・投稿者以外は {"err_msg_critical": true}、空本文は
// {"err_msg": true}。成功時は描画済みフラグメントを返す。
func (h *CommentHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUserFromContext(r.Context())

	comment, err := h.service.Edit(r.Context(), user, chi.URLParam(r, "id"), r.FormValue("comment"))
	if err != nil {
		switch apiErrorCode(err) {
		case model.ErrCodeEmptyComment:
			writeJSON(w, map[string]any{"err_msg": true})
		case model.ErrCodeCommentNotFound, model.ErrCodeNotCommentAuthor:
			writeJSON(w, map[string]any{"err_msg_critical": true})
		default:
			internalError(w, err)
		}
		return
	}

	h.renderFragment(w, r, comment)
}

// DeleteComment はコメントの削除を処理する。
// POST /comment/{id}/delete
// 未検出・投稿者以外は {"err_msg_critical": true}、成功時は {}。
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUserFromContext(r.Context())

	if err := h.service.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		switch apiErrorCode(err) {
		case model.ErrCodeCommentNotFound, model.ErrCodeNotCommentAuthor:
			writeJSON(w, map[string]any{"err_msg_critical": true})
		default:
			internalError(w, err)
		}
		return
	}

	writeJSON(w, map[string]any{})
}

// renderFragment はコメントのHTMLフラグメントを描画する。
// 作成・更新エンドポイントは現在のユーザー自身のコメントのみ返すため、
// 編集・削除ボタン付き（own=true）で描画する。
func (h *CommentHandler) renderFragment(w http.ResponseWriter, r *http.Request, comment *model.Comment) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.renderer.Render(w, "comment.html", map[string]any{
		"comment": comment,
		"own":     true,
	}); err != nil {
		internalError(w, err)
	}
}
