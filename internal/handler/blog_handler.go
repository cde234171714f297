package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/miniblog/internal/authz"
	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/model"
	"github.com/hitoshi/miniblog/internal/render"
)

// PostServiceInterface はブログハンドラーが必要とする記事サービスインターフェース。
type PostServiceInterface interface {
	ListRecent(ctx context.Context) ([]*model.Post, error)
	Get(ctx context.Context, postID string) (*model.Post, error)
	Create(ctx context.Context, author *model.User, subject, content string) (*model.Post, error)
	Update(ctx context.Context, user *model.User, postID, subject, content string) (*model.Post, error)
	Delete(ctx context.Context, user *model.User, postID string) error
	Like(ctx context.Context, user *model.User, postID string) (bool, error)
	Liked(ctx context.Context, user *model.User, postID string) (bool, error)
	LikeCount(ctx context.Context, postID string) (int, error)
}

// CommentListerInterface は記事ページのコメント一覧取得インターフェース。
type CommentListerInterface interface {
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
}

// BlogHandler は記事の閲覧・作成・編集・削除・いいねのHTTPハンドラー。
type BlogHandler struct {
	posts    PostServiceInterface
	comments CommentListerInterface
	pages    *pageRenderer
}

// NewBlogHandler はBlogHandlerを生成する。
func NewBlogHandler(posts PostServiceInterface, comments CommentListerInterface, renderer render.Renderer) *BlogHandler {
	return &BlogHandler{
		posts:    posts,
		comments: comments,
		pages:    &pageRenderer{renderer: renderer},
	}
}

// Front はフロントページを表示する。最新10件の記事を新しい順に並べる。
// GET / および GET /blog
func (h *BlogHandler) Front(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListRecent(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	h.pages.renderPage(w, r, "blog.html", map[string]any{"posts": posts})
}

// Show は記事の個別ページを表示する。
// GET /blog/{id}
func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apiErrorCode(err) == model.ErrCodePostNotFound {
			h.pages.renderNotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	comments, err := h.comments.ListByPost(r.Context(), post.ID)
	if err != nil {
		internalError(w, err)
		return
	}

	user, _ := middleware.CurrentUserFromContext(r.Context())
	liked, err := h.posts.Liked(r.Context(), user, post.ID)
	if err != nil {
		internalError(w, err)
		return
	}
	likeCount, err := h.posts.LikeCount(r.Context(), post.ID)
	if err != nil {
		internalError(w, err)
		return
	}

	h.pages.renderPage(w, r, "post_permalink.html", map[string]any{
		"post":       post,
		"comments":   comments,
		"liked":      liked,
		"like_count": likeCount,
	})
}

// ShowNewPost は新規記事フォームを表示する。未ログインはログインページへ。
// GET /blog/newpost
func (h *BlogHandler) ShowNewPost(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CurrentUserFromContext(r.Context()); !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.pages.renderPage(w, r, "newpost.html", nil)
}

// CreatePost は新規記事フォームの送信を処理する。
// POST /blog/newpost
// タイトル・本文どちらかが空の場合は入力値とエラーフラグ付きで再表示する。
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	subject := r.FormValue("subject")
	content := r.FormValue("content")

	post, err := h.posts.Create(r.Context(), user, subject, content)
	if err != nil {
		if apiErrorCode(err) == model.ErrCodeEmptyPostFields {
			h.pages.renderPage(w, r, "newpost.html", map[string]any{
				"subject": subject,
				"content": content,
				"err_msg": true,
			})
			return
		}
		internalError(w, err)
		return
	}

	http.Redirect(w, r, "/blog/"+post.ID, http.StatusFound)
}

// ShowEdit は記事編集フォームを表示する。著者以外には権限なしページを返す。
// GET /blog/{id}/edit
func (h *BlogHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	post, ok := h.getOwnedPost(w, r)
	if !ok {
		return
	}

	h.pages.renderPage(w, r, "post_edit.html", map[string]any{
		"post_id": post.ID,
		"subject": post.Subject,
		"content": post.Content,
	})
}

// EditPost は記事編集フォームの送信を処理する。
// POST /blog/{id}/edit
func (h *BlogHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	user, _ := middleware.CurrentUserFromContext(r.Context())

	subject := r.FormValue("subject")
	content := r.FormValue("content")

	post, err := h.posts.Update(r.Context(), user, postID, subject, content)
	if err != nil {
		switch apiErrorCode(err) {
		case model.ErrCodePostNotFound:
			h.pages.renderNotFound(w, r)
		case model.ErrCodeNotPostAuthor:
			h.pages.renderNotAllowed(w, r)
		case model.ErrCodeEmptyPostFields:
			h.pages.renderPage(w, r, "post_edit.html", map[string]any{
				"post_id": postID,
				"subject": subject,
				"content": content,
				"err_msg": true,
			})
		default:
			internalError(w, err)
		}
		return
	}

	http.Redirect(w, r, "/blog/"+post.ID, http.StatusFound)
}

// ShowDelete は記事削除の確認ページを表示する。
// GET /blog/{id}/delete
func (h *BlogHandler) ShowDelete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.getOwnedPost(w, r)
	if !ok {
		return
	}

	h.pages.renderPage(w, r, "post_delete.html", map[string]any{"post": post})
}

// DeletePost は記事と紐づくコメント・いいねを削除する。
// POST /blog/{id}/delete
// カスケード削除はトランザクションで完了が保証されるため、
// リダイレクト前の待機は行わない。
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUserFromContext(r.Context())

	if err := h.posts.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		switch apiErrorCode(err) {
		case model.ErrCodePostNotFound:
			h.pages.renderNotFound(w, r)
		case model.ErrCodeNotPostAuthor:
			h.pages.renderNotAllowed(w, r)
		default:
			internalError(w, err)
		}
		return
	}

	http.Redirect(w, r, "/blog", http.StatusMovedPermanently)
}

// LikePost は記事へのいいねを処理するajaxエンドポイント。
// POST /blog/{id}/like
// 成功時は {} を返す。未ログイン・自分の記事・いいね済みの場合は
// いいねを作成せず、本文なしで応答する（silent no-op）。
func (h *BlogHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUserFromContext(r.Context())

	liked, err := h.posts.Like(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		if apiErrorCode(err) != "" {
			// 存在しない記事へのいいねもno-op扱い
			w.WriteHeader(http.StatusOK)
			return
		}
		internalError(w, err)
		return
	}
	if !liked {
		w.WriteHeader(http.StatusOK)
		return
	}

	writeJSON(w, map[string]any{})
}

// getOwnedPost は記事を取得し、現在のユーザーが著者であることを確認する。
// 記事が無い場合は未検出ページ、著者以外には権限なしページを描画して
// (nil, false) を返す。
func (h *BlogHandler) getOwnedPost(w http.ResponseWriter, r *http.Request) (*model.Post, bool) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if apiErrorCode(err) == model.ErrCodePostNotFound {
			h.pages.renderNotFound(w, r)
			return nil, false
		}
		internalError(w, err)
		return nil, false
	}

	user, _ := middleware.CurrentUserFromContext(r.Context())
	if !authz.CanMutatePost(post, user) {
		h.pages.renderNotAllowed(w, r)
		return nil, false
	}

	return post, true
}
