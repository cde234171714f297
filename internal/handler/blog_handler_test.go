package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/miniblog/internal/middleware"
	"github.com/hitoshi/miniblog/internal/model"
)

// --- モック定義 ---

type mockPostService struct {
	listRecentFn func(ctx context.Context) ([]*model.Post, error)
	getFn        func(ctx context.Context, postID string) (*model.Post, error)
	createFn     func(ctx context.Context, author *model.User, subject, content string) (*model.Post, error)
	updateFn     func(ctx context.Context, user *model.User, postID, subject, content string) (*model.Post, error)
	deleteFn     func(ctx context.Context, user *model.User, postID string) error
	likeFn       func(ctx context.Context, user *model.User, postID string) (bool, error)
	likedFn      func(ctx context.Context, user *model.User, postID string) (bool, error)
	likeCountFn  func(ctx context.Context, postID string) (int, error)
}

func (m *mockPostService) ListRecent(ctx context.Context) ([]*model.Post, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx)
	}
	return nil, nil
}

func (m *mockPostService) Get(ctx context.Context, postID string) (*model.Post, error) {
	if m.getFn != nil {
		return m.getFn(ctx, postID)
	}
	return nil, model.NewPostNotFoundError(postID)
}

func (m *mockPostService) Create(ctx context.Context, author *model.User, subject, content string) (*model.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, author, subject, content)
	}
	return nil, nil
}

func (m *mockPostService) Update(ctx context.Context, user *model.User, postID, subject, content string) (*model.Post, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, user, postID, subject, content)
	}
	return nil, nil
}

func (m *mockPostService) Delete(ctx context.Context, user *model.User, postID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, user, postID)
	}
	return nil
}

func (m *mockPostService) Like(ctx context.Context, user *model.User, postID string) (bool, error) {
	if m.likeFn != nil {
		return m.likeFn(ctx, user, postID)
	}
	return false, nil
}

func (m *mockPostService) Liked(ctx context.Context, user *model.User, postID string) (bool, error) {
	if m.likedFn != nil {
		return m.likedFn(ctx, user, postID)
	}
	return false, nil
}

func (m *mockPostService) LikeCount(ctx context.Context, postID string) (int, error) {
	if m.likeCountFn != nil {
		return m.likeCountFn(ctx, postID)
	}
	return 0, nil
}

type mockCommentLister struct {
	listByPostFn func(ctx context.Context, postID string) ([]*model.Comment, error)
}

func (m *mockCommentLister) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return nil, nil
}

var _ PostServiceInterface = (*mockPostService)(nil)
var _ CommentListerInterface = (*mockCommentLister)(nil)

// --- テストヘルパー ---

// withUser はテスト用にリクエストコンテキストにユーザーを注入するヘルパー。
func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(middleware.ContextWithUser(r.Context(), user))
}

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func newBlogHandler(t *testing.T, posts PostServiceInterface, comments CommentListerInterface) *BlogHandler {
	t.Helper()
	if comments == nil {
		comments = &mockCommentLister{}
	}
	return NewBlogHandler(posts, comments, testRenderer(t))
}

func alicePost() *model.Post {
	return &model.Post{
		ID:             "post-1",
		AuthorID:       "user-1",
		AuthorUsername: "alice",
		Subject:        "タイトル",
		Content:        "本文",
	}
}

// --- テスト ---

func TestFront_ListsPosts(t *testing.T) {
	posts := &mockPostService{
		listRecentFn: func(ctx context.Context) ([]*model.Post, error) {
			return []*model.Post{alicePost()}, nil
		},
	}
	h := newBlogHandler(t, posts, nil)

	w := httptest.NewRecorder()
	h.Front(w, httptest.NewRequest(http.MethodGet, "/blog", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "タイトル") {
		t.Error("expected post subject in front page")
	}
}

func TestShow_RendersPostWithComments(t *testing.T) {
	posts := &mockPostService{
		getFn: func(ctx context.Context, postID string) (*model.Post, error) {
			return alicePost(), nil
		},
		likeCountFn: func(ctx context.Context, postID string) (int, error) {
			return 2, nil
		},
	}
	comments := &mockCommentLister{
		listByPostFn: func(ctx context.Context, postID string) ([]*model.Comment, error) {
			return []*model.Comment{
				{ID: "comment-1", UserID: "user-2", Username: "bob", PostID: postID, Text: "いいですね"},
			}, nil
		},
	}
	h := newBlogHandler(t, posts, comments)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/post-1", nil), "id", "post-1")
	w := httptest.NewRecorder()
	h.Show(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	html := w.Body.String()
	if !strings.Contains(html, "タイトル") {
		t.Error("expected post subject")
	}
	if !strings.Contains(html, "いいですね") {
		t.Error("expected comment text")
	}
	if !strings.Contains(html, "2 likes") {
		t.Error("expected like count")
	}
}

func TestShow_NotFound(t *testing.T) {
	h := newBlogHandler(t, &mockPostService{}, nil)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/missing", nil), "id", "missing")
	w := httptest.NewRecorder()
	h.Show(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestShowNewPost_AnonymousRedirectsToLogin(t *testing.T) {
	h := newBlogHandler(t, &mockPostService{}, nil)

	w := httptest.NewRecorder()
	h.ShowNewPost(w, httptest.NewRequest(http.MethodGet, "/blog/newpost", nil))

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q, want /login", loc)
	}
}

func TestCreatePost_Success_RedirectsToPermalink(t *testing.T) {
	alice := &model.User{ID: "user-1", Username: "alice"}
	posts := &mockPostService{
		createFn: func(ctx context.Context, author *model.User, subject, content string) (*model.Post, error) {
			return &model.Post{ID: "post-9", AuthorUsername: author.Username, Subject: subject, Content: content}, nil
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(postForm("/blog/newpost", url.Values{
		"subject": {"タイトル"},
		"content": {"本文"},
	}), alice)
	w := httptest.NewRecorder()
	h.CreatePost(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/blog/post-9" {
		t.Errorf("redirect = %q, want /blog/post-9", loc)
	}
}

func TestCreatePost_EmptyFields_RerendersForm(t *testing.T) {
	alice := &model.User{ID: "user-1", Username: "alice"}
	posts := &mockPostService{
		createFn: func(ctx context.Context, author *model.User, subject, content string) (*model.Post, error) {
			return nil, model.NewEmptyPostFieldsError()
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(postForm("/blog/newpost", url.Values{
		"subject": {"タイトルのみ"},
		"content": {""},
	}), alice)
	w := httptest.NewRecorder()
	h.CreatePost(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (re-rendered form)", w.Code)
	}
	// 入力値は保持される
	if !strings.Contains(w.Body.String(), "タイトルのみ") {
		t.Error("expected subject to be retained in form")
	}
}

func TestShowEdit_NonAuthor_NotAllowed(t *testing.T) {
	bob := &model.User{ID: "user-2", Username: "bob"}
	posts := &mockPostService{
		getFn: func(ctx context.Context, postID string) (*model.Post, error) {
			return alicePost(), nil
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/post-1/edit", nil), "id", "post-1"), bob)
	w := httptest.NewRecorder()
	h.ShowEdit(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestShowEdit_Author_RendersForm(t *testing.T) {
	alice := &model.User{ID: "user-1", Username: "alice"}
	posts := &mockPostService{
		getFn: func(ctx context.Context, postID string) (*model.Post, error) {
			return alicePost(), nil
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(withChiURLParam(httptest.NewRequest(http.MethodGet, "/blog/post-1/edit", nil), "id", "post-1"), alice)
	w := httptest.NewRecorder()
	h.ShowEdit(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "タイトル") {
		t.Error("expected current subject in edit form")
	}
}

func TestEditPost_NonAuthor_NotAllowed(t *testing.T) {
	bob := &model.User{ID: "user-2", Username: "bob"}
	posts := &mockPostService{
		updateFn: func(ctx context.Context, user *model.User, postID, subject, content string) (*model.Post, error) {
			return nil, model.NewNotPostAuthorError()
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(withChiURLParam(postForm("/blog/post-1/edit", url.Values{
		"subject": {"x"},
		"content": {"y"},
	}), "id", "post-1"), bob)
	w := httptest.NewRecorder()
	h.EditPost(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestDeletePost_Success_RedirectsToFront(t *testing.T) {
	alice := &model.User{ID: "user-1", Username: "alice"}
	deleted := false
	posts := &mockPostService{
		deleteFn: func(ctx context.Context, user *model.User, postID string) error {
			deleted = true
			return nil
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(withChiURLParam(postForm("/blog/post-1/delete", url.Values{}), "id", "post-1"), alice)
	w := httptest.NewRecorder()
	h.DeletePost(w, req)

	if !deleted {
		t.Error("expected delete to be called")
	}
	if w.Code != http.StatusMovedPermanently {
		t.Errorf("status = %d, want 301", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/blog" {
		t.Errorf("redirect = %q, want /blog", loc)
	}
}

func TestDeletePost_NonAuthor_NotAllowed(t *testing.T) {
	bob := &model.User{ID: "user-2", Username: "bob"}
	posts := &mockPostService{
		deleteFn: func(ctx context.Context, user *model.User, postID string) error {
			return model.NewNotPostAuthorError()
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(withChiURLParam(postForm("/blog/post-1/delete", url.Values{}), "id", "post-1"), bob)
	w := httptest.NewRecorder()
	h.DeletePost(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestLikePost_Success_ReturnsEmptyObject(t *testing.T) {
	bob := &model.User{ID: "user-2", Username: "bob"}
	posts := &mockPostService{
		likeFn: func(ctx context.Context, user *model.User, postID string) (bool, error) {
			return true, nil
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(withChiURLParam(postForm("/blog/post-1/like", url.Values{}), "id", "post-1"), bob)
	w := httptest.NewRecorder()
	h.LikePost(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "{}" {
		t.Errorf("body = %q, want {}", got)
	}
}

func TestLikePost_Disallowed_SilentNoop(t *testing.T) {
	alice := &model.User{ID: "user-1", Username: "alice"}
	posts := &mockPostService{
		likeFn: func(ctx context.Context, user *model.User, postID string) (bool, error) {
			// 自分の記事・いいね済みはliked=false
			return false, nil
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(withChiURLParam(postForm("/blog/post-1/like", url.Values{}), "id", "post-1"), alice)
	w := httptest.NewRecorder()
	h.LikePost(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestLikePost_MissingPost_SilentNoop(t *testing.T) {
	bob := &model.User{ID: "user-2", Username: "bob"}
	posts := &mockPostService{
		likeFn: func(ctx context.Context, user *model.User, postID string) (bool, error) {
			return false, model.NewPostNotFoundError(postID)
		},
	}
	h := newBlogHandler(t, posts, nil)

	req := withUser(withChiURLParam(postForm("/blog/missing/like", url.Values{}), "id", "missing"), bob)
	w := httptest.NewRecorder()
	h.LikePost(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}
