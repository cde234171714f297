// Package render はHTMLテンプレートのレンダリングを提供する。
//
// ハンドラーはRendererインターフェースにのみ依存し、テンプレートエンジンの
// 実装（html/template）には依存しない。
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

// Renderer はテンプレート名とパラメータからHTMLを書き出すインターフェース。
type Renderer interface {
	// Render は指定テンプレートをdataで描画してwに書き込む。
	// 全ページテンプレートはdata["user"]として現在のユーザー
	// （未ログイン時はnil）を受け取る。
	Render(w io.Writer, name string, data map[string]any) error
}

//go:embed templates/*.html
var templatesFS embed.FS

// HTMLRenderer はhtml/templateによるRendererの実装。
// テンプレートはバイナリに埋め込まれ、起動時に1回だけパースされる。
// html/templateのコンテキスト対応自動エスケープにより、ユーザー入力は
// 描画時にもエスケープされる。
type HTMLRenderer struct {
	templates *template.Template
}

// NewHTMLRenderer は埋め込みテンプレートをパースしてHTMLRendererを生成する。
func NewHTMLRenderer() (*HTMLRenderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &HTMLRenderer{templates: t}, nil
}

// Render は指定テンプレートをdataで描画してwに書き込む。
func (r *HTMLRenderer) Render(w io.Writer, name string, data map[string]any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return nil
}

// compile-time interface check
var _ Renderer = (*HTMLRenderer)(nil)
