// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はユーザーが投稿する記事本文・コメント本文を
// 保存前にサニタイズし、格納型XSSからユーザーを保護する。
// bluemondayライブラリの許可リストベースのポリシーで、
// 最小限のインライン整形タグのみを通過させる。
package security

import "github.com/microcosm-cc/bluemonday"

// ContentSanitizerService はユーザー投稿テキストのサニタイズ機能の
// インターフェースを定義する。記事・コメントの保存前に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力テキストをサニタイズして安全なテキストを返す。
	// 許可タグ（b, i, strong, em, br）のみを通過させ、
	// script、迷い込んだon*イベント属性、リンクやimgを含む
	// その他のタグは全て除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// 記事・コメントは基本的にプレーンテキストとして扱うため、
// 許可するのは属性を持たないインライン整形タグのみ:
//   - b, i, strong, em, br
//
// a, img を含む他の全タグとon*イベント属性は許可リスト外として除去される。
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "strong", "em", "br")

	return &contentSanitizer{
		policy: p,
	}
}

// Sanitize は入力テキストをサニタイズして安全なテキストを返す。
func (s *contentSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
