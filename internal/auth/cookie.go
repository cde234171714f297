package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// CookieCodec はCookie値の署名と検証を行う。
// 署名形式は "<value>|<hex_hmac_sha256>"。暗号化ではないため
// 値そのものはクライアントから読み取れる（改ざんのみ検出する）。
//
// 値に '|' を含めないことは呼び出し側の不変条件。ユーザー名は
// [a-zA-Z0-9_-]{3,20} に制限されているためこの条件を常に満たす。
type CookieCodec struct {
	secret []byte
}

// NewCookieCodec は署名鍵を保持するCookieCodecを生成する。
func NewCookieCodec(secret string) *CookieCodec {
	return &CookieCodec{secret: []byte(secret)}
}

// Sign は値にHMAC-SHA256署名を付与した文字列を返す。
func (c *CookieCodec) Sign(value string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(value))
	return value + "|" + hex.EncodeToString(mac.Sum(nil))
}

// Verify は署名済み文字列を検証し、元の値を返す。
// 最初の '|' より前を値として取り出し、署名を再計算して比較する。
// 署名が一致しない場合は ok=false を返す。
func (c *CookieCodec) Verify(signed string) (value string, ok bool) {
	value, _, found := strings.Cut(signed, "|")
	if !found {
		return "", false
	}
	if !hmac.Equal([]byte(c.Sign(value)), []byte(signed)) {
		return "", false
	}
	return value, true
}
