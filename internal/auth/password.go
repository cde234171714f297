// Package auth はパスワード認証、Cookie署名、サインアップ/ログインの
// ビジネスロジックを提供する。
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// saltLength はパスワードソルトの文字数。
const saltLength = 5

// saltAlphabet はソルト生成に使用する文字集合（英字のみ）。
const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// HashPassword はランダムなソルトを生成し、
// "<salt>,<hex_sha256(username+password+salt)>" 形式のレコードを返す。
func HashPassword(username, password string) (string, error) {
	salt, err := makeSalt()
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hashWithSalt(username, password, salt), nil
}

// VerifyPassword は保存済みレコードに対してパスワードを検証する。
// レコードからソルトを取り出して同じハッシュを再計算し、文字列比較する。
// セパレータを含まない不正なレコードはデータ整合性エラーとして扱う。
func VerifyPassword(username, password, record string) (bool, error) {
	salt, _, found := strings.Cut(record, ",")
	if !found {
		return false, fmt.Errorf("malformed password record: missing separator")
	}
	return hashWithSalt(username, password, salt) == record, nil
}

// hashWithSalt は固定ソルトに対して決定的なハッシュレコードを計算する。
// 検証時に同一ソルトで再計算できることが要件。
func hashWithSalt(username, password, salt string) string {
	digest := sha256.Sum256([]byte(username + password + salt))
	return salt + "," + hex.EncodeToString(digest[:])
}

// makeSalt は暗号的に安全な乱数から英字ソルトを生成する。
func makeSalt() (string, error) {
	b := make([]byte, saltLength)
	max := big.NewInt(int64(len(saltAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = saltAlphabet[n.Int64()]
	}
	return string(b), nil
}
