package auth

import "regexp"

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	passwordRe = regexp.MustCompile(`^.{3,20}$`)
	emailRe    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

// ValidUsername はユーザー名の形式（英数字・アンダースコア・ハイフン、3〜20文字）を検証する。
func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

// ValidPassword はパスワードの長さ（3〜20文字）を検証する。
func ValidPassword(password string) bool {
	return passwordRe.MatchString(password)
}

// ValidEmail はメールアドレスの形式を検証する。
// メールアドレスは任意項目のため、空文字列は有効として扱う。
func ValidEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailRe.MatchString(email)
}
