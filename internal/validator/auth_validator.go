package validator

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"app/internal/domain/model"
	"app/internal/usecase"
)

// 簡易メール形式
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// サインアップの入力を検証。
// 失敗はすべてErrValidationをラップして返す（handlerは400 + 詳細メッセージ）。
func (v *authValidator) ValidateRegister(ctx context.Context, email string, password string, role string) error {
	email = strings.TrimSpace(email)

	// 必須チェック
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", usecase.ErrValidation)
	}

	// email形式
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", usecase.ErrValidation)
	}

	// パスワード最低文字数（8）
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", usecase.ErrValidation)
	}

	// roleはadmin/userのみ
	if role != string(model.RoleAdmin) && role != string(model.RoleUser) {
		return fmt.Errorf("%w: invalid role", usecase.ErrValidation)
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", usecase.ErrValidation)
	}

	return nil
}
