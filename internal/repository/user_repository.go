package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
	"time"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// emailのunique制約違反
var ErrEmailTaken = errors.New("email already taken")

// ユーザーの保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成。email重複はErrEmailTaken。
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからなければ (nil, nil)。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	// メールからユーザーを1件取得する。見つからなければ (nil, nil)。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// APIキーからアクティブなユーザーを1件取得する。見つからなければ (nil, nil)。
	FindByApiKey(ctx context.Context, apiKey string) (*model.User, error)
	// APIキーを差し替える（前のキーは即時無効）
	UpdateApiKey(ctx context.Context, userID int64, apiKey string) error
	// 最終ログイン日時を更新
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	// アカウントの有効/無効
	SetActive(ctx context.Context, userID int64, active bool) error
}
