package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
	"time"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// リフレッシュトークンの保存・取得・失効・掃除
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	// token文字列で1件検索。revoke済み・期限切れはSQL側で除外し (nil, nil)。
	FindValidByToken(ctx context.Context, token string, now time.Time) (*model.RefreshToken, error)
	// 未revokeの1件をrevokeする。対象がなければErrRefreshTokenNotFound。
	Revoke(ctx context.Context, token string) error
	// 指定ユーザーの未revokeトークンを全てrevokeし、件数を返す。
	RevokeAllByUserID(ctx context.Context, userID int64) (int64, error)
	// 期限切れの行を削除する（メンテナンス用。リクエスト経路では呼ばない）
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
