package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type refreshTokenGormRepository struct {
	db *gorm.DB // DB接続（GORM）
}

// GORM実装
func NewRefreshTokenRepository(db *gorm.DB) repo.RefreshTokenRepository {
	return &refreshTokenGormRepository{db: db}
}

// リフレッシュトークンを保存。
func (r *refreshTokenGormRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	// タイムアウトやキャンセルをDB処理に伝える
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return err
	}
	return nil
}

// token文字列で1件検索。revoke済み・期限切れはSQLで除外する。
func (r *refreshTokenGormRepository) FindValidByToken(ctx context.Context, tokenStr string, now time.Time) (*model.RefreshToken, error) {
	var token model.RefreshToken

	err := r.db.WithContext(ctx).
		Where("token = ? AND is_revoked = ? AND expires_at > ?", tokenStr, false, now).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &token, nil
}

// is_revokedを立てて失効させる。
// 更新件数0は「すでにrevoke済み/存在しない」なのでErrRefreshTokenNotFound。
func (r *refreshTokenGormRepository) Revoke(ctx context.Context, tokenStr string) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", tokenStr, false).
		Update("is_revoked", true)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrRefreshTokenNotFound
	}

	return nil
}

// 指定ユーザーの未revokeトークンを全てrevokeする（全端末ログアウト）。
func (r *refreshTokenGormRepository) RevokeAllByUserID(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true)

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// 期限切れの行を削除する。cronから呼ぶメンテナンス用。
func (r *refreshTokenGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.RefreshToken{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
