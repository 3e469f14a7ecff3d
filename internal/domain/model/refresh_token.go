package model

import "time"

type RefreshToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index"`
	Token     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	IsRevoked bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// 認証に使えるかどうか。revoke済みと期限切れは不可。
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.IsRevoked && t.ExpiresAt.After(now)
}
