package model

import "time"

// APIレスポンスで使う日時フォーマット
const TimeLayout = "2006-01-02 15:04:05"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user'"`
	ApiKey       *string `gorm:"type:varchar(64);uniqueIndex"`
	IsActive     bool    `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeUserはpassword_hashとapi_keyを落とした返却用の形。
// 境界の外に出るUserは必ずこれを通す。
type SafeUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(TimeLayout),
		UpdatedAt: u.UpdatedAt.Format(TimeLayout),
	}
}
