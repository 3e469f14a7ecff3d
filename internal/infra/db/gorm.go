package db

import (
	"fmt"

	"app/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
// 接続情報はconfig.Load済みのConfigから取る（ここで環境変数は読まない）。
func Connect(cfg config.Config) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn(cfg)), &gorm.Config{})
}

// DATABASE_URLがあれば最優先。無ければPOSTGRES_*から組み立てる。
func dsn(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
}
