package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// アクセストークンTTLのデフォルト（秒）
const defaultJWTExpiry = 1800

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string        // JWT署名シークレット（必須。無ければ起動しない）
	JWTExpiry time.Duration // アクセストークンTTL
	JWTIssuer string        // iss/aud に入れる値

	DatabaseURL string // あればPOSTGRES_*より優先
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	GoEnv string // dev/prod
}

// Loadは環境変数から設定を読む。
// JWT_SECRETが無いのは致命的エラー（リクエストを受けてはいけない）。
func Load() (Config, error) {
	cfg := Config{
		Port:      getenv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getenv("JWT_ISSUER", "easy-api"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("POSTGRES_HOST", "localhost"),
		DBPort:      getenv("POSTGRES_PORT", "5432"),
		DBUser:      getenv("POSTGRES_USER", "postgres"),
		DBPassword:  getenv("POSTGRES_PASSWORD", "postgres"),
		DBName:      getenv("POSTGRES_DB", "app"),
		DBSSLMode:   getenv("POSTGRES_SSLMODE", "disable"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	expiry := defaultJWTExpiry
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("JWT_EXPIRY must be a positive number of seconds")
		}
		expiry = n
	}
	cfg.JWTExpiry = time.Duration(expiry) * time.Second

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
