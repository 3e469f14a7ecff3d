package db

import (
	"testing"

	"app/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestDSN_DatabaseURLWins(t *testing.T) {
	cfg := config.Config{
		DatabaseURL: "postgres://app:secret@db:5432/app",
		DBHost:      "ignored",
	}

	assert.Equal(t, "postgres://app:secret@db:5432/app", dsn(cfg))
}

func TestDSN_FromParts(t *testing.T) {
	cfg := config.Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "app",
		DBPassword: "secret",
		DBName:     "catalog",
		DBSSLMode:  "require",
	}

	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=catalog sslmode=require",
		dsn(cfg))
}
