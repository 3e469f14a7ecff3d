package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Newはechoインスタンスを組み立てる。
// Recover → RequestID → CORS → セキュリティヘッダの順。
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())

	return e
}
