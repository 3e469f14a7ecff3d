package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

// Handlersはルート登録に必要なhandler一式。
type Handlers struct {
	Auth    *handler.AuthHandler
	Protein *handler.ProteinHandler
	Catalog *handler.CatalogHandler
	Orders  *handler.OrdersHandler
}

// Middlewaresは認証系ミドルウェア一式。
type Middlewares struct {
	RequireAuth  echo.MiddlewareFunc // 資格情報必須
	OptionalAuth echo.MiddlewareFunc // あれば解決、なければ素通し
	AdminOnly    echo.MiddlewareFunc // RequireAuthの後段に置く
}

func RegisterRoutes(e *echo.Echo, h Handlers, mw Middlewares) {
	h.Auth.RegisterRoutes(e, mw.RequireAuth)
	h.Protein.RegisterRoutes(e, mw.OptionalAuth, mw.RequireAuth, mw.AdminOnly)
	h.Catalog.RegisterRoutes(e, mw.OptionalAuth, mw.RequireAuth, mw.AdminOnly)
	h.Orders.RegisterRoutes(e, mw.RequireAuth)
}
