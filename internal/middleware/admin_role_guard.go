package middleware

import (
	"net/http"
	"time"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextに入っているroleがadminかどうかを確認します。
// Authの後段に置くこと。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return unauthorized(c)
			}

			// userは拒否、adminだけ許可
			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorEnvelope{
					Success:   false,
					Error:     "Forbidden",
					Message:   "Admin role required",
					Timestamp: time.Now().Format(model.TimeLayout),
				})
			}

			return next(c)
		}
	}
}
