package middleware

import (
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/logging"
	"app/internal/repository"
	"app/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // string
	CtxUserKey     = "auth_user" // model.SafeUser
)

// AuthConfigは認証解決ミドルウェアの依存。
type AuthConfig struct {
	Users  repository.UserRepository
	Codec  *token.Codec
	Logger logging.Logger
	// trueなら資格情報なしでも通す（識別情報は付けない）。
	// 付いている資格情報が不正な場合はOptionalでも401。
	Optional bool
}

// Authはリクエストの呼び出し主を解決するミドルウェア。
// 判定順: Bearer → X-API-Key → なし。
// Bearerヘッダがあった場合はその結果だけで決める。
// 失敗してもAPIキーへはフォールバックしない（revoke済みJWTの
// すり抜け防止。キー認証に切り替えるならヘッダを外させる）。
func Auth(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			// 1) Bearer
			if authz := c.Request().Header.Get("Authorization"); authz != "" {
				rawToken, ok := extractBearer(authz)
				if !ok {
					return unauthorized(c)
				}

				claims, err := cfg.Codec.VerifyAccess(rawToken)
				if err != nil {
					cfg.Logger.Security("access token rejected", logging.Fields{
						"reason": err.Error(),
						"path":   c.Path(),
					})
					return unauthorized(c)
				}

				userID, err := claims.UserID()
				if err != nil || userID <= 0 {
					return unauthorized(c)
				}

				user, err := cfg.Users.FindByID(ctx, userID)
				if err != nil || user == nil || !user.IsActive {
					cfg.Logger.Security("access token user unavailable", logging.Fields{
						"user_id": userID,
						"path":    c.Path(),
					})
					return unauthorized(c)
				}

				attachUser(c, user)
				return next(c)
			}

			// 2) X-API-Key
			if apiKey := c.Request().Header.Get("X-API-Key"); apiKey != "" {
				user, err := cfg.Users.FindByApiKey(ctx, apiKey)
				if err != nil || user == nil {
					cfg.Logger.Security("api key rejected", logging.Fields{
						"path": c.Path(),
					})
					return unauthorized(c)
				}

				attachUser(c, user)
				return next(c)
			}

			// 3) 資格情報なし
			if cfg.Optional {
				return next(c)
			}
			return unauthorized(c)
		}
	}
}

// Authorizationヘッダから"Bearer <token>"のtokenを抜く
func extractBearer(authz string) (string, bool) {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", false
	}
	return raw, true
}

// 解決済みの呼び出し主をcontextへ保存
func attachUser(c echo.Context, user *model.User) {
	c.Set(CtxUserIDKey, user.ID)
	c.Set(CtxUserRoleKey, string(user.Role))
	c.Set(CtxUserKey, user.Safe())
}

type errorEnvelope struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// 401はメッセージを固定して詳細を漏らさない
func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorEnvelope{
		Success:   false,
		Error:     "Unauthorized",
		Message:   "Authentication required",
		Timestamp: time.Now().Format(model.TimeLayout),
	})
}
