package handler

import (
	"errors"
	"net/http"

	"app/internal/logging"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc  *usecase.AuthUsecase
	log logging.Logger
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, log logging.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// /auth配下のルートを登録。me/api-key/logout-allは認証必須。
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me, requireAuth)
	g.POST("/api-key", h.GenerateApiKey, requireAuth)
	g.POST("/logout-all", h.LogoutAll, requireAuth)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterはPOST /auth/registerのハンドラ
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Email and password are required")
	}

	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.log.Warn("user registration failed", logging.Fields{
			"email": req.Email,
			"error": err.Error(),
		})

		switch {
		case errors.Is(err, usecase.ErrValidation):
			return respondError(c, http.StatusBadRequest, "Validation Error", err.Error())
		case errors.Is(err, usecase.ErrEmailTaken):
			// 重複も400で返す（既存クライアントとの契約を維持）
			return respondError(c, http.StatusBadRequest, "Registration Failed", err.Error())
		default:
			return respondError(c, http.StatusInternalServerError, "Registration Failed", "internal error")
		}
	}

	h.log.Security("user registered", logging.Fields{
		"email":   user.Email,
		"role":    user.Role,
		"user_id": user.ID,
	})

	return respond(c, http.StatusCreated, "User registered successfully", echo.Map{
		"user": user,
	})
}

// LoginはPOST /auth/loginのハンドラ
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Email and password are required")
	}

	out, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("login failed", logging.Fields{
			"email": req.Email,
		})

		switch {
		case errors.Is(err, usecase.ErrValidation):
			return respondError(c, http.StatusBadRequest, "Validation Error", err.Error())
		case errors.Is(err, usecase.ErrInvalidCredentials):
			return respondError(c, http.StatusUnauthorized, "Authentication Failed", err.Error())
		default:
			return respondError(c, http.StatusInternalServerError, "Authentication Failed", "internal error")
		}
	}

	h.log.Security("user login successful", logging.Fields{
		"email":   out.User.Email,
		"user_id": out.User.ID,
	})

	return respond(c, http.StatusOK, "Login successful", out)
}

// RefreshはPOST /auth/refreshのハンドラ
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	if req.RefreshToken == "" {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Refresh token is required")
	}

	out, err := h.uc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		h.log.Warn("token refresh failed", logging.Fields{
			"error": err.Error(),
		})

		switch {
		case errors.Is(err, usecase.ErrInvalidToken), errors.Is(err, usecase.ErrUserNotFound):
			// 孤児tokenも401（404にしない。クライアントの宛先間違いではない）
			return respondError(c, http.StatusUnauthorized, "Refresh Failed", "Invalid refresh token")
		default:
			return respondError(c, http.StatusInternalServerError, "Refresh Failed", "internal error")
		}
	}

	h.log.Security("token refreshed", nil)

	return respond(c, http.StatusOK, "Token refreshed successfully", out)
}

// LogoutはPOST /auth/logoutのハンドラ。refresh tokenを1件revokeする。
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Invalid request body")
	}

	if req.RefreshToken == "" {
		return respondError(c, http.StatusBadRequest, "Validation Error", "Refresh token is required")
	}

	if err := h.uc.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		h.log.Warn("logout failed", logging.Fields{
			"error": err.Error(),
		})

		switch {
		case errors.Is(err, usecase.ErrInvalidToken):
			// 2回目のlogoutは黙って成功にせず弾く
			return respondError(c, http.StatusBadRequest, "Logout Failed", "Invalid or already revoked token")
		default:
			return respondError(c, http.StatusInternalServerError, "Logout Failed", "internal error")
		}
	}

	h.log.Security("user logged out", nil)

	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

// LogoutAllはPOST /auth/logout-allのハンドラ。全端末のrefresh tokenをrevokeする。
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
	}

	count, err := h.uc.LogoutAll(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Logout Failed", "internal error")
	}

	h.log.Security("user logged out from all devices", logging.Fields{
		"user_id":       userID,
		"revoked_count": count,
	})

	return respond(c, http.StatusOK, "Logged out from all devices", echo.Map{
		"revokedCount": count,
	})
}

// MeはGET /auth/meのハンドラ。middlewareが解決したユーザーを返す。
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
	}

	user, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		// ユーザー不在だけが認証切れ。ストア障害は500。
		if errors.Is(err, usecase.ErrUserNotFound) {
			return respondError(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		}
		return respondError(c, http.StatusInternalServerError, "Internal Server Error", "internal error")
	}

	return respond(c, http.StatusOK, "User data retrieved successfully", echo.Map{
		"user": user,
	})
}

// GenerateApiKeyはPOST /auth/api-keyのハンドラ。
// 平文キーを返すのはこのレスポンスの一度だけ。
func (h *AuthHandler) GenerateApiKey(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
	}

	apiKey, err := h.uc.GenerateApiKey(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Generation Failed", "internal error")
	}

	h.log.Security("api key generated", logging.Fields{
		"user_id": userID,
	})

	return respond(c, http.StatusOK, "API key generated successfully", echo.Map{
		"apiKey": apiKey,
	})
}
