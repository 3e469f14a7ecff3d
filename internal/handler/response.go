package handler

import (
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全エンドポイント共通のJSONエンベロープ
type envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Error     string      `json:"error,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(model.TimeLayout),
	})
}

func respondError(c echo.Context, status int, label string, message string) error {
	return c.JSON(status, envelope{
		Success:   false,
		Error:     label,
		Message:   message,
		Timestamp: time.Now().Format(model.TimeLayout),
	})
}

// usecaseの共通エラーをHTTPへ変換。内部の詳細は出さない。
func respondUsecaseError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return respondError(c, http.StatusBadRequest, "Validation Error", err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		return respondError(c, http.StatusNotFound, "Not Found", "Resource not found")
	case errors.Is(err, usecase.ErrConflict):
		return respondError(c, http.StatusConflict, "Conflict", err.Error())
	default:
		return respondError(c, http.StatusInternalServerError, "Internal Server Error", "internal error")
	}
}
