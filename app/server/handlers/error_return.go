package handlers

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

// ErrorMessage 统一的错误响应：kind 为稳定的机器可读分类，message 为人类可读描述
type ErrorMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

var statusKinds = map[int]string{
	http.StatusBadRequest:          "bad_request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "not_found",
	http.StatusConflict:            "conflict",
	http.StatusInternalServerError: "internal",
}

func (a *App) er(c echo.Context, statusCode int) error {
	return a.erMsg(c, statusCode, http.StatusText(statusCode))
}

func (a *App) erMsg(c echo.Context, statusCode int, message string) error {
	kind, ok := statusKinds[statusCode]
	if !ok {
		kind = "error"
	}

	return c.JSON(statusCode, &ErrorMessage{
		Kind:    kind,
		Message: message,
	})
}
