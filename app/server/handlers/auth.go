package handlers

import (
	"blog-backend/app/server/jwt"
	"fmt"
	"github.com/labstack/echo/v4"
	"net/http"
)

const tokenCookieName = "token"

// authUser 从 cookie 中提取并校验会话 token ，任何校验失败都视为未认证
func (a *App) authUser(c echo.Context) (*jwt.User, error, int) {
	// 提取 token
	cookie, err := c.Cookie(tokenCookieName)
	if err != nil || cookie.Value == "" {
		return nil, fmt.Errorf("missing auth token"), http.StatusUnauthorized
	}

	// 验证 token
	jwtUser, err := a.jwt.ParseUser(cookie.Value)
	if err != nil {
		// 无效的 token
		return nil, fmt.Errorf("failed to parse token: %w", err), http.StatusUnauthorized
	}

	return jwtUser, nil, http.StatusOK
}
