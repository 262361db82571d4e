package handlers

import (
	"blog-backend/app/server/jwt"
	"blog-backend/app/server/models"
	"errors"
	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 没有写用户名或密码
	if req.Username == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest)
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 创建用户
	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: passwordHash,
	}
	if err := a.db.WithContext(rctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 用户名已被占用
			return a.er(c, http.StatusConflict)
		}
		a.l.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回，不包含密码 hash
	return c.JSON(http.StatusCreated, &UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 用户不存在与密码错误返回同样的提示
	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erMsg(c, http.StatusBadRequest, "invalid credentials")
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(req.Password, user.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if !match {
		// 密码不一致
		return a.erMsg(c, http.StatusBadRequest, "invalid credentials")
	}

	// 签出 JWT ，写入 cookie
	token, err := a.jwt.SignToken(&jwt.User{
		ID:       user.ID,
		Username: user.Username,
	})
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	// 返回
	return c.JSON(http.StatusOK, &UserInfo{
		ID:       user.ID,
		Username: user.Username,
	})
}

func (a *App) AuthLogout(c echo.Context) error {
	// 用空值覆盖 cookie 并立即过期，重复调用效果一致
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return c.NoContent(http.StatusOK)
}

func (a *App) AuthProfile(c echo.Context) error {
	// 抓取 user 信息（认证）
	jwtUser, err, statusCode := a.authUser(c)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	// 返回 token 中的身份声明
	return c.JSON(http.StatusOK, &UserInfo{
		ID:       jwtUser.ID,
		Username: jwtUser.Username,
	})
}
