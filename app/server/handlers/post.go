package handlers

import (
	"blog-backend/app/server/constants"
	"blog-backend/app/server/models"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"net/http"
	"strconv"
)

func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

func (a *App) PostList(c echo.Context) error {
	rctx := c.Request().Context()

	// 拉取最新的文章，按创建时间倒序
	var posts []models.Post
	if err := a.db.WithContext(rctx).Model(&models.Post{}).
		Preload("Author").
		Order("created_at DESC").
		Limit(constants.PostListLimit).
		Find(&posts).Error; err != nil {
		a.l.Error("failed to get post list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 为每篇文章的封面附加签名 URL
	resPosts := []PostInfo{}
	for i := range posts {
		coverURL, err := a.signedCoverURL(rctx, posts[i].Cover)
		if err != nil {
			a.l.Error("failed to sign cover url", zap.String("cover", posts[i].Cover), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		resPosts = append(resPosts, *postInfoOf(&posts[i], coverURL))
	}

	return c.JSON(http.StatusOK, resPosts)
}

func (a *App) PostGet(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的文章
	var post models.Post
	if err := a.db.WithContext(rctx).Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get post", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 附加签名 URL
	coverURL, err := a.signedCoverURL(rctx, post.Cover)
	if err != nil {
		a.l.Error("failed to sign cover url", zap.String("cover", post.Cover), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, postInfoOf(&post, coverURL))
}

func (a *App) PostGetForEdit(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的文章
	var post models.Post
	if err := a.db.WithContext(rctx).Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get post", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 编辑页面使用原始 cover key ，不产生签名 URL
	return c.JSON(http.StatusOK, postInfoOf(&post, post.Cover))
}
