package handlers

import (
	"blog-backend/app/server/jwt"
	"blog-backend/app/server/models"
	"blog-backend/app/server/storage"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"io"
	"mime/multipart"
	"net/http"
)

type postReplaceRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Cover   string `json:"cover"`
}

// readUpload 把上传的文件整体读入内存，返回内容和 Content-Type
func readUpload(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}

	return body, fileHeader.Header.Get("Content-Type"), nil
}

// getOwnPost 取出指定文章并确认请求者就是作者，任何变更操作前都要经过这里
func (a *App) getOwnPost(c echo.Context, id uint, jwtUser *jwt.User) (*models.Post, error, int) {
	rctx := c.Request().Context()

	var post models.Post
	if err := a.db.WithContext(rctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post not found"), http.StatusNotFound
		}
		a.l.Error("failed to get post", zap.Uint("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get post: %w", err), http.StatusInternalServerError
	}

	// 作者校验：token 声明中的 id 必须与文章记录一致
	if post.AuthorID != jwtUser.ID {
		return nil, fmt.Errorf("requester is not the author"), http.StatusForbidden
	}

	return &post, nil, http.StatusOK
}

func (a *App) PostCreate(c echo.Context) error {
	// 抓取 user 信息（认证），在任何上传发生之前
	jwtUser, err, statusCode := a.authUser(c)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 读取表单字段与封面图
	title := c.FormValue("title")
	summary := c.FormValue("summary")
	content := c.FormValue("content")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		a.l.Error("failed to get cover image", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	body, contentType, err := readUpload(fileHeader)
	if err != nil {
		a.l.Error("failed to read cover image", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 以随机 key 上传封面图
	key, err := storage.NewKey()
	if err != nil {
		a.l.Error("failed to generate cover key", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.store.Put(rctx, key, body, contentType); err != nil {
		a.l.Error("failed to upload cover", zap.String("key", key), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 创建文章
	post := models.Post{
		Title:    title,
		Summary:  summary,
		Content:  content,
		Cover:    key,
		AuthorID: jwtUser.ID,
	}
	if err := a.db.WithContext(rctx).Create(&post).Error; err != nil {
		a.l.Error("failed to create post", zap.Error(err))
		// 记录写入失败，回收刚刚上传的封面图，避免留下孤儿对象
		if delErr := a.store.Delete(rctx, key); delErr != nil {
			a.l.Error("failed to clean up cover", zap.String("key", key), zap.Error(delErr))
		}
		return a.er(c, http.StatusInternalServerError)
	}

	post.Author = &models.User{Username: jwtUser.Username}
	return c.JSON(http.StatusCreated, postInfoOf(&post, post.Cover))
}

func (a *App) PostEdit(c echo.Context) error {
	// 抓取 user 信息（认证）
	jwtUser, err, statusCode := a.authUser(c)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	id, err := parsePostID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 先确认文章存在且请求者是作者，再上传新的封面
	post, err, statusCode := a.getOwnPost(c, id, jwtUser)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 读取新的封面图
	fileHeader, err := c.FormFile("image")
	if err != nil {
		a.l.Error("failed to get cover image", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	body, contentType, err := readUpload(fileHeader)
	if err != nil {
		a.l.Error("failed to read cover image", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 覆盖同一个 key ，已缓存的签名 URL 指向的还是这个对象
	if err := a.store.Put(rctx, post.Cover, body, contentType); err != nil {
		a.l.Error("failed to upload cover", zap.String("key", post.Cover), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 全量替换文章字段
	post.Title = c.FormValue("title")
	post.Summary = c.FormValue("summary")
	post.Content = c.FormValue("content")
	if err := a.db.WithContext(rctx).Model(post).Updates(map[string]interface{}{
		"title":   post.Title,
		"summary": post.Summary,
		"content": post.Content,
		"cover":   post.Cover,
	}).Error; err != nil {
		a.l.Error("failed to update post", zap.Uint("id", post.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	post.Author = &models.User{Username: jwtUser.Username}
	return c.JSON(http.StatusOK, postInfoOf(post, post.Cover))
}

func (a *App) PostReplace(c echo.Context) error {
	// 抓取 user 信息（认证）
	jwtUser, err, statusCode := a.authUser(c)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	id, err := parsePostID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	// 绑定请求体，封面使用调用方提供的 key ，不经过上传
	var req postReplaceRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	post, err, statusCode := a.getOwnPost(c, id, jwtUser)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 全量替换文章字段
	if err := a.db.WithContext(rctx).Model(post).Updates(map[string]interface{}{
		"title":   req.Title,
		"summary": req.Summary,
		"content": req.Content,
		"cover":   req.Cover,
	}).Error; err != nil {
		a.l.Error("failed to update post", zap.Uint("id", post.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	post.Title = req.Title
	post.Summary = req.Summary
	post.Content = req.Content
	post.Cover = req.Cover
	post.Author = &models.User{Username: jwtUser.Username}
	return c.JSON(http.StatusOK, postInfoOf(post, post.Cover))
}

func (a *App) PostDelete(c echo.Context) error {
	// 抓取 user 信息（认证）
	jwtUser, err, statusCode := a.authUser(c)
	if err != nil {
		a.l.Error("failed to auth user", zap.Error(err))
		return a.er(c, statusCode)
	}

	id, err := parsePostID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	post, err, statusCode := a.getOwnPost(c, id, jwtUser)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 先删除文章记录，再清理对象存储：记录删除失败时封面仍然可用，
	// 封面删除失败只会留下孤立对象
	if err := a.db.WithContext(rctx).Delete(&models.Post{}, post.ID).Error; err != nil {
		a.l.Error("failed to delete post", zap.Uint("id", post.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err := a.store.Delete(rctx, post.Cover); err != nil {
		a.l.Warn("failed to delete cover", zap.String("key", post.Cover), zap.Error(err))
	}

	// 移除缓存的签名 URL
	a.dropCoverURL(rctx, post.Cover)

	return c.NoContent(http.StatusOK)
}
