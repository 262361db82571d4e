package handlers

import (
	"blog-backend/app/server/models"
	"time"
)

type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// PostAuthor 文章响应中的作者信息，只暴露用户名
type PostAuthor struct {
	Username string `json:"username"`
}

type PostInfo struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Content   string     `json:"content"`
	Cover     string     `json:"cover"`
	Author    PostAuthor `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

// postInfoOf 组装文章响应，cover 可以是签名 URL 或原始 key
func postInfoOf(post *models.Post, cover string) *PostInfo {
	info := &PostInfo{
		ID:        post.ID,
		Title:     post.Title,
		Summary:   post.Summary,
		Content:   post.Content,
		Cover:     cover,
		CreatedAt: post.CreatedAt,
	}
	if post.Author != nil {
		info.Author.Username = post.Author.Username
	}

	return info
}
