package models

import "gorm.io/gorm"

type Post struct {
	gorm.Model

	// 文章内容
	Title   string `gorm:"column:title"`             // 标题
	Summary string `gorm:"column:summary"`           // 摘要
	Content string `gorm:"column:content;type:text"` // 正文

	// 关联资源
	Cover    string `gorm:"column:cover"`           // 封面图在对象存储中的 key ，64 位十六进制随机值
	AuthorID uint   `gorm:"column:author_id;index"` // 作者，指向 User
	Author   *User  `gorm:"foreignKey:AuthorID"`
}
