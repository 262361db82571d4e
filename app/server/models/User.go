package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// 基础信息
	Username string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一
	Email    string `gorm:"column:email"`                // 注册邮箱

	// 登录认证相关
	Password string `gorm:"column:password"` // 密码，使用 argon2id 储存
}
