package handlers

import (
	"blog-backend/app/server/jwt"
	"blog-backend/app/server/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l     *zap.Logger      // 日志
	db    *gorm.DB         // 数据库
	rdb   *redis.Client    // Redis ，缓存签名 URL
	jwt   *jwt.JWT         // JWT ，用于无状态会话
	store *storage.Storage // 对象存储，存放封面图
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, store *storage.Storage) *App {
	return &App{
		l:     l,
		db:    db,
		rdb:   rdb,
		jwt:   j,
		store: store,
	}
}
