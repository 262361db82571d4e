package main

import (
	"blog-backend/app/server/handlers"
	"blog-backend/app/server/inits"
	"blog-backend/app/server/jwt"
	"context"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"log"
	"net/http"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化对象存储客户端
	store, err := inits.Storage(context.Background(), cfg)
	if err != nil {
		l.Fatal("error initializing object storage", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, db, rdb, j, store)

	// 准备 echo 服务
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	if cfg.System.CORSOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.System.CORSOrigin},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowCredentials: true,
		}))
	}

	// 绑定路由
	e.GET("/", handlerApp.HealthCheck)
	e.POST("/register", handlerApp.AuthRegister)
	e.POST("/login", handlerApp.AuthLogin)
	e.POST("/logout", handlerApp.AuthLogout)
	e.GET("/profile", handlerApp.AuthProfile)
	e.GET("/post", handlerApp.PostList)
	e.POST("/post", handlerApp.PostCreate)
	e.GET("/post/:id", handlerApp.PostGet)
	e.PUT("/post/:id", handlerApp.PostReplace)
	e.DELETE("/post/:id", handlerApp.PostDelete)
	e.GET("/edit/:id", handlerApp.PostGetForEdit)
	e.PUT("/edit/:id", handlerApp.PostEdit)

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
