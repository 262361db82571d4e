package handlers

import (
	"blog-backend/app/server/constants"
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// signedCoverURL 产生封面图的签名 URL ，优先使用缓存结果；缓存出错时退化为重新签名
func (a *App) signedCoverURL(ctx context.Context, key string) (string, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyPostCover, key)

	// 检查是否有缓存结果
	if cached, err := a.rdb.Get(ctx, cacheKey).Result(); err == nil {
		return cached, nil
	} else if !errors.Is(err, redis.Nil) {
		a.l.Error("cover url check cache", zap.Error(err))
	}

	// 产生结果并加入缓存
	signedURL, err := a.store.SignedReadURL(ctx, key, constants.CoverURLExpire)
	if err != nil {
		return "", err
	}
	if err := a.rdb.Set(ctx, cacheKey, signedURL, constants.CacheExpirePostCover).Err(); err != nil {
		a.l.Error("cover url set cache", zap.Error(err))
	}

	return signedURL, nil
}

// dropCoverURL 在封面对象被删除后移除缓存的签名 URL
func (a *App) dropCoverURL(ctx context.Context, key string) {
	if err := a.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeyPostCover, key)).Err(); err != nil {
		a.l.Error("cover url drop cache", zap.Error(err))
	}
}
