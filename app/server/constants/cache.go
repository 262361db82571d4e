package constants

import "time"

const (
	CacheKeyPostCover = "blog:post:cover:%s"
)

const (
	// 缓存有效期需要短于签名 URL 的有效期，保证取出的 URL 仍然可用一段时间
	CacheExpirePostCover = 45 * time.Minute
)
