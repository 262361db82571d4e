package constants

import "time"

const (
	PostListLimit  = 20            // 文章列表最多返回的条数
	CoverURLExpire = 1 * time.Hour // 封面图签名 URL 的有效期
)
