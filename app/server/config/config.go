package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
		CORSOrigin            string // 允许跨域请求的前端来源，为空时不启用 CORS
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于签发会话 JWT ，更新会导致旧有会话失效
	}
	Storage struct {
		Bucket          string // 存放封面图的桶名称
		Region          string // 桶所在区域
		Endpoint        string // 自定义服务端点（例如 MinIO），为空时使用 AWS 默认端点
		AccessKeyID     string // 访问密钥 ID
		SecretAccessKey string // 访问密钥
	}
}
