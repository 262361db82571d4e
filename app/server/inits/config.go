package inits

import (
	"blog-backend/app/server/config"
	"fmt"
	"os"
	"strings"
)

func Config() (*config.Config, error) {
	cfg := &config.Config{}

	// 手动配置映射，如果这里有什么自动映射工具就好了， viper 好像处理这种基于环境变量的配置也不是很方便
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	// 可选，为空时不启用 CORS
	cfg.System.CORSOrigin = os.Getenv("CORS_ORIGIN")

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if bucket, exist := os.LookupEnv("BUCKET_NAME"); !exist {
		return nil, fmt.Errorf("BUCKET_NAME environment variable not set")
	} else {
		cfg.Storage.Bucket = bucket
	}

	if region, exist := os.LookupEnv("BUCKET_REGION"); !exist {
		return nil, fmt.Errorf("BUCKET_REGION environment variable not set")
	} else {
		cfg.Storage.Region = region
	}

	if accessKey, exist := os.LookupEnv("ACCESS_KEY"); !exist {
		return nil, fmt.Errorf("ACCESS_KEY environment variable not set")
	} else {
		cfg.Storage.AccessKeyID = accessKey
	}

	if secretKey, exist := os.LookupEnv("SECRET_S3"); !exist {
		return nil, fmt.Errorf("SECRET_S3 environment variable not set")
	} else {
		cfg.Storage.SecretAccessKey = secretKey
	}

	// 可选，为空时使用 AWS 默认端点
	cfg.Storage.Endpoint = os.Getenv("S3_ENDPOINT")

	return cfg, nil
}
