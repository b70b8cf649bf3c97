package repo

import (
	"context"

	"sleuth-client/internal/config"
	"sleuth-client/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RDB *redis.Client

// InitRedis connects the snapshot store. It leaves RDB nil when no address is configured.
func InitRedis() {
	conf := config.GlobalConfig.Redis
	if conf.Addr == "" {
		return
	}
	RDB = redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	_, err := RDB.Ping(context.Background()).Result()
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
}
