package cmd

import (
	"fmt"

	"EchoMeta/cache"
	"EchoMeta/config"
	"EchoMeta/core/pipeline"
	"EchoMeta/core/transcribe"
	"EchoMeta/db"
	"EchoMeta/logger"
	"EchoMeta/repository"
	"EchoMeta/storage"
)

// setup 按配置装配管道及其协作方。
// 任务审计和事件去重是可选能力，对应的后端未启用时直接跳过。
func setup() (*config.Config, storage.Store, *pipeline.Pipeline, error) {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	})

	store, err := storage.NewMinioStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	transcriber := transcribe.NewClient(cfg.TranscribeURL, cfg.TranscribeToken)

	pipe, err := pipeline.New(cfg, store, transcriber)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.JobLogDB {
		gormDB, err := db.ConnectGormDB(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("连接任务审计数据库失败: %w", err)
		}
		pipe.WithJobRecorder(repository.NewMySQLTranscriptionJobRepository(gormDB))
	}

	if cfg.EventGuard {
		redisClient, err := cache.ConnectRedis(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("连接Redis失败: %w", err)
		}
		pipe.WithEventGuard(cache.NewEventGuard(redisClient))
	}

	return cfg, store, pipe, nil
}
