package storage

import (
	"context"
	"fmt"

	"resume-screen-go/internal/config"
	"resume-screen-go/internal/logger"
)

// Storage 聚合存储层：简历记录库 + 可选的原始文件归档
type Storage struct {
	Store   *ResumeStore
	Archive ResumeArchive // 未启用MinIO时为nil
}

// NewStorage 按配置初始化存储层。
// 记录库是必需的；归档是可选增强，未启用时上传流程跳过归档。
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	store, err := NewResumeStore(&cfg.Database, cfg.Store.Capacity)
	if err != nil {
		return nil, fmt.Errorf("初始化简历记录库失败: %w", err)
	}

	s := &Storage{Store: store}

	if cfg.MinIO.Enabled {
		archive, err := NewMinIOArchive(ctx, &cfg.MinIO)
		if err != nil {
			// 归档不可用不阻断服务，仅降级
			logger.Warn().Err(err).Msg("MinIO归档初始化失败，原始简历将不做归档")
		} else {
			s.Archive = archive
		}
	}

	return s, nil
}

// Close 释放存储层资源
func (s *Storage) Close() error {
	if s.Store != nil {
		return s.Store.Close()
	}
	return nil
}
