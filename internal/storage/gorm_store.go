package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"resume-screen-go/internal/config"
	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/logger"
	"resume-screen-go/internal/storage/models"
)

// ErrRecordNotFound 请求的简历记录不存在，向调用方呈现为"未找到"而非崩溃
var ErrRecordNotFound = errors.New("resume record not found")

// ResumeStore 容量受限的简历记录库。
// 去重键为 (email, phone)；插入新记录会使总数超限时按最早上传时间淘汰。
type ResumeStore struct {
	db            *gorm.DB
	capacity      int
	lockForUpdate bool // MySQL下用行锁收紧"查重→计数→淘汰→插入"的临界区
}

// UpsertOutcome 一次按去重键写入的结果
type UpsertOutcome struct {
	Record  *models.ResumeRecord
	Created bool // true=新建，false=原地更新
	Evicted int  // 为腾出容量而淘汰的记录数
}

// NewResumeStore 按配置打开数据库并自动迁移数据表
func NewResumeStore(cfg *config.DatabaseConfig, capacity int) (*ResumeStore, error) {
	if capacity <= 0 {
		capacity = constants.DefaultStoreCapacity
	}

	var (
		dialector gorm.Dialector
		lock      bool
	)
	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
		if cfg.ConnectTimeoutSeconds > 0 {
			dsn += fmt.Sprintf("&timeout=%ds", cfg.ConnectTimeoutSeconds)
		}
		if cfg.ReadTimeoutSeconds > 0 {
			dsn += fmt.Sprintf("&readTimeout=%ds", cfg.ReadTimeoutSeconds)
		}
		if cfg.WriteTimeoutSeconds > 0 {
			dsn += fmt.Sprintf("&writeTimeout=%ds", cfg.WriteTimeoutSeconds)
		}
		dialector = mysql.Open(dsn)
		lock = true
	case "sqlite", "":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	if err := db.Use(NewGormTracingPlugin(cfg.Database, cfg.Driver)); err != nil {
		return nil, fmt.Errorf("注册GORM追踪插件失败: %w", err)
	}

	if cfg.Driver == "mysql" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("获取底层连接池失败: %w", err)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.ConnMaxLifetimeMinutes > 0 {
			sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
		}
	}

	if err := db.AutoMigrate(&models.ResumeRecord{}); err != nil {
		return nil, fmt.Errorf("自动迁移数据表失败: %w", err)
	}

	return &ResumeStore{db: db, capacity: capacity, lockForUpdate: lock}, nil
}

// NewResumeStoreWithDB 直接注入已打开的DB，便于测试
func NewResumeStoreWithDB(db *gorm.DB, capacity int) (*ResumeStore, error) {
	if capacity <= 0 {
		capacity = constants.DefaultStoreCapacity
	}
	if err := db.AutoMigrate(&models.ResumeRecord{}); err != nil {
		return nil, fmt.Errorf("自动迁移数据表失败: %w", err)
	}
	return &ResumeStore{db: db, capacity: capacity}, nil
}

func gormLogLevel(level int) gormLogger.LogLevel {
	switch level {
	case 1:
		return gormLogger.Silent
	case 2:
		return gormLogger.Error
	case 3:
		return gormLogger.Warn
	case 4:
		return gormLogger.Info
	default:
		return gormLogger.Warn
	}
}

// Capacity 返回容量上限
func (s *ResumeStore) Capacity() int {
	return s.capacity
}

// UpsertByContact 按 (email, phone) 去重写入。
//
// 整个"查重→计数→淘汰最旧→插入"序列在单个事务内完成：并发上传时
// 两个请求不能同时通过计数检查，否则库会超出容量上限。
// 已存在时只覆盖评估字段（评分/情感/推荐岗位/缺失技能），身份字段与
// 上传时间不动，淘汰顺序因此保持首次上传序。
func (s *ResumeStore) UpsertByContact(ctx context.Context, record *models.ResumeRecord) (*UpsertOutcome, error) {
	outcome := &UpsertOutcome{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("email = ? AND phone = ?", record.Email, record.Phone)
		if s.lockForUpdate {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var existing models.ResumeRecord
		err := query.First(&existing).Error
		if err == nil {
			updates := map[string]any{
				"ranking_score":     record.RankingScore,
				"sentiment":         record.Sentiment,
				"recommended_roles": record.RecommendedRoles,
				"missing_skills":    record.MissingSkills,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("更新已有记录失败: %w", err)
			}
			if err := tx.First(&existing, existing.ID).Error; err != nil {
				return fmt.Errorf("回读更新后的记录失败: %w", err)
			}
			outcome.Record = &existing
			outcome.Created = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询去重键失败: %w", err)
		}

		countQuery := tx.Model(&models.ResumeRecord{})
		if s.lockForUpdate {
			countQuery = countQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var total int64
		if err := countQuery.Count(&total).Error; err != nil {
			return fmt.Errorf("统计记录数失败: %w", err)
		}

		// 插入会超限时逐条淘汰最早上传的记录
		for total >= int64(s.capacity) {
			var oldest models.ResumeRecord
			if err := tx.Order("uploaded_at ASC").First(&oldest).Error; err != nil {
				return fmt.Errorf("查找最旧记录失败: %w", err)
			}
			if err := tx.Delete(&oldest).Error; err != nil {
				return fmt.Errorf("淘汰最旧记录失败: %w", err)
			}
			outcome.Evicted++
			total--
		}

		if record.UploadedAt.IsZero() {
			record.UploadedAt = time.Now()
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("插入新记录失败: %w", err)
		}
		outcome.Record = record
		outcome.Created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Evicted > 0 {
		logger.Ctx(ctx).Info().
			Int("evicted", outcome.Evicted).
			Int("capacity", s.capacity).
			Msg("简历库已达容量上限，淘汰最早记录")
	}
	return outcome, nil
}

// GetByID 按ID获取记录，不存在时返回 ErrRecordNotFound
func (s *ResumeStore) GetByID(ctx context.Context, id uint64) (*models.ResumeRecord, error) {
	var record models.ResumeRecord
	if err := s.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("查询记录失败: %w", err)
	}
	return &record, nil
}

// Count 返回当前记录总数
func (s *ResumeStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.ResumeRecord{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("统计记录数失败: %w", err)
	}
	return total, nil
}

// TopNByScore 返回按评分倒序的前N条记录
func (s *ResumeStore) TopNByScore(ctx context.Context, n int) ([]models.ResumeRecord, error) {
	var records []models.ResumeRecord
	if err := s.db.WithContext(ctx).
		Order("ranking_score DESC").
		Limit(n).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询排名记录失败: %w", err)
	}
	return records, nil
}

// TopNByScoreExcludingNames 返回按评分倒序的前N条记录，排除指定姓名。
// 排除在截断之前完成：占位姓名不占用前N的名额。
func (s *ResumeStore) TopNByScoreExcludingNames(ctx context.Context, n int, excluded []string) ([]models.ResumeRecord, error) {
	query := s.db.WithContext(ctx).Order("ranking_score DESC").Limit(n)
	if len(excluded) > 0 {
		query = query.Where("name NOT IN ?", excluded)
	}

	var records []models.ResumeRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询排名记录失败: %w", err)
	}
	return records, nil
}

// LatestUploaded 返回最近上传的记录，库为空时返回 ErrRecordNotFound
func (s *ResumeStore) LatestUploaded(ctx context.Context) (*models.ResumeRecord, error) {
	var record models.ResumeRecord
	if err := s.db.WithContext(ctx).Order("uploaded_at DESC").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("查询最新记录失败: %w", err)
	}
	return &record, nil
}

// DeleteOldest 删除最早上传的一条记录，库为空时为no-op
func (s *ResumeStore) DeleteOldest(ctx context.Context) error {
	var oldest models.ResumeRecord
	err := s.db.WithContext(ctx).Order("uploaded_at ASC").First(&oldest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("查找最旧记录失败: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&oldest).Error; err != nil {
		return fmt.Errorf("删除最旧记录失败: %w", err)
	}
	return nil
}

// Close 关闭底层数据库连接
func (s *ResumeStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层连接池失败: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("关闭数据库失败: %w", err)
	}
	return nil
}
