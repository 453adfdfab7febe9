package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"resume-screen-go/internal/config"
	"resume-screen-go/internal/logger"
)

// ResumeArchive 原始简历文件的归档接口
type ResumeArchive interface {
	// ArchiveResumeFile 归档一份原始简历，返回对象键
	ArchiveResumeFile(ctx context.Context, fileExt string, reader io.Reader, fileSize int64) (string, error)

	// GetResumeFile 按对象键取回原始简历
	GetResumeFile(ctx context.Context, objectKey string) ([]byte, error)
}

var _ ResumeArchive = (*MinIOArchive)(nil)

// MinIOArchive 基于MinIO对象存储的简历归档
type MinIOArchive struct {
	client *minio.Client
	cfg    *config.MinIOConfig
	bucket string
}

// NewMinIOArchive 创建MinIO归档客户端并确保存储桶存在
func NewMinIOArchive(ctx context.Context, cfg *config.MinIOConfig) (*MinIOArchive, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	bucket := cfg.BucketName
	if bucket == "" {
		bucket = "resume-originals"
	}

	m := &MinIOArchive{client: client, cfg: cfg, bucket: bucket}
	if err := m.ensureBucketExists(ctx, bucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保归档存储桶 %s 存在失败: %w", bucket, err)
	}

	logger.Info().
		Str("endpoint", cfg.Endpoint).
		Str("bucket", bucket).
		Msg("MinIO归档客户端初始化成功")
	return m, nil
}

func (m *MinIOArchive) ensureBucketExists(ctx context.Context, bucketName, location string) error {
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
	}
	return nil
}

// ArchiveResumeFile 以UUIDv7为前缀生成对象键并上传，键按上传时间可排序
func (m *MinIOArchive) ArchiveResumeFile(ctx context.Context, fileExt string, reader io.Reader, fileSize int64) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("生成归档对象ID失败: %w", err)
	}

	objectKey := fmt.Sprintf("resume/%s/original%s", id.String(), fileExt)
	contentType := ContentTypeForExt(fileExt)

	info, err := m.client.PutObject(ctx, m.bucket, objectKey, reader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("上传归档对象 %s/%s 失败: %w", m.bucket, objectKey, err)
	}

	logger.Ctx(ctx).Debug().
		Str("object_key", objectKey).
		Int64("size", info.Size).
		Msg("原始简历归档完成")
	return objectKey, nil
}

// GetResumeFile 按对象键取回原始简历
func (m *MinIOArchive) GetResumeFile(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取归档对象 %s/%s 失败: %w", m.bucket, objectKey, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取归档对象 %s/%s 数据失败: %w", m.bucket, objectKey, err)
	}
	return data, nil
}

// ContentTypeForExt 按扩展名推断归档对象的内容类型
func ContentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
