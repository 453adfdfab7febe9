package processor

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"resume-screen-go/internal/logger"
	"resume-screen-go/internal/parser"
	"resume-screen-go/internal/scorer"
	"resume-screen-go/internal/storage"
	"resume-screen-go/internal/storage/models"
	"resume-screen-go/internal/types"
)

// Components 筛选流水线的注入组件
type Components struct {
	TextExtractor     TextExtractor // 可选：缺失时按空文本降级处理
	FeatureExtractor  FeatureExtractor
	SentimentAnalyzer SentimentAnalyzer
	Recommender       RoleRecommender
	Scorer            ResumeScorer
	Storage           *storage.Storage
}

// ScreeningService 简历筛选服务。
// 整条流水线在请求作用域内同步执行：提取文本、解析特征、语气分析、
// 岗位推荐、树模型评分、归档与落库，全部完成后才返回结果。
type ScreeningService struct {
	components Components
}

// NewScreeningService 按选项组装筛选服务，缺少必需组件时报错
func NewScreeningService(opts ...ComponentOpt) (*ScreeningService, error) {
	c := Components{}
	for _, opt := range opts {
		opt(&c)
	}

	if c.FeatureExtractor == nil {
		return nil, fmt.Errorf("缺少特征提取器组件")
	}
	if c.SentimentAnalyzer == nil {
		return nil, fmt.Errorf("缺少语气分析器组件")
	}
	if c.Recommender == nil {
		return nil, fmt.Errorf("缺少岗位推荐器组件")
	}
	if c.Scorer == nil {
		return nil, fmt.Errorf("缺少评分器组件")
	}
	if c.Storage == nil || c.Storage.Store == nil {
		return nil, fmt.Errorf("缺少存储组件")
	}

	return &ScreeningService{components: c}, nil
}

// ProcessUpload 处理一次简历上传，返回完整的筛选结果。
//
// 文本提取失败不是致命错误：按空文本继续，后续各阶段自行降级
// （姓名"Unknown"、联系方式"Not Provided"、技能为空的伪岗位提示）。
// 只有存储写入失败才向调用方返回错误。
func (s *ScreeningService) ProcessUpload(ctx context.Context, filename string, data []byte) (*types.ScreeningResult, error) {
	text := s.extractText(ctx, filename, data)

	features := s.components.FeatureExtractor.Extract(ctx, text)
	sentiment := s.components.SentimentAnalyzer.Analyze(text)
	roles, missing := s.components.Recommender.Recommend(features.Skills, float64(features.Experience))

	score := s.components.Scorer.Score(types.ScoreInput{
		EducationCode: scorer.EducationCode(features.Education),
		Experience:    float64(features.Experience),
		SkillCount:    len(features.Skills),
	})

	objectKey := s.archiveOriginal(ctx, filename, data)

	missingJSON, err := models.MissingSkillsToJSON(missing)
	if err != nil {
		return nil, fmt.Errorf("序列化缺失技能映射失败: %w", err)
	}

	record := &models.ResumeRecord{
		Name:             features.Name,
		Email:            features.Email,
		Phone:            features.Phone,
		Education:        features.Education,
		Experience:       features.Experience,
		Skills:           parser.JoinSkills(features.Skills),
		FilePathOSS:      objectKey,
		RankingScore:     &score,
		RecommendedRoles: strings.Join(roles, ", "),
		Sentiment:        sentiment,
		MissingSkills:    missingJSON,
	}

	outcome, err := s.components.Storage.Store.UpsertByContact(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("写入简历记录失败: %w", err)
	}

	logger.Ctx(ctx).Info().
		Uint64("record_id", outcome.Record.ID).
		Bool("created", outcome.Created).
		Str("name", features.Name).
		Float64("ranking_score", score).
		Msg("简历筛选完成")

	return &types.ScreeningResult{
		RecordID:         outcome.Record.ID,
		Created:          outcome.Created,
		Features:         features,
		RankingScore:     score,
		Sentiment:        sentiment,
		RecommendedRoles: roles,
		MissingSkills:    missing,
	}, nil
}

// extractText 提取PDF文本，任何失败都降级为空文本并告警
func (s *ScreeningService) extractText(ctx context.Context, filename string, data []byte) string {
	if s.components.TextExtractor == nil {
		logger.Ctx(ctx).Warn().Str("filename", filename).Msg("未配置文本提取器，按空文本处理")
		return ""
	}

	text, err := s.components.TextExtractor.ExtractTextFromReader(ctx, bytes.NewReader(data), filename)
	if err != nil {
		logger.Ctx(ctx).Warn().
			Err(err).
			Str("filename", filename).
			Msg("PDF文本提取失败，按空文本继续处理")
		return ""
	}
	return text
}

// archiveOriginal 归档原始文件，归档不可用或失败时返回空对象键
func (s *ScreeningService) archiveOriginal(ctx context.Context, filename string, data []byte) string {
	if s.components.Storage.Archive == nil {
		return ""
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}

	objectKey, err := s.components.Storage.Archive.ArchiveResumeFile(ctx, ext, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Ctx(ctx).Warn().
			Err(err).
			Str("filename", filename).
			Msg("原始简历归档失败，继续处理")
		return ""
	}
	return objectKey
}
