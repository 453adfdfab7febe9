package processor

import (
	"context"
	"io"

	"resume-screen-go/internal/types"
)

//
// 文本提取相关接口
//

// TextExtractor 简历文本提取器接口
type TextExtractor interface {
	// ExtractTextFromReader 从io.Reader提取纯文本
	// uri 仅用于日志和错误信息
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error)
}

//
// 特征解析相关接口
//

// FeatureExtractor 简历特征提取器接口
type FeatureExtractor interface {
	// Extract 从纯文本解析出结构化特征，全函数：任意文本都返回完整特征集
	Extract(ctx context.Context, text string) *types.FeatureSet
}

// SentimentAnalyzer 语气分析器接口
type SentimentAnalyzer interface {
	// Analyze 返回 Positive / Neutral / Negative 之一
	Analyze(text string) string
}

//
// 推荐与评分相关接口
//

// RoleRecommender 岗位推荐器接口
type RoleRecommender interface {
	// Recommend 返回推荐岗位列表与逐岗位的缺失技能映射
	Recommend(skills []string, experience float64) ([]string, map[string][]string)
}

// ResumeScorer 简历评分器接口
type ResumeScorer interface {
	// Score 评估固定3维特征向量，返回排名分
	Score(in types.ScoreInput) float64
}
