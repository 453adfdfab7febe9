package parser

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	"resume-screen-go/internal/constants"
)

// SentimentAnalyzer 基于词典规则的情感分类器
// 在[-1,1]区间上计算聚合极性分，严格按符号分类：
// 分数>0为Positive，==0为Neutral，<0为Negative，不设幅度阈值
type SentimentAnalyzer struct{}

// NewSentimentAnalyzer 创建情感分类器
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{}
}

// Analyze 对文本做情感分类，返回 Positive/Neutral/Negative 之一
func (sa *SentimentAnalyzer) Analyze(text string) string {
	if strings.TrimSpace(text) == "" {
		return constants.SentimentNeutral
	}
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	score := sentitext.PolarityScore(parsed).Compound
	return ClassifyPolarity(score)
}

// ClassifyPolarity 按符号把极性分映射为分类标签
func ClassifyPolarity(score float64) string {
	switch {
	case score > 0:
		return constants.SentimentPositive
	case score < 0:
		return constants.SentimentNegative
	default:
		return constants.SentimentNeutral
	}
}
