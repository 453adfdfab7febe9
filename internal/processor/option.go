package processor

import (
	"resume-screen-go/internal/storage"
)

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// WithTextExtractor 设置文本提取器组件
func WithTextExtractor(extractor TextExtractor) ComponentOpt {
	return func(c *Components) {
		c.TextExtractor = extractor
	}
}

// WithFeatureExtractor 设置特征提取器组件
func WithFeatureExtractor(extractor FeatureExtractor) ComponentOpt {
	return func(c *Components) {
		c.FeatureExtractor = extractor
	}
}

// WithSentimentAnalyzer 设置语气分析器组件
func WithSentimentAnalyzer(analyzer SentimentAnalyzer) ComponentOpt {
	return func(c *Components) {
		c.SentimentAnalyzer = analyzer
	}
}

// WithRecommender 设置岗位推荐器组件
func WithRecommender(recommender RoleRecommender) ComponentOpt {
	return func(c *Components) {
		c.Recommender = recommender
	}
}

// WithScorer 设置评分器组件
func WithScorer(scorer ResumeScorer) ComponentOpt {
	return func(c *Components) {
		c.Scorer = scorer
	}
}

// WithStorage 设置存储组件
func WithStorage(s *storage.Storage) ComponentOpt {
	return func(c *Components) {
		c.Storage = s
	}
}
