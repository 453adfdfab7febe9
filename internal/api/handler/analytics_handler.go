package handler

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/parser"
	"resume-screen-go/internal/storage"
	"resume-screen-go/internal/storage/models"
	"resume-screen-go/internal/types"
)

const analyticsTopN = 10

// educationBuckets 学历直方图的固定桶顺序；观察到的其他标签按字典序补在其后
var educationBuckets = []string{"Diploma", "Bachelors", "Masters", "PhD", constants.SentinelUnknown}

// placeholderNameList 排名图中按占位处理的姓名
var placeholderNameList = []string{
	constants.SentinelUnknown,
	constants.SentinelNotProvided,
	"Candidate",
	"",
}

var placeholderNames = func() map[string]struct{} {
	m := make(map[string]struct{}, len(placeholderNameList))
	for _, name := range placeholderNameList {
		m[name] = struct{}{}
	}
	return m
}()

// AnalyticsHandler 分析面板处理器，只做持久化记录之上的纯聚合
type AnalyticsHandler struct {
	storage *storage.Storage
}

// NewAnalyticsHandler 创建分析处理器
func NewAnalyticsHandler(s *storage.Storage) *AnalyticsHandler {
	return &AnalyticsHandler{storage: s}
}

// HandleDashboard 汇总得分前10记录的技能频次、得分、学历直方图与情感计数
func (h *AnalyticsHandler) HandleDashboard(ctx context.Context) (*types.AnalyticsSummary, error) {
	records, err := h.storage.Store.TopNByScore(ctx, analyticsTopN)
	if err != nil {
		return nil, fmt.Errorf("查询分析记录失败: %w", err)
	}

	summary := &types.AnalyticsSummary{
		RankingScores:  make([]float64, 0, len(records)),
		CandidateNames: make([]string, 0, len(records)),
		// 三个情感标签始终出现，未观察到的计为0
		Sentiments: map[string]int{
			constants.SentimentPositive: 0,
			constants.SentimentNeutral:  0,
			constants.SentimentNegative: 0,
		},
	}

	skillFreq := make(map[string]int)
	eduFreq := make(map[string]int)

	for _, record := range records {
		for _, skill := range parser.SplitSkills(record.Skills) {
			skillFreq[skill]++
		}

		var score float64
		if record.RankingScore != nil {
			score = *record.RankingScore
		}
		summary.RankingScores = append(summary.RankingScores, score)
		summary.CandidateNames = append(summary.CandidateNames, record.Name)

		eduFreq[record.Education]++
		if record.Sentiment != "" {
			summary.Sentiments[record.Sentiment]++
		}
	}

	summary.Skills, summary.SkillFreqs = topSkills(skillFreq, analyticsTopN)
	summary.EducationLevels, summary.EducationCounts = educationHistogram(eduFreq)

	return summary, nil
}

// educationHistogram 输出学历直方图：固定桶序在前，其余观察到的标签按字典序在后。
// 每个出现过的标签都必须进入直方图，计数之和等于记录数。
func educationHistogram(freq map[string]int) ([]string, []int) {
	labels := make([]string, 0, len(freq))
	known := make(map[string]struct{}, len(educationBuckets))
	for _, bucket := range educationBuckets {
		known[bucket] = struct{}{}
		if _, ok := freq[bucket]; ok {
			labels = append(labels, bucket)
		}
	}

	var rest []string
	for label := range freq {
		if _, ok := known[label]; !ok {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	labels = append(labels, rest...)

	counts := make([]int, len(labels))
	for i, label := range labels {
		counts[i] = freq[label]
	}
	return labels, counts
}

// HandleRanking 生成排名图数据。
//
// 先剔除占位姓名再取得分前10（过滤在截断之前，库容量大于10时才可见差异）；
// 最新上传的记录强制入选（即使姓名是占位），重排后仍按得分倒序。
// 留在图里的占位姓名按位置替换为 "Candidate N"。
func (h *AnalyticsHandler) HandleRanking(ctx context.Context) (*types.RankingChart, error) {
	kept, err := h.storage.Store.TopNByScoreExcludingNames(ctx, analyticsTopN, placeholderNameList)
	if err != nil {
		return nil, fmt.Errorf("查询排名记录失败: %w", err)
	}

	latest, err := h.storage.Store.LatestUploaded(ctx)
	if err != nil && !errors.Is(err, storage.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询最新上传记录失败: %w", err)
	}
	if latest != nil {
		present := false
		for _, record := range kept {
			if record.ID == latest.ID {
				present = true
				break
			}
		}
		if !present {
			kept = append(kept, *latest)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return scoreOf(kept[i]) > scoreOf(kept[j])
	})
	if len(kept) > analyticsTopN {
		kept = kept[:analyticsTopN]
	}

	chart := &types.RankingChart{
		Candidates: make([]string, 0, len(kept)),
		Scores:     make([]float64, 0, len(kept)),
	}
	for i, record := range kept {
		name := record.Name
		if _, ok := placeholderNames[name]; ok {
			name = fmt.Sprintf("Candidate %d", i+1)
		}
		chart.Candidates = append(chart.Candidates, name)
		chart.Scores = append(chart.Scores, scoreOf(record))
	}
	return chart, nil
}

func scoreOf(record models.ResumeRecord) float64 {
	if record.RankingScore == nil {
		return 0
	}
	return *record.RankingScore
}

// topSkills 按频次取前N的技能，频次相同按字典序，保证输出确定
func topSkills(freq map[string]int, n int) ([]string, []int) {
	skills := make([]string, 0, len(freq))
	for skill := range freq {
		skills = append(skills, skill)
	}
	sort.Slice(skills, func(i, j int) bool {
		if freq[skills[i]] != freq[skills[j]] {
			return freq[skills[i]] > freq[skills[j]]
		}
		return skills[i] < skills[j]
	})
	if len(skills) > n {
		skills = skills[:n]
	}

	counts := make([]int, len(skills))
	for i, skill := range skills {
		counts[i] = freq[skill]
	}
	return skills, counts
}
