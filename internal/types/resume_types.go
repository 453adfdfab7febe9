package types

// FeatureSet 单次解析得到的简历结构化特征（瞬态，不落库）
type FeatureSet struct {
	Name       string   `json:"name"`       // 候选人姓名，无法识别时为 "Unknown"
	Email      string   `json:"email"`      // 邮箱，无匹配时为 "Not Provided"
	Phone      string   `json:"phone"`      // 电话，无匹配时为 "Not Provided"
	Education  string   `json:"education"`  // 学历关键词（固定词表之一）或 "Unknown"
	Experience int      `json:"experience"` // 工作年限，未提及时为 0
	Skills     []string `json:"skills"`     // 去重后的小写技能词，按字典序排列
}

// ScoreInput 评分模型的固定3维输入
// 字段顺序即训练时的特征顺序，任何改动都会使预训练模型失效
type ScoreInput struct {
	EducationCode int     `json:"education"`  // 学历编码 0-3
	Experience    float64 `json:"experience"` // 工作年限
	SkillCount    int     `json:"skills"`     // 技能数量
}

// Features 按固定顺序展开为特征向量，供树模型预测使用
func (s ScoreInput) Features() []float64 {
	return []float64{float64(s.EducationCode), s.Experience, float64(s.SkillCount)}
}

// ScreeningResult 一次上传处理完成后的汇总结果
type ScreeningResult struct {
	RecordID         uint64              `json:"record_id"`
	Created          bool                `json:"created"` // true=新建记录, false=按(email,phone)去重后原地更新
	Features         *FeatureSet         `json:"features"`
	RankingScore     float64             `json:"ranking_score"`
	Sentiment        string              `json:"sentiment"`
	RecommendedRoles []string            `json:"recommended_roles"`
	MissingSkills    map[string][]string `json:"missing_skills"`
}

// AnalyticsSummary 分析面板的聚合结果，只做持久化记录之上的纯聚合
type AnalyticsSummary struct {
	Skills          []string       `json:"skills"`           // 出现频次前10的技能
	SkillFreqs      []int          `json:"skill_freqs"`      // 与 Skills 对齐的频次
	RankingScores   []float64      `json:"ranking_scores"`   // 得分列表
	CandidateNames  []string       `json:"candidate_names"`  // 候选人姓名，与得分对齐
	EducationLevels []string       `json:"education_levels"` // 学历直方图的桶
	EducationCounts []int          `json:"education_counts"` // 与 EducationLevels 对齐的计数
	Sentiments      map[string]int `json:"sentiments"`       // Positive/Neutral/Negative 计数
}

// RankingChart 排名图数据：按得分取前10，强制包含最新上传
type RankingChart struct {
	Candidates []string  `json:"candidates"`
	Scores     []float64 `json:"scores"`
}
