package scorer

import (
	"fmt"
	"os"

	"github.com/dmitryikh/leaves"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/logger"
	"resume-screen-go/internal/types"
)

// educationCodes 学历编码的固定4路查表
var educationCodes = map[string]int{
	"Diploma":   constants.EducationCodeDiploma,
	"Bachelors": constants.EducationCodeBachelors,
	"Masters":   constants.EducationCodeMasters,
	"PhD":       constants.EducationCodePhD,
}

// EducationCode 把学历标签映射为模型输入编码。
// 全函数：未识别或"Unknown"一律按约定映射为 Bachelors(1)，不报错。
func EducationCode(label string) int {
	if code, ok := educationCodes[label]; ok {
		return code
	}
	return constants.EducationCodeBachelors
}

// TreeScorer 基于预训练树集成回归模型的排名评分器。
// 模型在进程启动时加载一次，此后只读共享，不做按请求重载。
// 模型缺失时评分降级为固定值0（非致命），启动时告警一次。
type TreeScorer struct {
	model *leaves.Ensemble
}

// NewTreeScorer 加载模型工件并构建评分器。
// 路径为空或文件不存在/不可解析时返回无模型的评分器，不返回错误。
func NewTreeScorer(modelPath string) *TreeScorer {
	if modelPath == "" {
		logger.Warn().Msg("未配置评分模型路径，排名评分将使用固定回退值0")
		return &TreeScorer{}
	}
	if _, err := os.Stat(modelPath); err != nil {
		logger.Warn().
			Str("model_path", modelPath).
			Msg("评分模型文件不存在，排名评分将使用固定回退值0")
		return &TreeScorer{}
	}

	model, err := leaves.LGEnsembleFromFile(modelPath, false)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("model_path", modelPath).
			Msg("加载评分模型失败，排名评分将使用固定回退值0")
		return &TreeScorer{}
	}

	logger.Info().
		Str("model_path", modelPath).
		Int("trees", model.NEstimators()).
		Msg("评分模型加载成功")
	return &TreeScorer{model: model}
}

// NewTreeScorerWithModel 直接注入已加载的模型，便于测试替换
func NewTreeScorerWithModel(model *leaves.Ensemble) *TreeScorer {
	return &TreeScorer{model: model}
}

// Ready 返回模型是否已加载
func (s *TreeScorer) Ready() bool {
	return s.model != nil
}

// Score 评估固定3维特征向量，返回排名分。
// 输入顺序必须与训练时一致（education, experience, skills），否则分数无意义。
func (s *TreeScorer) Score(in types.ScoreInput) float64 {
	if s.model == nil {
		return 0
	}
	return s.model.PredictSingle(in.Features(), 0)
}

// Describe 返回评分器的简要描述，用于启动日志
func (s *TreeScorer) Describe() string {
	if s.model == nil {
		return "fallback(0)"
	}
	return fmt.Sprintf("lightgbm(trees=%d)", s.model.NEstimators())
}
