package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"resume-screen-go/internal/parser"
	"resume-screen-go/internal/processor"
	"resume-screen-go/internal/recommend"
	"resume-screen-go/internal/storage"
	"resume-screen-go/internal/types"
)

// ErrOriginalFileUnavailable 记录存在但原始简历未归档（归档未启用或当时归档失败）
var ErrOriginalFileUnavailable = errors.New("original resume file not available")

// ResumeHandler 简历上传与查询处理器
type ResumeHandler struct {
	service     *processor.ScreeningService
	storage     *storage.Storage
	recommender *recommend.Recommender
}

// NewResumeHandler 创建简历处理器
func NewResumeHandler(service *processor.ScreeningService, s *storage.Storage, recommender *recommend.Recommender) *ResumeHandler {
	return &ResumeHandler{
		service:     service,
		storage:     s,
		recommender: recommender,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	RecordID uint64                 `json:"record_id"`
	Status   string                 `json:"status"` // CREATED 或 UPDATED
	Result   *types.ScreeningResult `json:"result"`
}

// ResumeDetailResponse 简历详情响应，缺失技能为合并后的最新视图
type ResumeDetailResponse struct {
	ID               uint64              `json:"id"`
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	Education        string              `json:"education"`
	Experience       int                 `json:"experience"`
	Skills           []string            `json:"skills"`
	RankingScore     float64             `json:"ranking_score"`
	Sentiment        string              `json:"sentiment"`
	RecommendedRoles []string            `json:"recommended_roles"`
	MissingSkills    map[string][]string `json:"missing_skills"`
	UploadedAt       time.Time           `json:"uploaded_at"`
}

// HandleResumeUpload 处理一次简历上传，同步执行整条筛选流水线
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, filename string) (*ResumeUploadResponse, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}

	result, err := h.service.ProcessUpload(ctx, filename, data)
	if err != nil {
		return nil, err
	}

	status := "UPDATED"
	if result.Created {
		status = "CREATED"
	}

	return &ResumeUploadResponse{
		RecordID: result.RecordID,
		Status:   status,
		Result:   result,
	}, nil
}

// HandleGetResume 按ID查询简历详情。
//
// 缺失技能不直接回放库里的快照：先按当前技能重新推荐，再与历史缺口做
// 三步合并（并集→剔除已掌握→按当前岗位过滤），呈现最新的缺口视图。
func (h *ResumeHandler) HandleGetResume(ctx context.Context, id uint64) (*ResumeDetailResponse, error) {
	record, err := h.storage.Store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skills := parser.SplitSkills(record.Skills)
	roles, fresh := h.recommender.Recommend(skills, float64(record.Experience))
	merged := recommend.MergeMissingSkills(record.MissingSkillsMap(), fresh, skills, roles)

	var score float64
	if record.RankingScore != nil {
		score = *record.RankingScore
	}

	return &ResumeDetailResponse{
		ID:               record.ID,
		Name:             record.Name,
		Email:            record.Email,
		Phone:            record.Phone,
		Education:        record.Education,
		Experience:       record.Experience,
		Skills:           skills,
		RankingScore:     score,
		Sentiment:        record.Sentiment,
		RecommendedRoles: roles,
		MissingSkills:    merged,
		UploadedAt:       record.UploadedAt,
	}, nil
}

// HandleGetResumeFile 按ID取回归档的原始简历，返回文件内容与内容类型。
// 归档未启用或该记录没有归档对象键时返回 ErrOriginalFileUnavailable。
func (h *ResumeHandler) HandleGetResumeFile(ctx context.Context, id uint64) ([]byte, string, error) {
	record, err := h.storage.Store.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if h.storage.Archive == nil || record.FilePathOSS == "" {
		return nil, "", ErrOriginalFileUnavailable
	}

	data, err := h.storage.Archive.GetResumeFile(ctx, record.FilePathOSS)
	if err != nil {
		return nil, "", fmt.Errorf("读取归档简历失败: %w", err)
	}
	return data, storage.ContentTypeForExt(filepath.Ext(record.FilePathOSS)), nil
}
