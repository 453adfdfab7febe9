package handler

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/recommend"
	"resume-screen-go/internal/storage"
	"resume-screen-go/internal/storage/models"
)

func newTestStorage(t *testing.T, capacity int) *storage.Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	store, err := storage.NewResumeStoreWithDB(db, capacity)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return &storage.Storage{Store: store}
}

// stubArchive 内存归档实现，供下载接口测试使用
type stubArchive struct {
	objects map[string][]byte
}

func (a *stubArchive) ArchiveResumeFile(_ context.Context, fileExt string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("resume/stub-%d/original%s", len(a.objects)+1, fileExt)
	a.objects[key] = data
	return key, nil
}

func (a *stubArchive) GetResumeFile(_ context.Context, objectKey string) ([]byte, error) {
	data, ok := a.objects[objectKey]
	if !ok {
		return nil, fmt.Errorf("归档对象 %s 不存在", objectKey)
	}
	return data, nil
}

func ptr(v float64) *float64 {
	return &v
}

func insertRecord(t *testing.T, s *storage.Storage, record *models.ResumeRecord) uint64 {
	t.Helper()
	outcome, err := s.Store.UpsertByContact(context.Background(), record)
	require.NoError(t, err)
	return outcome.Record.ID
}

func TestHandleGetResumeNotFound(t *testing.T) {
	s := newTestStorage(t, 10)
	h := NewResumeHandler(nil, s, recommend.NewRecommender())

	_, err := h.HandleGetResume(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestHandleGetResumeMergedGapView(t *testing.T) {
	s := newTestStorage(t, 10)
	h := NewResumeHandler(nil, s, recommend.NewRecommender())

	missingJSON, err := models.MissingSkillsToJSON(map[string][]string{
		"Data Scientist": {"statistics", "machine learning"},
	})
	require.NoError(t, err)

	id := insertRecord(t, s, &models.ResumeRecord{
		Name:         "Alice Chen",
		Email:        "alice@example.com",
		Phone:        "+1-555-1234001",
		Education:    "Masters",
		Experience:   4,
		Skills:       "data analysis, machine learning, python",
		UploadedAt:   time.Now(),
		RankingScore: ptr(6.5),
		Sentiment:    constants.SentimentPositive,
		MissingSkills: missingJSON,
	})

	resp, err := h.HandleGetResume(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Alice Chen", resp.Name)
	assert.InDelta(t, 6.5, resp.RankingScore, 1e-9)
	assert.Contains(t, resp.RecommendedRoles, "Data Scientist")
	// 历史缺口中的 machine learning 已被掌握，合并视图里只剩 statistics
	assert.Equal(t, []string{"statistics"}, resp.MissingSkills["Data Scientist"])
}

func TestHandleDashboardAggregation(t *testing.T) {
	s := newTestStorage(t, 10)
	h := NewAnalyticsHandler(s)

	now := time.Now()
	insertRecord(t, s, &models.ResumeRecord{
		Name: "Alice Chen", Email: "a@example.com", Phone: "1", Education: "Masters",
		Skills: "python, sql", UploadedAt: now, RankingScore: ptr(8),
		Sentiment: constants.SentimentPositive,
	})
	insertRecord(t, s, &models.ResumeRecord{
		Name: "Bob Lee", Email: "b@example.com", Phone: "2", Education: "Bachelors",
		Skills: "python, excel", UploadedAt: now.Add(time.Minute), RankingScore: ptr(5),
		Sentiment: constants.SentimentPositive,
	})
	insertRecord(t, s, &models.ResumeRecord{
		Name: "Carol Wu", Email: "c@example.com", Phone: "3", Education: "Masters",
		Skills: "", UploadedAt: now.Add(2 * time.Minute), RankingScore: ptr(2),
		Sentiment: constants.SentimentNegative,
	})
	// 提取器也会产出固定桶之外的学历标签（Engineering、B.Sc 等），直方图不能丢
	insertRecord(t, s, &models.ResumeRecord{
		Name: "Dana Ito", Email: "d@example.com", Phone: "4", Education: "Engineering",
		Skills: "java", UploadedAt: now.Add(3 * time.Minute), RankingScore: ptr(1),
		Sentiment: constants.SentimentNegative,
	})
	insertRecord(t, s, &models.ResumeRecord{
		Name: "Evan Park", Email: "e@example.com", Phone: "5", Education: "B.Sc",
		Skills: "go", UploadedAt: now.Add(4 * time.Minute), RankingScore: ptr(0.5),
		Sentiment: constants.SentimentNegative,
	})

	summary, err := h.HandleDashboard(context.Background())
	require.NoError(t, err)

	// python 出现2次排首位，其余频次相同按字典序
	require.NotEmpty(t, summary.Skills)
	assert.Equal(t, "python", summary.Skills[0])
	assert.Equal(t, 2, summary.SkillFreqs[0])

	assert.Equal(t, []float64{8, 5, 2, 1, 0.5}, summary.RankingScores)
	assert.Equal(t, []string{"Alice Chen", "Bob Lee", "Carol Wu", "Dana Ito", "Evan Park"}, summary.CandidateNames)

	// 固定桶序在前，其余观察到的标签按字典序在后；计数之和等于记录数
	assert.Equal(t, []string{"Bachelors", "Masters", "B.Sc", "Engineering"}, summary.EducationLevels)
	assert.Equal(t, []int{1, 2, 1, 1}, summary.EducationCounts)
	total := 0
	for _, c := range summary.EducationCounts {
		total += c
	}
	assert.Equal(t, len(summary.CandidateNames), total)

	// 未观察到的情感标签也以计数0出现
	assert.Equal(t, map[string]int{
		constants.SentimentPositive: 2,
		constants.SentimentNeutral:  0,
		constants.SentimentNegative: 3,
	}, summary.Sentiments)
}

func TestHandleRankingExcludesPlaceholdersAndForcesLatest(t *testing.T) {
	s := newTestStorage(t, 10)
	h := NewAnalyticsHandler(s)

	now := time.Now()
	insertRecord(t, s, &models.ResumeRecord{
		Name: "Alice Chen", Email: "a@example.com", Phone: "1",
		UploadedAt: now, RankingScore: ptr(9), Sentiment: constants.SentimentNeutral,
	})
	insertRecord(t, s, &models.ResumeRecord{
		Name: constants.SentinelUnknown, Email: "u@example.com", Phone: "2",
		UploadedAt: now.Add(time.Minute), RankingScore: ptr(7), Sentiment: constants.SentimentNeutral,
	})
	// 最新上传也是占位姓名：强制入选并按位置赋予 "Candidate N"
	insertRecord(t, s, &models.ResumeRecord{
		Name: constants.SentinelNotProvided, Email: "n@example.com", Phone: "3",
		UploadedAt: now.Add(2 * time.Minute), RankingScore: ptr(4), Sentiment: constants.SentimentNeutral,
	})

	chart, err := h.HandleRanking(context.Background())
	require.NoError(t, err)

	require.Len(t, chart.Candidates, 2)
	assert.Equal(t, "Alice Chen", chart.Candidates[0])
	assert.Equal(t, "Candidate 2", chart.Candidates[1])
	assert.Equal(t, []float64{9, 4}, chart.Scores)
}

func TestHandleRankingPlaceholderDoesNotConsumeTopSlot(t *testing.T) {
	s := newTestStorage(t, 15)
	h := NewAnalyticsHandler(s)

	base := time.Now().Add(-time.Hour)
	// 高分占位记录先入库：剔除发生在截断之前，它不占用前10的名额
	insertRecord(t, s, &models.ResumeRecord{
		Name: constants.SentinelUnknown, Email: "u@example.com", Phone: "0",
		UploadedAt: base, RankingScore: ptr(99), Sentiment: constants.SentimentNeutral,
	})
	for i := 1; i <= 11; i++ {
		insertRecord(t, s, &models.ResumeRecord{
			Name:  fmt.Sprintf("Applicant %d", i),
			Email: fmt.Sprintf("applicant%d@example.com", i), Phone: fmt.Sprintf("%d", i),
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
			RankingScore: ptr(float64(i)), Sentiment: constants.SentimentNeutral,
		})
	}

	chart, err := h.HandleRanking(context.Background())
	require.NoError(t, err)

	require.Len(t, chart.Candidates, 10)
	for i, name := range chart.Candidates {
		assert.Equal(t, fmt.Sprintf("Applicant %d", 11-i), name)
	}
	assert.Equal(t, []float64{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}, chart.Scores)
}

func TestHandleGetResumeFile(t *testing.T) {
	s := newTestStorage(t, 10)
	archive := &stubArchive{objects: map[string][]byte{
		"resume/abc/original.pdf": []byte("%PDF-1.4 fake"),
	}}
	s.Archive = archive
	h := NewResumeHandler(nil, s, recommend.NewRecommender())

	id := insertRecord(t, s, &models.ResumeRecord{
		Name: "Alice Chen", Email: "a@example.com", Phone: "1",
		UploadedAt: time.Now(), Sentiment: constants.SentimentNeutral,
		FilePathOSS: "resume/abc/original.pdf",
	})

	data, contentType, err := h.HandleGetResumeFile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
	assert.Equal(t, "application/pdf", contentType)
}

func TestHandleGetResumeFileUnavailable(t *testing.T) {
	s := newTestStorage(t, 10)
	s.Archive = &stubArchive{objects: map[string][]byte{}}
	h := NewResumeHandler(nil, s, recommend.NewRecommender())

	// 记录存在但没有归档对象键
	id := insertRecord(t, s, &models.ResumeRecord{
		Name: "Bob Lee", Email: "b@example.com", Phone: "2",
		UploadedAt: time.Now(), Sentiment: constants.SentimentNeutral,
	})
	_, _, err := h.HandleGetResumeFile(context.Background(), id)
	assert.ErrorIs(t, err, ErrOriginalFileUnavailable)

	// 归档未启用
	s.Archive = nil
	_, _, err = h.HandleGetResumeFile(context.Background(), id)
	assert.ErrorIs(t, err, ErrOriginalFileUnavailable)

	// 记录不存在
	_, _, err = h.HandleGetResumeFile(context.Background(), 424242)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}
